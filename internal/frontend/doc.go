// Package frontend turns Go source into generation requests.
//
// It parses every non-test file of a package directory, classifies each
// type declaration into the closed ir.Kind set, and collects the
// derivations requested for it through doc comment directives:
//
//	//iterstruct:derive names
//	//iterstruct:derive dump method=Debug names=- verb=+v
//	type Point struct {
//		x, y int
//	}
//
// Derivations can also be requested from outside the source through
// Options.Types. Files this generator wrote are skipped so that the
// members they declare are never mistaken for hand-written ones.
package frontend
