// Package codegen synthesizes Go source for validated records.
//
// A generation pass hands a RecordDefinition to one Synthesizer per
// requested derivation. Each Synthesizer returns a Fragment: the members it
// adds to the type plus the source text declaring them. Assemble merges
// the fragments of one type into an Augmentation, rejecting any member
// name that is claimed twice. Render joins the augmentations of a package
// into a single formatted file.
//
// Derivations:
//
//	names  value-receiver method returning the field names (default FieldNames)
//	dump   pointer-receiver method returning "name: value" lines (default Dump),
//	       plus a name-list method (default FieldNames, names=- omits it)
//
// Nothing here inspects values at run time; generated code reads fields
// through plain selectors.
package codegen
