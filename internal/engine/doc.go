// Package engine runs generation passes over parsed packages.
//
// A pass takes one declaration through the whole pipeline:
//
//	Validate -> Extract -> Synthesize (one per request) -> Assemble
//
// and ends with exactly one outcome: an augmentation for the type, or one
// diagnostic. Passes share no state, so an Engine is safe for concurrent
// use and the order in which passes run does not affect their results.
//
// Generate collects the outcomes for a package. The generated file is
// rendered only when every pass succeeded; a single diagnostic anywhere in
// the package suppresses the whole file, so a build never sees a partial
// set of generated members.
package engine
