package ir

// Version constants for the generator and its fingerprint scheme.
const (
	// GeneratorName is stamped into the header of generated files.
	GeneratorName = "iterstruct"

	// GeneratorVersion is the iterstruct release version.
	GeneratorVersion = "0.3.0"

	// FingerprintVersion is bumped when the fingerprint input shape changes.
	FingerprintVersion = "1"
)
