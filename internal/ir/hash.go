package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainAugmentation separates fingerprints of generated code inputs from
// any other hash the tool may compute.
const DomainAugmentation = "iterstruct/augmentation/v" + FingerprintVersion

// FingerprintEntry is one record plus the derivations requested for it.
type FingerprintEntry struct {
	Record   *RecordDefinition
	Requests []Request
}

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes a content address for the generation input of one
// package: its name, every record shape and every requested derivation.
// Two runs over unchanged declarations produce the same fingerprint.
func Fingerprint(pkg string, entries []FingerprintEntry) (string, error) {
	types := make([]any, len(entries))
	for i, e := range entries {
		fields := make([]any, e.Record.Len())
		for j := range fields {
			f := e.Record.Field(j)
			fields[j] = map[string]any{
				"name": f.Name,
				"type": f.Type,
			}
		}
		reqs := make([]any, len(e.Requests))
		for j, r := range e.Requests {
			req := map[string]any{"derivation": r.Derivation}
			if len(r.Options) > 0 {
				req["options"] = r.Options
			}
			reqs[j] = req
		}
		types[i] = map[string]any{
			"name":        e.Record.TypeName(),
			"fields":      fields,
			"derivations": reqs,
		}
	}

	canonical, err := MarshalCanonical(map[string]any{
		"package":   pkg,
		"generator": GeneratorVersion,
		"types":     types,
	})
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return "sha256:" + hashWithDomain(DomainAugmentation, canonical), nil
}
