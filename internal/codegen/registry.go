package codegen

import (
	"go/token"

	"github.com/roach88/iterstruct/internal/compiler"
)

// PackageScope is the type name under which package-level identifiers are
// registered.
const PackageScope = ""

type memberKey struct {
	typeName string
	member   string
}

// Registry records which owner introduced each (type, member) pair.
// It is not safe for concurrent use; every pass builds its own.
type Registry struct {
	owners map[memberKey]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{owners: make(map[memberKey]string)}
}

// Claim registers member on typeName for owner. A second claim on the same
// pair fails with a collision diagnostic naming both owners.
func (r *Registry) Claim(typeName, member, owner string, pos token.Position) error {
	k := memberKey{typeName: typeName, member: member}
	if prev, ok := r.owners[k]; ok {
		scope := typeName
		if scope == PackageScope {
			scope = "package scope"
		}
		return compiler.NewCollisionError(scope, member, prev, owner, pos)
	}
	r.owners[k] = owner
	return nil
}

// Owner returns who claimed member on typeName, if anyone.
func (r *Registry) Owner(typeName, member string) (string, bool) {
	o, ok := r.owners[memberKey{typeName: typeName, member: member}]
	return o, ok
}

// Len returns the number of claimed pairs.
func (r *Registry) Len() int { return len(r.owners) }
