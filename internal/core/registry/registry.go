// Package registry holds the fixed mapping from entity-kind names to their
// construction and persistence bindings. The set of kinds is defined once at
// startup; resolving anything else is a user error, never a crash.
package registry

import (
	"fmt"
	"sort"

	"github.com/itfy/evoting-admin/internal/core/domain"
)

// Params are the key=value parameters parsed from a command line.
type Params map[string]string

// Get returns the value for name, or "" when absent.
func (p Params) Get(name string) string { return p[name] }

// Has reports whether name was supplied.
func (p Params) Has(name string) bool {
	_, ok := p[name]
	return ok
}

// With returns a copy of p with name set to value.
func (p Params) With(name, value string) Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[name] = value
	return out
}

// Descriptor binds an entity kind to its collection and constructor.
type Descriptor struct {
	Kind       domain.Kind
	Collection string
	// New validates params and builds a pointer to the kind's domain struct.
	New func(p Params) (any, error)
}

var descriptors = map[domain.Kind]Descriptor{
	domain.KindUser:       {Kind: domain.KindUser, Collection: "users", New: newUser},
	domain.KindRole:       {Kind: domain.KindRole, Collection: "roles", New: newRole},
	domain.KindEvent:      {Kind: domain.KindEvent, Collection: "events", New: newEvent},
	domain.KindCategory:   {Kind: domain.KindCategory, Collection: "categories", New: newCategory},
	domain.KindCandidate:  {Kind: domain.KindCandidate, Collection: "candidates", New: newCandidate},
	domain.KindNomination: {Kind: domain.KindNomination, Collection: "nominations", New: newNomination},
	domain.KindVote:       {Kind: domain.KindVote, Collection: "votes", New: newVote},
}

// Resolve returns the descriptor registered for kind.
func Resolve(kind string) (Descriptor, error) {
	desc, ok := descriptors[domain.Kind(kind)]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	return desc, nil
}

// Kinds returns the registered kind names, sorted for stable help output.
func Kinds() []string {
	out := make([]string, 0, len(descriptors))
	for kind := range descriptors {
		out = append(out, string(kind))
	}
	sort.Strings(out)
	return out
}
