package connectors

import (
	"fmt"

	"github.com/custodia-labs/regscan/internal/connectors/fdic"
	"github.com/custodia-labs/regscan/internal/connectors/fed"
	"github.com/custodia-labs/regscan/internal/connectors/generic"
	"github.com/custodia-labs/regscan/internal/connectors/occ"
	"github.com/custodia-labs/regscan/internal/core/domain"
	"github.com/custodia-labs/regscan/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ResolverRegistry = (*Registry)(nil)

// Registry maps regulators to their table resolvers.
type Registry struct {
	resolvers map[domain.Regulator]driven.RecordResolver
	order     []domain.Regulator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resolvers: make(map[domain.Regulator]driven.RecordResolver),
	}
}

// Builtin returns a registry holding the generic, FDIC, OCC and FED
// resolvers. fedBaseURL is prefixed to relative FED links.
func Builtin(fedBaseURL string) *Registry {
	r := NewRegistry()
	r.Register(generic.New())
	r.Register(fdic.New())
	r.Register(occ.New())
	r.Register(fed.New(fedBaseURL))
	return r
}

// Register adds a resolver, replacing any previous one for the same
// regulator.
func (r *Registry) Register(resolver driven.RecordResolver) {
	reg := resolver.Regulator()
	if _, ok := r.resolvers[reg]; !ok {
		r.order = append(r.order, reg)
	}
	r.resolvers[reg] = resolver
}

// Get returns the resolver for reg.
func (r *Registry) Get(reg domain.Regulator) (driven.RecordResolver, error) {
	resolver, ok := r.resolvers[reg]
	if !ok {
		return nil, fmt.Errorf("%w: regulator %q", domain.ErrUnsupportedType, reg)
	}
	return resolver, nil
}

// Has returns true if a resolver is registered for reg.
func (r *Registry) Has(reg domain.Regulator) bool {
	_, ok := r.resolvers[reg]
	return ok
}

// Regulators returns registered regulators in registration order.
func (r *Registry) Regulators() []domain.Regulator {
	out := make([]domain.Regulator, len(r.order))
	copy(out, r.order)
	return out
}
