package provider

import (
	"sort"

	"github.com/younsl/awsinspector/internal/models"
)

// Registry is the closed set of supported services, ordered by display name
type Registry struct {
	providers map[string]Provider
	ordered   []Provider
}

// NewRegistry builds the registry of all supported services
func NewRegistry(cfg Config) *Registry {
	return New(
		NewCloudFormation(cfg),
		NewDynamoDB(cfg),
		NewIAM(cfg),
		NewLambda(cfg),
		NewSNS(cfg),
		NewSQS(cfg),
		NewStepFunctions(cfg),
	)
}

// New builds a registry from arbitrary providers
func New(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider, len(providers))}
	for _, p := range providers {
		r.providers[p.ID()] = p
		r.ordered = append(r.ordered, p)
	}
	sort.SliceStable(r.ordered, func(i, j int) bool {
		return r.ordered[i].DisplayName() < r.ordered[j].DisplayName()
	})
	return r
}

// Get returns the provider for a service id
func (r *Registry) Get(id string) (Provider, error) {
	p, ok := r.providers[id]
	if !ok {
		return nil, &models.UnknownServiceError{ServiceID: id}
	}
	return p, nil
}

// List returns every provider in display-name order
func (r *Registry) List() []Provider {
	return append([]Provider(nil), r.ordered...)
}
