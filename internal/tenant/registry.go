package tenant

import (
	"sync"

	"github.com/sharelist/backend/internal/metrics"
	"github.com/sharelist/backend/internal/store"
)

// Registry is the process-wide mapping from tenant name to live state.
// Entries are populated lazily on first subscription and never removed.
type Registry struct {
	mu      sync.Mutex
	store   *store.Store
	tenants map[string]*Tenant
}

func NewRegistry(st *store.Store) *Registry {
	return &Registry{
		store:   st,
		tenants: make(map[string]*Tenant),
	}
}

// GetOrInit returns the tenant's live state, loading it from disk on first
// access. The load happens inside the critical section, which is acceptable
// because it runs at most once per tenant per process; every later call is
// a map lookup. A failed load inserts nothing, so the next caller retries.
func (r *Registry) GetOrInit(name string) (*Tenant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.tenants[name]; ok {
		return t, nil
	}

	items, err := r.store.Load(name)
	if err != nil {
		return nil, err
	}

	t := newTenant(name, items)
	r.tenants[name] = t
	metrics.TenantsActive.Set(float64(len(r.tenants)))
	return t, nil
}

// TenantCount reports the number of materialized tenants.
func (r *Registry) TenantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tenants)
}

// SubscriberCount reports the total number of attached sinks across all
// tenants.
func (r *Registry) SubscriberCount() int {
	r.mu.Lock()
	tenants := make([]*Tenant, 0, len(r.tenants))
	for _, t := range r.tenants {
		tenants = append(tenants, t)
	}
	r.mu.Unlock()

	total := 0
	for _, t := range tenants {
		total += t.SubscriberCount()
	}
	return total
}
