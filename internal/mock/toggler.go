// Package mock exercises the fan-out path without real clients.
package mock

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/sharelist/backend/internal/protocol"
	"github.com/sharelist/backend/internal/store"
	"github.com/sharelist/backend/internal/tenant"
)

// Toggler flips a random item on a demo tenant at a fixed interval, driving
// the same mutate-persist-broadcast cycle a real session would. Useful for
// watching the UI update without opening a second browser.
type Toggler struct {
	registry *tenant.Registry
	store    *store.Store
	tenant   string
	interval time.Duration
	rng      *rand.Rand
}

func NewToggler(registry *tenant.Registry, st *store.Store, tenantName string, interval time.Duration) *Toggler {
	return &Toggler{
		registry: registry,
		store:    st,
		tenant:   tenantName,
		interval: interval,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Toggler) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(g.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := g.Step(); err != nil {
					log.Printf("demo toggler: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Step performs one toggle cycle: pick a random label, flip it, persist the
// snapshot and broadcast the update.
func (g *Toggler) Step() error {
	t, err := g.registry.GetOrInit(g.tenant)
	if err != nil {
		return err
	}

	items := t.Snapshot()
	if len(items) == 0 {
		return nil
	}
	label := items[g.rng.Intn(len(items))].Label

	updated, _ := t.Toggle(label)
	if err := g.store.Save(t.Name(), updated); err != nil {
		return err
	}

	frame, err := protocol.Encode(protocol.Update(updated))
	if err != nil {
		return err
	}
	t.Broadcast(frame)
	return nil
}
