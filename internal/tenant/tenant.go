package tenant

import (
	"sync"

	"github.com/sharelist/backend/internal/list"
	"github.com/sharelist/backend/internal/protocol"
)

// Tenant is the live in-memory state for one named list: the authoritative
// items guarded by a read/write lock, plus the subscriber set frames are
// fanned out to. Tenants are created by Registry.GetOrInit and live for the
// rest of the process.
type Tenant struct {
	name string

	mu    sync.RWMutex
	items []list.Item

	hub *hub
}

func newTenant(name string, items []list.Item) *Tenant {
	return &Tenant{
		name:  name,
		items: items,
		hub:   newHub(),
	}
}

func (t *Tenant) Name() string {
	return t.name
}

// Snapshot returns a deep copy of the current list.
func (t *Tenant) Snapshot() []list.Item {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return list.Clone(t.items)
}

// Toggle flips the first item matching label under the write lock and
// returns a post-mutation clone, taken before the lock is released so the
// snapshot reflects a state that was valid under the lock. An absent label
// leaves the list untouched; the clone is returned either way so the caller
// can still persist and broadcast (the operation is idempotent).
func (t *Tenant) Toggle(label string) ([]list.Item, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	found := list.Toggle(t.items, label)
	return list.Clone(t.items), found
}

// Subscribe registers a sink and enqueues the init frame on it. Both happen
// inside the hub's critical section: Broadcast snapshots the subscriber set
// under the same lock, so no update can land on the sink ahead of init.
func (t *Tenant) Subscribe(s Subscriber) error {
	t.hub.mu.Lock()
	defer t.hub.mu.Unlock()

	frame, err := protocol.Encode(protocol.Init(t.Snapshot()))
	if err != nil {
		return err
	}
	t.hub.subs[s] = true
	s.Enqueue(frame)
	return nil
}

// Unsubscribe removes a sink. Safe to call for sinks already pruned.
func (t *Tenant) Unsubscribe(s Subscriber) {
	t.hub.remove(s)
}

// Broadcast enqueues the frame on every current subscriber. The set is
// snapshotted under the hub lock and sends happen outside it, so a slow
// consumer cannot stall the others. Sinks that refuse the frame are pruned.
func (t *Tenant) Broadcast(frame []byte) {
	for _, s := range t.hub.snapshot() {
		if !s.Enqueue(frame) {
			t.hub.remove(s)
		}
	}
}

// SubscriberCount reports the number of attached sinks.
func (t *Tenant) SubscriberCount() int {
	return t.hub.count()
}
