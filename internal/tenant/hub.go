package tenant

import "sync"

// Subscriber is the outbound end of one session's frame queue. Enqueue
// must not block; it reports false when the sink is closed or full, which
// marks the sink for pruning.
type Subscriber interface {
	Enqueue(frame []byte) bool
}

// hub is one tenant's subscriber set. The mutex is held only to mutate or
// snapshot the set, never across a send.
type hub struct {
	mu   sync.Mutex
	subs map[Subscriber]bool
}

func newHub() *hub {
	return &hub{subs: make(map[Subscriber]bool)}
}

func (h *hub) remove(s Subscriber) {
	h.mu.Lock()
	delete(h.subs, s)
	h.mu.Unlock()
}

// snapshot returns the current subscribers as a slice so the caller can
// iterate without holding the lock.
func (h *hub) snapshot() []Subscriber {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := make([]Subscriber, 0, len(h.subs))
	for s := range h.subs {
		subs = append(subs, s)
	}
	return subs
}

func (h *hub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
