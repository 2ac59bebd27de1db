package mock

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sharelist/backend/internal/store"
	"github.com/sharelist/backend/internal/tenant"
)

const testDefaults = `items:
  - needed: true
    label: Peanut Butter
    category: Kitchen
    aisle: []
    stores: [BigBox]
`

func TestStepTogglesPersistsAndBroadcasts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "defaults.yaml"), []byte(testDefaults), 0o644); err != nil {
		t.Fatal(err)
	}
	st := store.New(dir)
	registry := tenant.NewRegistry(st)

	g := NewToggler(registry, st, "demo", time.Second)

	if err := g.Step(); err != nil {
		t.Fatalf("Step() error: %v", err)
	}

	// One item, so the toggle target is deterministic.
	items, err := st.Load("demo")
	if err != nil {
		t.Fatal(err)
	}
	if items[0].Needed {
		t.Error("Step() did not persist the flipped item")
	}

	tn, err := registry.GetOrInit("demo")
	if err != nil {
		t.Fatal(err)
	}
	if snap := tn.Snapshot(); snap[0].Needed {
		t.Error("Step() did not mutate in-memory state")
	}
}

func TestStepFailsWithoutTemplate(t *testing.T) {
	dir := t.TempDir() // no defaults.yaml
	st := store.New(dir)
	registry := tenant.NewRegistry(st)

	g := NewToggler(registry, st, "demo", time.Second)
	if err := g.Step(); err == nil {
		t.Error("Step() without a template should fail")
	}
}
