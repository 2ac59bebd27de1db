package store

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sharelist/backend/internal/list"
)

const testDefaults = `items:
  - needed: true
    label: Peanut Butter
    category: Kitchen
    aisle: []
    stores: [BigBox, Grocery]
  - needed: false
    label: Milk
    category: Kitchen
    aisle: [Dairy]
    stores: [Grocery]
`

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "defaults.yaml"), []byte(testDefaults), 0o644); err != nil {
		t.Fatal(err)
	}
	return New(dir)
}

func TestCheckDefaults(t *testing.T) {
	s := newTestStore(t)
	if err := s.CheckDefaults(); err != nil {
		t.Errorf("CheckDefaults() error: %v", err)
	}

	empty := New(t.TempDir())
	if err := empty.CheckDefaults(); err == nil {
		t.Error("CheckDefaults() with no template should fail")
	}
}

func TestLoadMaterializesFromTemplate(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load("alice")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(items) != 2 || items[0].Label != "Peanut Butter" {
		t.Errorf("unexpected items: %+v", items)
	}

	// The tenant file must exist and be byte-equal to the template.
	data, err := os.ReadFile(s.ItemsPath("alice"))
	if err != nil {
		t.Fatalf("tenant file not created: %v", err)
	}
	if string(data) != testDefaults {
		t.Errorf("tenant file differs from template:\n%s", data)
	}
}

func TestLoadMaterializesExactlyOnePath(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.Load("alice"); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tenantRoot := filepath.Join(filepath.Dir(s.ItemsPath("alice")), "..")
	entries, err := os.ReadDir(tenantRoot)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "alice" {
		t.Errorf("unexpected tenant dir contents: %v", entries)
	}
}

func TestLoadExistingFileWins(t *testing.T) {
	s := newTestStore(t)

	custom := strings.Replace(testDefaults, "needed: true", "needed: false", 1)
	path := s.ItemsPath("bob")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(custom), 0o644); err != nil {
		t.Fatal(err)
	}

	items, err := s.Load("bob")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if items[0].Needed {
		t.Error("existing tenant file was overwritten by the template")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load("carol")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	list.Toggle(items, "Peanut Butter")
	if err := s.Save("carol", items); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded, err := s.Load("carol")
	if err != nil {
		t.Fatalf("reload error: %v", err)
	}
	if !reflect.DeepEqual(reloaded, items) {
		t.Errorf("persisted list differs:\n got %+v\nwant %+v", reloaded, items)
	}
	if reloaded[0].Needed {
		t.Error("toggle not persisted")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)

	items, err := s.Load("dave")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save("dave", items); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(filepath.Dir(s.ItemsPath("dave")))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if e.Name() != "items.yaml" {
			t.Errorf("stray file in tenant dir: %s", e.Name())
		}
	}
}

func TestSaveWithoutDirFails(t *testing.T) {
	s := newTestStore(t)
	// Save assumes Load created the directory.
	if err := s.Save("nobody", nil); err == nil {
		t.Error("Save() without tenant dir should fail")
	}
}

func TestLoadCorruptTenantFileFails(t *testing.T) {
	s := newTestStore(t)

	path := s.ItemsPath("eve")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("items: {{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Load("eve"); err == nil {
		t.Error("Load() of corrupt file should fail")
	}
}
