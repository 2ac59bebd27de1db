// Package store owns the on-disk layout for tenant lists:
//
//	<data>/defaults.yaml          shipped template, read on first access
//	<data>/tenant/<name>/items.yaml  per-tenant persisted list
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/sharelist/backend/internal/list"
)

const (
	defaultsFileName = "defaults.yaml"
	itemsFileName    = "items.yaml"
	tenantDirName    = "tenant"
)

// Store translates tenant names into file paths and loads or persists list
// snapshots. It is stateless; per-tenant write serialization is the
// caller's responsibility (the tenant's list write lock).
type Store struct {
	dataDir string
}

func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// DefaultsPath returns the path of the shipped template.
func (s *Store) DefaultsPath() string {
	return filepath.Join(s.dataDir, defaultsFileName)
}

// ItemsPath returns the path of a tenant's persisted list.
func (s *Store) ItemsPath(tenant string) string {
	return filepath.Join(s.dataDir, tenantDirName, tenant, itemsFileName)
}

// CheckDefaults verifies the shipped template exists and decodes. Called
// once at startup so a missing or corrupt template fails fast instead of on
// the first connection.
func (s *Store) CheckDefaults() error {
	data, err := os.ReadFile(s.DefaultsPath())
	if err != nil {
		return fmt.Errorf("reading default template: %w", err)
	}
	if _, err := list.Decode(data); err != nil {
		return fmt.Errorf("default template %s: %w", s.DefaultsPath(), err)
	}
	return nil
}

// Load returns the tenant's current list. If the tenant has never been
// materialized, the default template is copied into place first (creating
// all parent directories) and its content returned.
func (s *Store) Load(tenant string) ([]list.Item, error) {
	path := s.ItemsPath(tenant)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = s.materialize(tenant)
	}
	if err != nil {
		return nil, fmt.Errorf("loading tenant %q: %w", tenant, err)
	}

	items, err := list.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tenant %q: %w", tenant, err)
	}
	return items, nil
}

// Save encodes the full list and atomically replaces the tenant's file
// using a temp-file-then-rename. The tenant directory must already exist
// (Load creates it).
func (s *Store) Save(tenant string, items []list.Item) error {
	data, err := list.Encode(items)
	if err != nil {
		return fmt.Errorf("tenant %q: %w", tenant, err)
	}

	path := s.ItemsPath(tenant)
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".items-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming items file: %w", err)
	}
	committed = true

	return nil
}

// materialize copies the default template into the tenant's directory and
// returns the template bytes.
func (s *Store) materialize(tenant string) ([]byte, error) {
	data, err := os.ReadFile(s.DefaultsPath())
	if err != nil {
		return nil, fmt.Errorf("reading default template: %w", err)
	}

	path := s.ItemsPath(tenant)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating tenant dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("writing tenant file: %w", err)
	}

	log.Printf("Created tenant file: %s", path)
	return data, nil
}
