// Package ledger records which packages crafty installed.
//
// The ledger is a set of package names persisted as a single JSON file:
//
//	{"packages": ["archcraft-fish", "htop"]}
//
// Callers load it at the start of an operation and every mutation is
// written back immediately. There is no locking; two processes mutating the
// same file race and the last write wins.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
)

// ErrPersistence is returned when the ledger cannot be written.
var ErrPersistence = errors.New("ledger: cannot persist")

// Store reads and writes the ledger file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a store for the ledger file at path on the OS filesystem.
func NewStore(path string) *Store {
	return NewStoreWithFs(afero.NewOsFs(), path)
}

// NewStoreWithFs creates a store backed by fs.
func NewStoreWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// Path returns the ledger file location.
func (s *Store) Path() string { return s.path }

// Load reads the ledger. A missing, unreadable or corrupt file yields an
// empty ledger.
func (s *Store) Load() *Ledger {
	l := &Ledger{store: s, packages: make(map[string]struct{})}

	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return l
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return l
	}
	for _, name := range f.Packages {
		l.packages[name] = struct{}{}
	}
	return l
}

// Save writes l to disk, creating parent directories as needed.
func (s *Store) Save(l *Ledger) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: create ledger dir: %w", ErrPersistence, err)
	}

	data, err := json.MarshalIndent(file{Packages: l.Names()}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode ledger: %w", ErrPersistence, err)
	}

	if err := afero.WriteFile(s.fs, s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("%w: write ledger: %w", ErrPersistence, err)
	}
	return nil
}

type file struct {
	Packages []string `json:"packages"`
}

// Ledger is the in-memory set of installed package names.
type Ledger struct {
	store    *Store
	packages map[string]struct{}
}

// Add records name and saves the ledger. Adding a known name still saves.
func (l *Ledger) Add(name string) error {
	l.packages[name] = struct{}{}
	return l.store.Save(l)
}

// Remove forgets name and saves the ledger. Unknown names are ignored.
func (l *Ledger) Remove(name string) error {
	if _, ok := l.packages[name]; !ok {
		return nil
	}
	delete(l.packages, name)
	return l.store.Save(l)
}

// Contains reports whether name is recorded.
func (l *Ledger) Contains(name string) bool {
	_, ok := l.packages[name]
	return ok
}

// Names returns the recorded names in sorted order.
func (l *Ledger) Names() []string {
	names := make([]string, 0, len(l.packages))
	for name := range l.packages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of recorded names.
func (l *Ledger) Len() int { return len(l.packages) }
