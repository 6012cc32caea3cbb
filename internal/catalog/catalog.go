// Package catalog holds the canonical ingredient catalog and matches
// normalized ingredient names against it.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/textnorm"
)

var (
	// ErrDuplicateAlias is returned when two entries claim the same alias.
	ErrDuplicateAlias = errors.New("duplicate alias")
	// ErrInvalidEntry is returned for entries without a usable name or category.
	ErrInvalidEntry = errors.New("invalid catalog entry")
)

//go:embed catalog.yaml
var builtinYAML []byte

// Entry is a canonical ingredient. Names and aliases are stored in
// normalized token form (see textnorm.NameTokens).
type Entry struct {
	CanonicalName string          `yaml:"name" json:"canonical_name"`
	DisplayName   string          `yaml:"display" json:"display_name"`
	Category      models.Category `yaml:"category" json:"category"`
	Aliases       []string        `yaml:"aliases" json:"aliases,omitempty"`
	Allergens     []string        `yaml:"allergens" json:"allergens,omitempty"`
}

// Catalog is an immutable alias index over a fixed list of entries.
type Catalog struct {
	entries []Entry
	byAlias map[string]int
	byName  map[string]int
}

// New validates entries and builds the alias index. Each entry's canonical
// name and display name are registered as aliases too.
func New(entries []Entry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byAlias: make(map[string]int, len(entries)*3),
		byName:  make(map[string]int, len(entries)),
	}

	for i := range entries {
		e := entries[i]
		if !e.Category.IsValid() {
			return nil, fmt.Errorf("%w: entry %d (%q): unknown category %q", ErrInvalidEntry, i, e.DisplayName, e.Category)
		}
		if e.DisplayName == "" {
			e.DisplayName = e.CanonicalName
		}
		if e.CanonicalName == "" {
			e.CanonicalName = e.DisplayName
		}
		e.CanonicalName = textnorm.NameTokens(e.CanonicalName)
		if e.CanonicalName == "" {
			return nil, fmt.Errorf("%w: entry %d (%q) has no name", ErrInvalidEntry, i, e.DisplayName)
		}
		if _, dup := c.byName[e.CanonicalName]; dup {
			return nil, fmt.Errorf("%w: canonical name %q used twice", ErrDuplicateAlias, e.CanonicalName)
		}

		idx := len(c.entries)
		raw := append([]string{e.CanonicalName, e.DisplayName}, e.Aliases...)
		e.Aliases = make([]string, 0, len(raw))
		for _, a := range raw {
			key := textnorm.NameTokens(a)
			if key == "" {
				continue
			}
			if owner, taken := c.byAlias[key]; taken {
				if owner == idx {
					continue
				}
				return nil, fmt.Errorf("%w: %q claimed by %q and %q", ErrDuplicateAlias, key, c.entries[owner].CanonicalName, e.CanonicalName)
			}
			c.byAlias[key] = idx
			e.Aliases = append(e.Aliases, key)
		}
		e.Allergens = slices.Clone(e.Allergens)

		c.byName[e.CanonicalName] = idx
		c.entries = append(c.entries, e)
	}
	return c, nil
}

// Load parses a YAML list of entries.
func Load(r io.Reader) (*Catalog, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}
	return New(entries)
}

// LoadFile reads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

var builtin = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(builtinYAML))
})

// Builtin returns the catalog shipped with the binary. It is parsed once.
func Builtin() (*Catalog, error) {
	return builtin()
}

// Lookup finds the entry for an exact normalized alias.
func (c *Catalog) Lookup(alias string) (Entry, bool) {
	idx, ok := c.byAlias[alias]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Get finds an entry by canonical name.
func (c *Catalog) Get(canonical string) (Entry, bool) {
	idx, ok := c.byName[canonical]
	if !ok {
		return Entry{}, false
	}
	return c.entries[idx], true
}

// Entries returns the entries in catalog order. The slice must not be modified.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}
