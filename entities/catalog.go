/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entities

import (
	"sort"
	"sync"

	"github.com/suparena/pivot/errors"
)

// Catalog is a map-backed Vocabulary. It is populated up front and then
// only read; Add is safe to call concurrently with lookups.
type Catalog struct {
	mu    sync.RWMutex
	types map[string]*EntityType
}

// NewCatalog creates a catalog holding the given entity types.
// It panics if two types share a name, as the vocabulary is static data.
func NewCatalog(types ...*EntityType) *Catalog {
	c := &Catalog{types: make(map[string]*EntityType, len(types))}
	for _, t := range types {
		if err := c.Add(t); err != nil {
			panic("entities: " + err.Error())
		}
	}
	return c
}

// Add registers an entity type. Adding a name twice is an error.
func (c *Catalog) Add(t *EntityType) error {
	if t == nil || t.name == "" {
		return errors.NewValidationError("name", "entity type name is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.types[t.name]; exists {
		return errors.NewAlreadyExistsError("entity type", t.name)
	}
	c.types[t.name] = t
	return nil
}

// Lookup returns the entity type registered under name.
func (c *Catalog) Lookup(name string) (*EntityType, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.types[name]
	return t, ok
}

// Names returns all entity type names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.types))
	for name := range c.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entity types.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.types)
}
