/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"sort"
	"sync"

	"github.com/suparena/pivot/entities"
)

// entityTable holds the access points attached to one entity type.
type entityTable struct {
	mu     sync.RWMutex
	points map[string]*AccessPoint
}

func newEntityTable() *entityTable {
	return &entityTable{
		points: make(map[string]*AccessPoint),
	}
}

// attach stores ap under its name and reports whether it replaced another.
func (t *entityTable) attach(ap *AccessPoint) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, exists := t.points[ap.name]
	t.points[ap.name] = ap
	return exists
}

func (t *entityTable) get(name string) (*AccessPoint, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ap, ok := t.points[name]
	return ap, ok
}

func (t *entityTable) remove(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.points[name]; !exists {
		return false
	}
	delete(t.points, name)
	return true
}

// list returns the access points ordered by name.
func (t *entityTable) list() []*AccessPoint {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*AccessPoint, 0, len(t.points))
	for _, ap := range t.points {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func (t *entityTable) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.points)
}

// attachments maps resolved entity types to their access point tables.
type attachments struct {
	mu     sync.RWMutex
	tables map[*entities.EntityType]*entityTable
}

func newAttachments() *attachments {
	return &attachments{
		tables: make(map[*entities.EntityType]*entityTable),
	}
}

// table returns the table for e. When create is set a missing table is added.
func (a *attachments) table(e *entities.EntityType, create bool) *entityTable {
	a.mu.RLock()
	t, ok := a.tables[e]
	a.mu.RUnlock()
	if ok || !create {
		return t
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok = a.tables[e]; ok {
		return t
	}
	t = newEntityTable()
	a.tables[e] = t
	return t
}

// types returns the entity types holding at least one access point,
// ordered by name.
func (a *attachments) types() []*entities.EntityType {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*entities.EntityType, 0, len(a.tables))
	for e, t := range a.tables {
		if t.len() > 0 {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
