/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entities

import (
	"fmt"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/pivot/errors"
)

// Vocabulary is the closed, read-only set of legal entity types.
type Vocabulary interface {
	// Names returns every legal entity type name.
	Names() []string
	// Lookup returns the entity type registered under name (case-sensitive).
	Lookup(name string) (*EntityType, bool)
}

// EntityType is the handle for one entity type. Handles are compared by
// identity; the registry uses them only as attachment points.
type EntityType struct {
	name    string
	formats []string
}

// NewEntityType creates an entity type. formats are strfmt format names
// ("ipv4", "hostname", ...) that identifying values may match; an empty
// list accepts any non-empty value.
func NewEntityType(name string, formats ...string) *EntityType {
	return &EntityType{name: name, formats: append([]string(nil), formats...)}
}

// Name returns the entity type name.
func (e *EntityType) Name() string {
	return e.name
}

// Formats returns the value formats accepted by the entity type.
func (e *EntityType) Formats() []string {
	return append([]string(nil), e.formats...)
}

func (e *EntityType) String() string {
	return e.name
}

// ValidateValue checks one identifying value against the entity's formats.
// Non-string scalars are formatted with %v before validation.
func (e *EntityType) ValidateValue(v any) error {
	var s string
	switch tv := v.(type) {
	case nil:
		return errors.NewValidationError(e.name, "empty value")
	case string:
		s = tv
	case fmt.Stringer:
		s = tv.String()
	default:
		s = fmt.Sprintf("%v", tv)
	}
	if strings.TrimSpace(s) == "" {
		return errors.NewValidationError(e.name, "empty value")
	}
	if len(e.formats) == 0 {
		return nil
	}
	for _, f := range e.formats {
		if strfmt.Default.Validates(f, s) {
			return nil
		}
	}
	return errors.NewValidationError(e.name, fmt.Sprintf("%q is not a valid %s", s, strings.Join(e.formats, " or ")))
}
