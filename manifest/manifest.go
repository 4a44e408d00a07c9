/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package manifest

import (
	stderrors "errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/registry"
)

// Manifest is a declarative set of pivots published by one provider.
type Manifest struct {
	// Provider names the provider the pivots are registered under.
	Provider string      `yaml:"provider" validate:"required"`
	Pivots   []PivotSpec `yaml:"pivots" validate:"required,min=1,dive"`
}

// PivotSpec describes one pivot registration.
type PivotSpec struct {
	Name string `yaml:"name" validate:"required"`
	// Function is the catalog name of the query function.
	Function string `yaml:"function" validate:"required"`
	// SupportsBatch defaults to true when unset.
	SupportsBatch *bool             `yaml:"supports_batch"`
	Schema        map[string]string `yaml:"schema"`
	// Entities maps entity type names to bindings.
	Entities map[string]BindingSpec `yaml:"entities" validate:"required,min=1,dive,keys,required,endkeys"`
}

// BindingSpec is either a parameter name or a set of fixed parameters.
type BindingSpec struct {
	Param  string
	Params map[string]any
}

func (b BindingSpec) binding() registry.Binding {
	if b.Params != nil {
		return registry.FixedBinding(registry.Params(b.Params))
	}
	return registry.ParamBinding(b.Param)
}

// Batch reports the effective batch support of the pivot.
func (p PivotSpec) Batch() bool {
	return p.SupportsBatch == nil || *p.SupportsBatch
}

// Catalog maps function names used in manifests to query functions.
type Catalog map[string]registry.QueryFunc

var validate = validator.New()

// Validate checks the manifest structure.
func (m *Manifest) Validate() error {
	if err := validate.Struct(m); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("failed %q check", fe.Tag()))
		}
		return errors.NewValidationError("", err.Error())
	}

	seen := make(map[string]bool, len(m.Pivots))
	for _, p := range m.Pivots {
		if seen[p.Name] {
			return errors.NewAlreadyExistsError("pivot", p.Name)
		}
		seen[p.Name] = true
		for entity, b := range p.Entities {
			if (b.Param == "") == (b.Params == nil) {
				return errors.NewValidationError(p.Name+".entities."+entity, "binding needs either a parameter name or fixed parameters")
			}
		}
	}
	return nil
}

// Functions returns the distinct function names the manifest refers to.
func (m *Manifest) Functions() []string {
	set := make(map[string]bool)
	for _, p := range m.Pivots {
		set[p.Function] = true
	}
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Registrations builds the pivot registrations, looking functions up in cat.
func (m *Manifest) Registrations(cat Catalog) ([]registry.PivotRegistration, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	out := make([]registry.PivotRegistration, 0, len(m.Pivots))
	for _, p := range m.Pivots {
		fn, ok := cat[p.Function]
		if !ok || fn == nil {
			return nil, errors.NewNotFoundError("function", p.Function)
		}
		bindings := make(map[string]registry.Binding, len(p.Entities))
		for entity, b := range p.Entities {
			bindings[entity] = b.binding()
		}
		out = append(out, registry.PivotRegistration{
			Name:           p.Name,
			Invoke:         fn,
			OutputSchema:   p.Schema,
			EntityBindings: bindings,
			SupportsBatch:  p.Batch(),
		})
	}
	return out, nil
}

// Provider publishes the pivots of a manifest.
type Provider struct {
	name   string
	pivots []registry.PivotRegistration
}

// NewProvider resolves the manifest's functions against cat.
func NewProvider(m *Manifest, cat Catalog) (*Provider, error) {
	regs, err := m.Registrations(cat)
	if err != nil {
		return nil, err
	}
	return &Provider{name: m.Provider, pivots: regs}, nil
}

// Name returns the provider name from the manifest.
func (p *Provider) Name() string {
	return p.name
}

// Pivots returns the manifest's registrations.
func (p *Provider) Pivots() []registry.PivotRegistration {
	return p.pivots
}
