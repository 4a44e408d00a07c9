/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/table"
)

// Params holds the keyword arguments passed to a query provider.
type Params map[string]any

// merge returns a new Params holding base overlaid with each of over in turn.
func merge(base Params, over ...Params) Params {
	n := len(base)
	for _, o := range over {
		n += len(o)
	}
	out := make(Params, n)
	for k, v := range base {
		out[k] = v
	}
	for _, o := range over {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

// QueryFunc is a query provider: it answers a query described by params and
// returns its results as a table. A single-value provider receives one
// identifying value per call; a batch provider receives a []any.
type QueryFunc func(ctx context.Context, params Params) (*table.Table, error)

// Binding says how an entity's identifying value reaches the provider.
// Exactly one of Param or Fixed must be set.
type Binding struct {
	// Param is the keyword that receives the identifying value(s).
	Param string
	// Fixed are keyword arguments passed unchanged; the entity value is not
	// passed and the provider is called once.
	Fixed Params
}

// ParamBinding binds the entity value to the named keyword argument.
func ParamBinding(name string) Binding {
	return Binding{Param: name}
}

// FixedBinding binds a fixed set of keyword arguments.
func FixedBinding(params Params) Binding {
	return Binding{Fixed: params}
}

// IsFixed reports whether the binding passes fixed arguments only.
func (b Binding) IsFixed() bool {
	return b.Param == "" && b.Fixed != nil
}

func (b Binding) validate(entity string) error {
	switch {
	case b.Param == "" && b.Fixed == nil:
		return errors.NewValidationError("EntityBindings["+entity+"]", "binding needs a parameter name or fixed parameters")
	case b.Param != "" && b.Fixed != nil:
		return errors.NewValidationError("EntityBindings["+entity+"]", "binding cannot have both a parameter name and fixed parameters")
	}
	return nil
}

func (b Binding) clone() Binding {
	if b.Fixed == nil {
		return b
	}
	return Binding{Param: b.Param, Fixed: merge(b.Fixed)}
}

// PivotRegistration describes one query capability and the entity types it
// should be reachable from. It is built by the caller, submitted once to
// Registry.Register and not retained.
type PivotRegistration struct {
	// Name is the access point name; unique within a provider.
	Name string `validate:"required"`
	// Invoke is the provider function.
	Invoke QueryFunc `validate:"required"`
	// ProviderClass is the provider's type when it is stateful. It is kept as
	// metadata; the registry never instantiates it.
	ProviderClass reflect.Type `validate:"-"`
	// OutputSchema maps output column names to semantic field names.
	OutputSchema map[string]string `validate:"-"`
	// EntityBindings maps entity type names to bindings.
	EntityBindings map[string]Binding `validate:"required,min=1,dive,keys,required,endkeys"`
	// SupportsBatch is false when Invoke accepts one value per call.
	SupportsBatch bool
}

var validate = validator.New()

// Validate checks that the registration is well formed. It does not resolve
// entity names.
func (r PivotRegistration) Validate() error {
	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Field(), fmt.Sprintf("failed %q check", fe.Tag()))
		}
		return errors.NewValidationError("", err.Error())
	}
	for entity, b := range r.EntityBindings {
		if err := b.validate(entity); err != nil {
			return err
		}
	}
	return nil
}
