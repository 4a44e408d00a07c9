/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/metrics"
	"github.com/suparena/pivot/table"
)

// AccessPoint is a callable attached to an entity type. It is immutable once
// attached and safe for concurrent use.
type AccessPoint struct {
	entity        *entities.EntityType
	name          string
	binding       Binding
	schema        map[string]string
	providerClass reflect.Type
	supportsBatch bool
	validate      bool
	call          callable
	log           *zap.SugaredLogger
}

// Entity returns the entity type the access point is attached to.
func (ap *AccessPoint) Entity() *entities.EntityType {
	return ap.entity
}

// Name returns the access point name.
func (ap *AccessPoint) Name() string {
	return ap.name
}

// OutputSchema returns a copy of the output column to semantic field map.
func (ap *AccessPoint) OutputSchema() map[string]string {
	if ap.schema == nil {
		return nil
	}
	out := make(map[string]string, len(ap.schema))
	for k, v := range ap.schema {
		out[k] = v
	}
	return out
}

// ProviderClass returns the provider type recorded at registration, if any.
func (ap *AccessPoint) ProviderClass() reflect.Type {
	return ap.providerClass
}

// SupportsBatch reports whether the underlying provider takes a value list.
func (ap *AccessPoint) SupportsBatch() bool {
	return ap.supportsBatch
}

// Binding returns a copy of the entity binding.
func (ap *AccessPoint) Binding() Binding {
	return ap.binding.clone()
}

// String returns "Entity.name".
func (ap *AccessPoint) String() string {
	return ap.entity.Name() + "." + ap.name
}

// Call invokes the provider for value, which may be a scalar or a slice.
// opts are extra keyword arguments passed through to the provider. Errors
// returned by the provider are returned unchanged.
func (ap *AccessPoint) Call(ctx context.Context, value any, opts Params) (*table.Table, error) {
	entity := ap.entity.Name()
	metrics.InvocationsTotal.WithLabelValues(entity, ap.name).Inc()
	start := time.Now()
	defer func() {
		metrics.InvocationDuration.WithLabelValues(entity, ap.name).Observe(time.Since(start).Seconds())
	}()

	values := normalizeValues(value)
	if ap.validate && !ap.binding.IsFixed() {
		for i, v := range values {
			if err := ap.entity.ValidateValue(v); err != nil {
				metrics.InvocationErrorsTotal.WithLabelValues(entity, ap.name).Inc()
				return nil, fmt.Errorf("%s value %d: %w", ap, i, err)
			}
		}
	}

	ap.log.Debugw("Invoking access point", "entity", entity, "function", ap.name, "values", len(values))
	result, err := ap.call(ctx, values, opts)
	if err != nil {
		metrics.InvocationErrorsTotal.WithLabelValues(entity, ap.name).Inc()
		return nil, err
	}
	return result, nil
}
