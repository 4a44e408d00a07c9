/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/metrics"
	"github.com/suparena/pivot/resolver"
	"github.com/suparena/pivot/table"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for registration and invocation events.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// WithResolver replaces the entity name resolver. It must resolve against the
// registry's vocabulary.
func WithResolver(res *resolver.Resolver) Option {
	return func(r *Registry) {
		if res != nil {
			r.resolver = res
		}
	}
}

// WithValueValidation makes access points check every identifying value
// against the entity type's formats before calling the provider.
func WithValueValidation() Option {
	return func(r *Registry) {
		r.validateValues = true
	}
}

// Registry publishes query providers as access points on entity types.
// It is safe for concurrent use.
type Registry struct {
	vocab          entities.Vocabulary
	resolver       *resolver.Resolver
	points         *attachments
	log            *zap.SugaredLogger
	validateValues bool
}

// New creates a Registry resolving entity names against vocab.
func New(vocab entities.Vocabulary, opts ...Option) *Registry {
	r := &Registry{
		vocab:  vocab,
		points: newAttachments(),
		log:    zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.resolver == nil {
		r.resolver = resolver.New(vocab)
	}
	return r
}

// Vocabulary returns the vocabulary the registry resolves against.
func (r *Registry) Vocabulary() entities.Vocabulary {
	return r.vocab
}

// Register attaches reg to every entity type named in its bindings.
//
// The returned error reports a malformed registration only; nothing is
// attached in that case. Bindings are processed independently in entity name
// order, and a binding whose entity name does not resolve is recorded in
// Outcome.Failed without affecting the others. Registering the same name on
// the same entity again replaces the earlier access point.
func (r *Registry) Register(reg PivotRegistration) (Outcome, error) {
	out := Outcome{Name: reg.Name}
	if err := reg.Validate(); err != nil {
		return out, fmt.Errorf("invalid registration %q: %w", reg.Name, err)
	}

	var schema map[string]string
	if reg.OutputSchema != nil {
		schema = make(map[string]string, len(reg.OutputSchema))
		for k, v := range reg.OutputSchema {
			schema[k] = v
		}
	}

	for _, name := range sortedNames(reg.EntityBindings) {
		binding := reg.EntityBindings[name].clone()

		entity, err := r.resolver.Resolve(name)
		if err != nil {
			out.Failed = append(out.Failed, Failure{Entity: name, Err: err})
			metrics.BindingsTotal.WithLabelValues(name, metrics.ResultFailed).Inc()
			r.log.Warnw("Failed to attach access point", "entity", name, "function", reg.Name, "error", err)
			continue
		}

		ap := &AccessPoint{
			entity:        entity,
			name:          reg.Name,
			binding:       binding,
			schema:        schema,
			providerClass: reg.ProviderClass,
			supportsBatch: reg.SupportsBatch,
			validate:      r.validateValues,
			call:          newCallable(reg.Invoke, binding, reg.SupportsBatch, entity.Name(), reg.Name),
			log:           r.log,
		}

		replaced := r.points.table(entity, true).attach(ap)
		out.Attached = append(out.Attached, Attachment{Entity: entity.Name(), Name: reg.Name, Replaced: replaced})
		if replaced {
			out.Warnings = append(out.Warnings, errors.NewDuplicateAttachmentError(entity.Name(), reg.Name))
			metrics.BindingsTotal.WithLabelValues(entity.Name(), metrics.ResultReplaced).Inc()
			r.log.Warnw("Replaced access point", "entity", entity.Name(), "function", reg.Name)
			continue
		}
		metrics.BindingsTotal.WithLabelValues(entity.Name(), metrics.ResultAttached).Inc()
		r.log.Infow("Attached access point", "entity", entity.Name(), "function", reg.Name, "batch", reg.SupportsBatch)
	}
	return out, nil
}

// Lookup returns the access point name attached to entity.
func (r *Registry) Lookup(entity, name string) (*AccessPoint, error) {
	t, err := r.resolver.Resolve(entity)
	if err != nil {
		return nil, err
	}
	tbl := r.points.table(t, false)
	if tbl == nil {
		return nil, errors.NewNotFoundError("access point", entity+"."+name)
	}
	ap, ok := tbl.get(name)
	if !ok {
		return nil, errors.NewNotFoundError("access point", entity+"."+name)
	}
	return ap, nil
}

// AccessPoints returns the access points attached to entity, ordered by name.
func (r *Registry) AccessPoints(entity string) ([]*AccessPoint, error) {
	t, err := r.resolver.Resolve(entity)
	if err != nil {
		return nil, err
	}
	tbl := r.points.table(t, false)
	if tbl == nil {
		return []*AccessPoint{}, nil
	}
	return tbl.list(), nil
}

// Entities returns the names of entity types with at least one access point.
func (r *Registry) Entities() []string {
	types := r.points.types()
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = t.Name()
	}
	return out
}

// Entries returns a snapshot of every access point, ordered by entity then name.
func (r *Registry) Entries() []*AccessPoint {
	var out []*AccessPoint
	for _, t := range r.points.types() {
		out = append(out, r.points.table(t, false).list()...)
	}
	return out
}

// Count returns the number of attached access points.
func (r *Registry) Count() int {
	n := 0
	for _, t := range r.points.types() {
		n += r.points.table(t, false).len()
	}
	return n
}

// Unregister removes the access point name from entity.
func (r *Registry) Unregister(entity, name string) error {
	t, err := r.resolver.Resolve(entity)
	if err != nil {
		return err
	}
	tbl := r.points.table(t, false)
	if tbl == nil || !tbl.remove(name) {
		return errors.NewNotFoundError("access point", entity+"."+name)
	}
	r.log.Infow("Removed access point", "entity", t.Name(), "function", name)
	return nil
}

// Call invokes the access point name on entity with value and extra options.
func (r *Registry) Call(ctx context.Context, entity, name string, value any, opts Params) (*table.Table, error) {
	ap, err := r.Lookup(entity, name)
	if err != nil {
		return nil, err
	}
	return ap.Call(ctx, value, opts)
}
