/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package pivot

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/table"
)

// Provider supplies a named set of pivot registrations.
type Provider interface {
	Name() string
	Pivots() []registry.PivotRegistration
}

// Option configures a Pivot.
type Option func(*Pivot)

// WithLogger sets the logger of the environment and its registry.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Pivot) {
		if log != nil {
			p.log = log
		}
	}
}

// WithRegistryOptions passes options to the underlying registry.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(p *Pivot) {
		p.regOpts = append(p.regOpts, opts...)
	}
}

// Report is the result of adding a provider.
type Report struct {
	Provider string
	Outcomes []registry.Outcome
}

// Attached returns every access point attached for the provider.
func (r Report) Attached() []registry.Attachment {
	var out []registry.Attachment
	for _, o := range r.Outcomes {
		out = append(out, o.Attached...)
	}
	return out
}

// Failed returns every binding that could not be attached.
func (r Report) Failed() []registry.Failure {
	var out []registry.Failure
	for _, o := range r.Outcomes {
		out = append(out, o.Failed...)
	}
	return out
}

// Warnings returns the replacement warnings of all registrations.
func (r Report) Warnings() []error {
	var out []error
	for _, o := range r.Outcomes {
		out = append(out, o.Warnings...)
	}
	return out
}

// Err joins the failures of all registrations.
func (r Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if err := o.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

type providerEntry struct {
	provider Provider
	points   []*registry.AccessPoint
}

// Pivot is a pivot environment: a registry plus the providers registered in it.
// It is safe for concurrent use.
type Pivot struct {
	mu        sync.RWMutex
	providers map[string]*providerEntry
	registry  *registry.Registry
	regOpts   []registry.Option
	log       *zap.SugaredLogger
}

// New creates a pivot environment over vocab.
func New(vocab entities.Vocabulary, opts ...Option) *Pivot {
	p := &Pivot{
		providers: make(map[string]*providerEntry),
		log:       zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.registry = registry.New(vocab, append([]registry.Option{registry.WithLogger(p.log)}, p.regOpts...)...)
	return p
}

// Registry returns the underlying registry.
func (p *Pivot) Registry() *registry.Registry {
	return p.registry
}

// AddProvider registers every pivot of prov. All registrations are checked
// before any is attached; a malformed one rejects the provider. Entity names
// that do not resolve are reported in the Report and do not fail the call.
func (p *Pivot) AddProvider(prov Provider) (Report, error) {
	name := prov.Name()
	report := Report{Provider: name}
	if name == "" {
		return report, errors.NewValidationError("provider", "name is required")
	}

	pivots := prov.Pivots()
	for _, reg := range pivots {
		if err := reg.Validate(); err != nil {
			return report, fmt.Errorf("provider %s: pivot %q: %w", name, reg.Name, err)
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.providers[name]; exists {
		return report, errors.NewAlreadyExistsError("provider", name)
	}

	entry := &providerEntry{provider: prov}
	for _, reg := range pivots {
		out, err := p.registry.Register(reg)
		if err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, out)
		for _, a := range out.Attached {
			if ap, err := p.registry.Lookup(a.Entity, a.Name); err == nil {
				entry.points = append(entry.points, ap)
			}
		}
	}
	p.providers[name] = entry

	p.log.Infow("Added provider", "provider", name,
		"attached", len(report.Attached()), "failed", len(report.Failed()))
	return report, nil
}

// RemoveProvider removes prov's access points and forgets the provider.
// Access points since replaced by another registration are left in place.
func (p *Pivot) RemoveProvider(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry, exists := p.providers[name]
	if !exists {
		return errors.NewNotFoundError("provider", name)
	}
	for _, ap := range entry.points {
		entity := ap.Entity().Name()
		if current, err := p.registry.Lookup(entity, ap.Name()); err == nil && current == ap {
			if err := p.registry.Unregister(entity, ap.Name()); err != nil {
				return err
			}
		}
	}
	delete(p.providers, name)
	p.log.Infow("Removed provider", "provider", name)
	return nil
}

// GetProvider returns the provider registered under name.
func (p *Pivot) GetProvider(name string) (Provider, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	entry, exists := p.providers[name]
	if !exists {
		return nil, errors.NewNotFoundError("provider", name)
	}
	return entry.provider, nil
}

// Providers returns the registered provider names in order.
func (p *Pivot) Providers() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.providers))
	for n := range p.providers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Call invokes the access point fn on entity.
func (p *Pivot) Call(ctx context.Context, entity, fn string, value any, opts registry.Params) (*table.Table, error) {
	return p.registry.Call(ctx, entity, fn, value, opts)
}
