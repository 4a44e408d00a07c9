/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"

	"github.com/suparena/pivot"
	"github.com/suparena/pivot/datastore/ddb"
	"github.com/suparena/pivot/manifest"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/table"
)

const (
	builtinProviderName = "builtin"
	echoFunction        = "echo"
	echoParam           = "value"
)

// echo returns the values it was called with, one row per value.
func echo(ctx context.Context, p registry.Params) (*table.Table, error) {
	switch v := p[echoParam].(type) {
	case []any:
		return table.FromValues(v...), nil
	case nil:
		return table.FromValues(), nil
	default:
		return table.FromValues(v), nil
	}
}

// builtinCatalog is the set of functions manifests may refer to.
func builtinCatalog() manifest.Catalog {
	return manifest.Catalog{
		echoFunction: echo,
	}
}

type staticProvider struct {
	name   string
	pivots []registry.PivotRegistration
}

func (s staticProvider) Name() string                         { return s.name }
func (s staticProvider) Pivots() []registry.PivotRegistration { return s.pivots }

// builtinProviders attaches echo to every entity type and, when a DynamoDB
// table is configured, the observation lookup.
func (c *cli) builtinProviders(ctx context.Context) ([]pivot.Provider, error) {
	names := c.vocab.Names()

	bindings := make(map[string]registry.Binding, len(names))
	for _, n := range names {
		bindings[n] = registry.ParamBinding(echoParam)
	}
	providers := []pivot.Provider{staticProvider{
		name: builtinProviderName,
		pivots: []registry.PivotRegistration{{
			Name:           echoFunction,
			Invoke:         echo,
			EntityBindings: bindings,
			SupportsBatch:  true,
		}},
	}}

	dc := c.cfg.DynamoDB
	if !dc.Enabled() {
		return providers, nil
	}
	client, err := ddb.NewClient(ctx, dc.ClientConfig())
	if err != nil {
		return nil, err
	}
	store, err := ddb.NewObservationStore(client, dc.Table,
		ddb.WithQueryOptions(dc.QueryOptions()...),
		ddb.WithLogger(c.log),
	)
	if err != nil {
		return nil, err
	}
	return append(providers, ddb.NewObservationProvider(store, names...)), nil
}
