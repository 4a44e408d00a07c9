/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/suparena/pivot"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/manifest"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/table"
)

const defaultTimeout = 2 * time.Minute

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := pivot.GetVersionInfo()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "pivotctl version %s\n", info.Version)
			fmt.Fprintf(w, "Git commit: %s\n", info.GitCommit)
			fmt.Fprintf(w, "Build date: %s\n", info.BuildDate)
			fmt.Fprintf(w, "Go version: %s\n", info.GoVersion)
			return nil
		},
	}
}

func newEntitiesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List entity types and their access points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := c.environment(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]entityRow, 0, c.vocab.Len())
			for _, name := range c.vocab.Names() {
				points, err := env.Registry().AccessPoints(name)
				if err != nil {
					return err
				}
				row := entityRow{Entity: name, AccessPoints: []string{}}
				for _, ap := range points {
					row.AccessPoints = append(row.AccessPoints, ap.Name())
				}
				rows = append(rows, row)
			}

			if c.outputJSON {
				return writeJSON(cmd.OutOrStdout(), rows)
			}
			renderEntities(cmd.OutOrStdout(), rows)
			return nil
		},
	}
}

func newResolveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Resolve entity type names, suggesting close matches for misspellings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := c.resolver()

			results := make([]resolveResult, 0, len(args))
			misses := 0
			for _, name := range args {
				r := resolveResult{Name: name}
				entity, err := res.Resolve(name)
				if err != nil {
					misses++
					r.Error = err.Error()
					var unknown *errors.UnknownEntityTypeError
					if stderrors.As(err, &unknown) {
						r.Suggestions = unknown.Suggestions
					}
				} else {
					r.Entity = entity.Name()
				}
				results = append(results, r)
			}

			if c.outputJSON {
				if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
					return err
				}
			} else {
				renderResolve(cmd.OutOrStdout(), results)
			}
			if misses > 0 {
				return fmt.Errorf("%d of %d names did not resolve", misses, len(args))
			}
			return nil
		},
	}
}

// stubCatalog binds every function named by m to a query that returns an
// empty table.
func stubCatalog(m *manifest.Manifest) manifest.Catalog {
	cat := make(manifest.Catalog)
	for _, fn := range m.Functions() {
		cat[fn] = func(ctx context.Context, p registry.Params) (*table.Table, error) {
			return table.New(), nil
		}
	}
	return cat
}

func newCheckCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Register a manifest against the entity vocabulary and report the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := c.loadManifest()
			if err != nil {
				return err
			}
			prov, err := manifest.NewProvider(m, stubCatalog(m))
			if err != nil {
				return err
			}

			env := pivot.New(c.vocab,
				pivot.WithLogger(c.log),
				pivot.WithRegistryOptions(registry.WithResolver(c.resolver())),
			)
			report, err := env.AddProvider(prov)
			if err != nil {
				return err
			}

			summary := newCheckSummary(report)
			if c.outputJSON {
				if err := writeJSON(cmd.OutOrStdout(), summary); err != nil {
					return err
				}
			} else {
				renderCheck(cmd.OutOrStdout(), summary)
			}
			return report.Err()
		},
	}
}

// parseParam splits k=v and decodes v as a YAML scalar, so numbers, booleans
// and timestamps keep their type.
func parseParam(kv string) (string, any, error) {
	key, raw, ok := strings.Cut(kv, "=")
	if !ok || key == "" {
		return "", nil, errors.NewValidationError("param", fmt.Sprintf("%q is not key=value", kv))
	}
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return key, raw, nil
	}
	switch v.(type) {
	case map[string]any, []any:
		return key, raw, nil
	}
	return key, v, nil
}

func newQueryCmd(c *cli) *cobra.Command {
	var params []string

	cmd := &cobra.Command{
		Use:   "query ENTITY FUNCTION VALUE...",
		Short: "Call an access point with one or more values",
		Long: `Call the access point FUNCTION on entity type ENTITY.

All values are passed in a single call; providers without batch support are
called once per value. The built-in "echo" access point is attached to every
entity type, and "observations" is available when a DynamoDB table is configured.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := make(registry.Params, len(params))
			for _, kv := range params {
				k, v, err := parseParam(kv)
				if err != nil {
					return err
				}
				opts[k] = v
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
			defer cancel()

			env, err := c.environment(ctx)
			if err != nil {
				return err
			}
			res, err := env.Call(ctx, args[0], args[1], args[2:], opts)
			if err != nil {
				return err
			}

			if c.outputJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			renderTable(cmd.OutOrStdout(), res)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Extra query parameter as key=value (repeatable)")
	return cmd
}
