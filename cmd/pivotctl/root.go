/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suparena/pivot"
	"github.com/suparena/pivot/config"
	"github.com/suparena/pivot/entities"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/manifest"
	"github.com/suparena/pivot/registry"
	"github.com/suparena/pivot/resolver"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

// cli carries the global flags and the state built from them.
type cli struct {
	configFile   string
	manifestPath string
	outputJSON   bool
	noColor      bool

	cfg   *config.Config
	log   *zap.SugaredLogger
	vocab *entities.Catalog
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "pivotctl",
		Short:         "Inspect and run entity pivots",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.noColor {
				color.NoColor = true
			}
			return c.init()
		},
	}

	root.PersistentFlags().StringVar(&c.configFile, "config", "", "Config file path (default ./pivot.yaml when present)")
	root.PersistentFlags().StringVar(&c.manifestPath, "manifest", "", "Pivot manifest (.yaml, .yml or .hcl)")
	root.PersistentFlags().BoolVar(&c.outputJSON, "json", false, "Output in JSON format")
	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newEntitiesCmd(c))
	root.AddCommand(newResolveCmd(c))
	root.AddCommand(newCheckCmd(c))
	root.AddCommand(newQueryCmd(c))

	return root
}

func (c *cli) init() error {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return err
	}
	if c.manifestPath != "" {
		cfg.Manifest = c.manifestPath
	}

	log, err := config.NewLogger(cfg.Log, !c.noColor)
	if err != nil {
		return err
	}

	c.cfg = cfg
	c.log = log
	c.vocab = entities.Default()
	return nil
}

func (c *cli) resolver() *resolver.Resolver {
	return resolver.New(c.vocab, c.cfg.ResolverOptions()...)
}

func (c *cli) loadManifest() (*manifest.Manifest, error) {
	if c.cfg.Manifest == "" {
		return nil, errors.NewValidationError("manifest", "no manifest given; use --manifest or the manifest config key")
	}
	return manifest.Load(c.cfg.Manifest)
}

// environment builds a pivot environment with the built-in providers, plus
// the manifest's provider when one is configured.
func (c *cli) environment(ctx context.Context) (*pivot.Pivot, error) {
	env := pivot.New(c.vocab,
		pivot.WithLogger(c.log),
		pivot.WithRegistryOptions(registry.WithResolver(c.resolver())),
	)

	providers, err := c.builtinProviders(ctx)
	if err != nil {
		return nil, err
	}

	if c.cfg.Manifest != "" {
		m, err := c.loadManifest()
		if err != nil {
			return nil, err
		}
		prov, err := manifest.NewProvider(m, builtinCatalog())
		if err != nil {
			return nil, fmt.Errorf("manifest %s: %w", c.cfg.Manifest, err)
		}
		providers = append(providers, prov)
	}

	for _, p := range providers {
		report, err := env.AddProvider(p)
		if err != nil {
			return nil, err
		}
		for _, f := range report.Failed() {
			c.log.Warnw("Skipped binding", "provider", p.Name(), "entity", f.Entity, "error", f.Err)
		}
	}
	return env, nil
}
