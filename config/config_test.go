/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/resolver"
	"github.com/suparena/pivot/storagemodels"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pivot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Manifest)
	assert.Equal(t, "ratio", cfg.Resolver.Metric)
	assert.Equal(t, resolver.DefaultCutoff, cfg.Resolver.Cutoff)
	assert.Equal(t, resolver.DefaultMaxSuggestions, cfg.Resolver.MaxSuggestions)
	assert.Equal(t, storagemodels.DefaultQueryOptions().PageSize, cfg.DynamoDB.PageSize)
	assert.False(t, cfg.DynamoDB.Enabled())
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
manifest: pivots.hcl
resolver:
  metric: levenshtein
  cutoff: 0.8
dynamodb:
  region: eu-west-1
  table: observations
  page_size: 25
`)
	t.Setenv("PIVOT_DYNAMODB_TABLE", "from-env")
	t.Setenv("PIVOT_RESOLVER_MAX_SUGGESTIONS", "5")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "pivots.hcl", cfg.Manifest)
	assert.Equal(t, "levenshtein", cfg.Resolver.Metric)
	assert.Equal(t, 0.8, cfg.Resolver.Cutoff)
	assert.Equal(t, 5, cfg.Resolver.MaxSuggestions)
	assert.Equal(t, "from-env", cfg.DynamoDB.Table)
	assert.Equal(t, int32(25), cfg.DynamoDB.PageSize)
	assert.True(t, cfg.DynamoDB.Enabled())

	cc := cfg.DynamoDB.ClientConfig()
	assert.Equal(t, "eu-west-1", cc.Region)

	opts := storagemodels.Apply(cfg.DynamoDB.QueryOptions()...)
	assert.Equal(t, int32(25), opts.PageSize)
	assert.Equal(t, 3, opts.MaxRetries)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Log:      LogConfig{Level: "info", Format: "console"},
			Resolver: ResolverConfig{Metric: "ratio", Cutoff: 0.6, MaxSuggestions: 3},
			DynamoDB: DynamoDBConfig{PageSize: 100, MaxRetries: 3},
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad metric", func(c *Config) { c.Resolver.Metric = "soundex" }},
		{"zero cutoff", func(c *Config) { c.Resolver.Cutoff = 0 }},
		{"cutoff above one", func(c *Config) { c.Resolver.Cutoff = 1.5 }},
		{"no suggestions", func(c *Config) { c.Resolver.MaxSuggestions = 0 }},
		{"zero page size", func(c *Config) { c.DynamoDB.PageSize = 0 }},
		{"negative retries", func(c *Config) { c.DynamoDB.MaxRetries = -1 }},
	}

	base := valid()
	require.NoError(t, base.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestResolverOptions(t *testing.T) {
	cfg := Config{Resolver: ResolverConfig{Metric: "ratio", Cutoff: 0.99, MaxSuggestions: 1}}
	assert.Len(t, cfg.ResolverOptions(), 3)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log, err := newLogger(LogConfig{Level: "warn", Format: "json"}, false, zapcore.AddSync(&buf))
	require.NoError(t, err)

	log.Infow("hidden")
	log.Warnw("shown", "key", "value")
	require.NoError(t, log.Sync())

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"key":"value"`)

	_, err = newLogger(LogConfig{Level: "loud"}, false, zapcore.AddSync(&buf))
	assert.Error(t, err)
	_, err = newLogger(LogConfig{Level: "info", Format: "xml"}, false, zapcore.AddSync(&buf))
	assert.Error(t, err)

	_, err = NewLogger(LogConfig{Level: "debug", Format: "console"}, true)
	assert.NoError(t, err)
}
