/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/suparena/pivot/datastore/ddb"
	"github.com/suparena/pivot/errors"
	"github.com/suparena/pivot/resolver"
	"github.com/suparena/pivot/storagemodels"
)

// EnvPrefix is the prefix of environment variables overriding config keys.
// log.level is read from PIVOT_LOG_LEVEL.
const EnvPrefix = "PIVOT"

// LogConfig selects the logger level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=console json"`
}

// ResolverConfig tunes entity name suggestions.
type ResolverConfig struct {
	Metric         string  `mapstructure:"metric" validate:"oneof=ratio levenshtein"`
	Cutoff         float64 `mapstructure:"cutoff" validate:"gt=0,lte=1"`
	MaxSuggestions int     `mapstructure:"max_suggestions" validate:"min=1"`
}

// DynamoDBConfig holds the observation store settings. An empty Table disables
// the store.
type DynamoDBConfig struct {
	Region          string `mapstructure:"region"`
	Table           string `mapstructure:"table"`
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	MaxRetries      int    `mapstructure:"max_retries" validate:"min=0"`
	PageSize        int32  `mapstructure:"page_size" validate:"min=1"`
}

// Config holds all configuration for pivotctl.
type Config struct {
	Log LogConfig `mapstructure:"log"`
	// Manifest is the path of a YAML or HCL pivot manifest.
	Manifest string         `mapstructure:"manifest"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	DynamoDB DynamoDBConfig `mapstructure:"dynamodb"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("manifest", "")

	v.SetDefault("resolver.metric", "ratio")
	v.SetDefault("resolver.cutoff", resolver.DefaultCutoff)
	v.SetDefault("resolver.max_suggestions", resolver.DefaultMaxSuggestions)

	defaults := storagemodels.DefaultQueryOptions()
	v.SetDefault("dynamodb.region", "")
	v.SetDefault("dynamodb.table", "")
	v.SetDefault("dynamodb.endpoint", "")
	v.SetDefault("dynamodb.access_key_id", "")
	v.SetDefault("dynamodb.secret_access_key", "")
	v.SetDefault("dynamodb.max_retries", defaults.MaxRetries)
	v.SetDefault("dynamodb.page_size", defaults.PageSize)
}

// Load reads configuration from defaults, an optional YAML file and PIVOT_
// environment variables, in increasing priority. A .env file in the working
// directory is loaded first when present. With an empty path, pivot.yaml is
// looked up in the working directory and ./config.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("pivot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return errors.NewValidationError(fe.Namespace(), fmt.Sprintf("value %v failed %q check", fe.Value(), fe.Tag()))
		}
		return errors.NewValidationError("config", err.Error())
	}
	return nil
}

// ResolverOptions returns the resolver options described by the config.
func (c *Config) ResolverOptions() []resolver.Option {
	opts := []resolver.Option{
		resolver.WithCutoff(c.Resolver.Cutoff),
		resolver.WithMaxSuggestions(c.Resolver.MaxSuggestions),
	}
	if m, ok := resolver.MetricByName(c.Resolver.Metric); ok {
		opts = append(opts, resolver.WithMetric(m))
	}
	return opts
}

// Enabled reports whether an observation table is configured.
func (d DynamoDBConfig) Enabled() bool {
	return d.Table != ""
}

// ClientConfig returns the DynamoDB client settings.
func (d DynamoDBConfig) ClientConfig() ddb.ClientConfig {
	return ddb.ClientConfig{
		Region:          d.Region,
		AccessKeyID:     d.AccessKeyID,
		SecretAccessKey: d.SecretAccessKey,
		Endpoint:        d.Endpoint,
	}
}

// QueryOptions returns the store query options.
func (d DynamoDBConfig) QueryOptions() []storagemodels.QueryOption {
	return []storagemodels.QueryOption{
		storagemodels.WithPageSize(d.PageSize),
		storagemodels.WithMaxRetries(d.MaxRetries),
	}
}
