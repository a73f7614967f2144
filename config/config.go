/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

// Package config loads the settings of the webgraphql server from flags, environment variables and
// an optional configuration file.
package config

import (
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// HealthPath is the path that serves health checks.
const HealthPath = "/health"

// EnvPrefix is the prefix of environment variables read by Load (e.g., WEBGRAPHQL_ADDRESS).
const EnvPrefix = "WEBGRAPHQL"

// Keys of the settings
const (
	KeyConfigFile              = "config"
	KeyAddress                 = "address"
	KeyPath                    = "path"
	KeyMetricsPath             = "metrics-path"
	KeyMaxBodySize             = "max-body-size"
	KeyLogLevel                = "log-level"
	KeyDevelopment             = "development"
	KeyPersistedQueryCacheSize = "persisted-query-cache-size"
	KeyRequestIDHeader         = "request-id-header"
	KeyShutdownTimeout         = "shutdown-timeout"
)

// Config contains settings of the webgraphql server.
type Config struct {
	// Address to listen on
	Address string `mapstructure:"address"`

	// Path that serves GraphQL queries
	Path string `mapstructure:"path"`

	// Path that serves Prometheus metrics; Empty disables the endpoint.
	MetricsPath string `mapstructure:"metrics-path"`

	// Maximum number of bytes read from a request body
	MaxBodySize uint `mapstructure:"max-body-size"`

	// Minimum enabled logging level (debug, info, warn, error)
	LogLevel string `mapstructure:"log-level"`

	// Development enables human-friendly logging.
	Development bool `mapstructure:"development"`

	// Number of queries kept for automatic persisted queries; 0 disables the feature.
	PersistedQueryCacheSize int `mapstructure:"persisted-query-cache-size"`

	// Header that carries request ids
	RequestIDHeader string `mapstructure:"request-id-header"`

	// Time allowed for in-flight requests to finish on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// Default returns the default settings.
func Default() Config {
	return Config{
		Address:                 ":8080",
		Path:                    "/graphql",
		MetricsPath:             "/metrics",
		MaxBodySize:             10 << 20, // 10MB
		LogLevel:                "info",
		PersistedQueryCacheSize: 1000,
		RequestIDHeader:         "X-Request-Id",
		ShutdownTimeout:         10 * time.Second,
	}
}

// SetDefaults registers default values of all settings to v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyAddress, d.Address)
	v.SetDefault(KeyPath, d.Path)
	v.SetDefault(KeyMetricsPath, d.MetricsPath)
	v.SetDefault(KeyMaxBodySize, d.MaxBodySize)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDevelopment, d.Development)
	v.SetDefault(KeyPersistedQueryCacheSize, d.PersistedQueryCacheSize)
	v.SetDefault(KeyRequestIDHeader, d.RequestIDHeader)
	v.SetDefault(KeyShutdownTimeout, d.ShutdownTimeout)
}

// BindFlags defines a flag for every setting in flags and binds them to v.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	d := Default()
	flags.String(KeyConfigFile, "", "path to a configuration file (YAML, JSON or TOML)")
	flags.String(KeyAddress, d.Address, "address to listen on")
	flags.String(KeyPath, d.Path, "path that serves GraphQL queries")
	flags.String(KeyMetricsPath, d.MetricsPath, "path that serves Prometheus metrics (empty to disable)")
	flags.Uint(KeyMaxBodySize, d.MaxBodySize, "maximum number of bytes read from a request body")
	flags.String(KeyLogLevel, d.LogLevel, "minimum enabled logging level (debug, info, warn, error)")
	flags.Bool(KeyDevelopment, d.Development, "enable human-friendly logging")
	flags.Int(KeyPersistedQueryCacheSize, d.PersistedQueryCacheSize,
		"number of queries kept for automatic persisted queries (0 to disable)")
	flags.String(KeyRequestIDHeader, d.RequestIDHeader, "header that carries request ids")
	flags.Duration(KeyShutdownTimeout, d.ShutdownTimeout, "time allowed for in-flight requests on shutdown")

	return v.BindPFlags(flags)
}

// Load reads settings into a Config. Values are taken from (in order of precedence) flags bound
// with BindFlags, environment variables prefixed with EnvPrefix, the configuration file named by
// the "config" setting and the defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile := v.GetString(KeyConfigFile); len(configFile) > 0 {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "config: cannot read %s", configFile)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "config: cannot decode settings")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate verifies config values.
func (config *Config) Validate() error {
	if len(config.Address) == 0 {
		return errors.New("config: address must not be empty")
	}

	if !strings.HasPrefix(config.Path, "/") {
		return errors.Errorf("config: path %q must start with '/'", config.Path)
	}

	if len(config.MetricsPath) > 0 {
		if !strings.HasPrefix(config.MetricsPath, "/") {
			return errors.Errorf("config: metrics path %q must start with '/'", config.MetricsPath)
		}
		if config.MetricsPath == config.Path {
			return errors.Errorf("config: metrics path and GraphQL path are both %q", config.Path)
		}
	}

	if err := checkRoutes(config.Path, config.MetricsPath); err != nil {
		return err
	}

	if config.MaxBodySize == 0 {
		return errors.New("config: max body size must be greater than 0")
	}

	if config.PersistedQueryCacheSize < 0 {
		return errors.Errorf("config: persisted query cache size (%d) must not be negative",
			config.PersistedQueryCacheSize)
	}

	if config.ShutdownTimeout < 0 {
		return errors.Errorf("config: shutdown timeout (%s) must not be negative", config.ShutdownTimeout)
	}

	return nil
}

// checkRoutes verifies that the server can mount its routes: GraphQL on POST path, metrics on GET
// metricsPath (unless empty) and health checks on GET HealthPath. http.ServeMux panics on invalid
// or conflicting patterns so the routes are tried on a scratch mux.
func checkRoutes(path string, metricsPath string) (err error) {
	for _, p := range []string{path, metricsPath} {
		if strings.ContainsAny(p, " \t\r\n") {
			return errors.Errorf("config: path %q must not contain whitespace", p)
		}
	}

	patterns := []string{http.MethodPost + " " + path, http.MethodGet + " " + HealthPath}
	if len(metricsPath) > 0 {
		patterns = append(patterns, http.MethodGet+" "+metricsPath)
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("config: cannot route paths: %v", r)
		}
	}()

	mux := http.NewServeMux()
	for _, pattern := range patterns {
		mux.Handle(pattern, http.NotFoundHandler())
	}
	return nil
}
