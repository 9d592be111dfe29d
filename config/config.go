// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads restkit client settings from the environment,
// .env files and YAML files.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/gogama/restkit/logging"
	"github.com/gogama/restkit/request"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultPrefix is the environment variable prefix used by the
// restkit command.
const DefaultPrefix = "RESTKIT"

// Config holds the settings of one API client.
//
// Environment variable names are the prefix, an underscore and the
// envconfig tag, for example RESTKIT_TIMEOUT.
type Config struct {
	Endpoint string `envconfig:"ENDPOINT"`
	Name     string `envconfig:"NAME"`

	Timeout            time.Duration `envconfig:"TIMEOUT"`
	Proxy              string        `envconfig:"PROXY"`
	InsecureSkipVerify bool          `envconfig:"INSECURE_SKIP_VERIFY"`
	RetryMax           int           `envconfig:"RETRY_MAX"`
	RetryWaitMin       time.Duration `envconfig:"RETRY_WAIT_MIN"`
	RetryWaitMax       time.Duration `envconfig:"RETRY_WAIT_MAX"`
	RateLimit          float64       `envconfig:"RATE_LIMIT"`
	RateBurst          int           `envconfig:"RATE_BURST"`

	LogLevel       string `envconfig:"LOG_LEVEL"`
	LogDevelopment bool   `envconfig:"LOG_DEV"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Name:         "restkit",
		Timeout:      30 * time.Second,
		RetryWaitMin: time.Second,
		RetryWaitMax: 30 * time.Second,
		RateBurst:    1,
		LogLevel:     "info",
	}
}

// Load returns the default configuration overlaid with the environment
// variables which are set.
func Load(prefix string) (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyEnv(prefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays c with the environment variables which are set.
// Settings whose variable is unset keep their value.
func (c *Config) ApplyEnv(prefix string) error {
	if err := envconfig.Process(prefix, c); err != nil {
		return fmt.Errorf("config: failed to load environment: %w", err)
	}
	return nil
}

// fileConfig is the YAML form of Config. Absent keys leave the
// corresponding setting unchanged.
type fileConfig struct {
	Endpoint           *string  `yaml:"endpoint"`
	Name               *string  `yaml:"name"`
	Timeout            *string  `yaml:"timeout"`
	Proxy              *string  `yaml:"proxy"`
	InsecureSkipVerify *bool    `yaml:"insecure_skip_verify"`
	RetryMax           *int     `yaml:"retry_max"`
	RetryWaitMin       *string  `yaml:"retry_wait_min"`
	RetryWaitMax       *string  `yaml:"retry_wait_max"`
	RateLimit          *float64 `yaml:"rate_limit"`
	RateBurst          *int     `yaml:"rate_burst"`
	Log                *struct {
		Level       *string `yaml:"level"`
		Development *bool   `yaml:"development"`
	} `yaml:"log"`
}

// LoadFile returns the default configuration overlaid with the
// settings in the YAML file at path. Durations are written the way
// time.ParseDuration reads them:
//
//	endpoint: https://api.example.com
//	timeout: 10s
//	retry_max: 3
//	log:
//	  level: debug
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.ApplyFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyFile overlays c with the settings in the YAML file at path.
func (c *Config) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	var f fileConfig
	if err = yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	setString(&c.Endpoint, f.Endpoint)
	setString(&c.Name, f.Name)
	setString(&c.Proxy, f.Proxy)
	if f.InsecureSkipVerify != nil {
		c.InsecureSkipVerify = *f.InsecureSkipVerify
	}
	if f.RetryMax != nil {
		c.RetryMax = *f.RetryMax
	}
	if f.RateLimit != nil {
		c.RateLimit = *f.RateLimit
	}
	if f.RateBurst != nil {
		c.RateBurst = *f.RateBurst
	}
	for _, d := range []struct {
		key string
		dst *time.Duration
		src *string
	}{
		{"timeout", &c.Timeout, f.Timeout},
		{"retry_wait_min", &c.RetryWaitMin, f.RetryWaitMin},
		{"retry_wait_max", &c.RetryWaitMax, f.RetryWaitMax},
	} {
		if d.src == nil {
			continue
		}
		if *d.dst, err = time.ParseDuration(*d.src); err != nil {
			return fmt.Errorf("config: invalid %s in %s: %w", d.key, path, err)
		}
	}
	if f.Log != nil {
		setString(&c.LogLevel, f.Log.Level)
		if f.Log.Development != nil {
			c.LogDevelopment = *f.Log.Development
		}
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

// LoadDotEnv loads variables from a .env file if present. Variables
// already set in the environment are not overridden.
//
// If paths are given, exactly those files are loaded. Otherwise the
// current directory and up to six of its parents are searched and the
// first .env file found is loaded. If none is found, the returned
// error satisfies errors.Is(err, os.ErrNotExist).
func LoadDotEnv(paths ...string) error {
	if len(paths) > 0 {
		return godotenv.Load(paths...)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	dir := wd
	for range make([]struct{}, 7) {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return os.ErrNotExist
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return errors.New("config: endpoint is required")
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("config: invalid endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: endpoint scheme must be http or https, not %q", u.Scheme)
	}
	if c.Name == "" {
		return errors.New("config: name is required")
	}
	if _, err = logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid log level: %w", err)
	}
	if err = c.RequestOptions().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RequestOptions returns the transport settings as request options.
func (c *Config) RequestOptions() request.Options {
	return request.Options{
		Timeout:            c.Timeout,
		Proxy:              c.Proxy,
		InsecureSkipVerify: c.InsecureSkipVerify,
		RetryMax:           c.RetryMax,
		RetryWaitMin:       c.RetryWaitMin,
		RetryWaitMax:       c.RetryWaitMax,
		RateLimit:          c.RateLimit,
		RateBurst:          c.RateBurst,
	}
}

// Logging returns the logger configuration.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	if c.LogDevelopment {
		cfg = logging.DevelopmentConfig()
	}
	if c.LogLevel != "" {
		cfg.Level = c.LogLevel
	}
	return cfg
}
