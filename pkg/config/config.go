// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the collector configuration file.
//
// The file is YAML; every field is optional and falls back to Default:
//
//	hints: [openstack]
//	hintPaths: [/etc/chef/ohai/hints]
//	extraPaths: [/opt/bin]
//	mergeMode: full
//	probeTimeout: 10s
//	metadata:
//	  address: 169.254.169.254
//	  port: 80
//	  connectTimeout: 2s
//	  requestTimeout: 10s
//	  requestsPerSecond: 20
//	  burst: 5
//	  concurrency: 4
//
// Command line flags are applied on top of the file with Options.
package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Neve/ohai/pkg/defaults"
	"github.com/Neve/ohai/pkg/errors"
	"github.com/Neve/ohai/pkg/hints"
	"github.com/Neve/ohai/pkg/merge"
	"github.com/Neve/ohai/pkg/metadata"
)

// Metadata configures access to the metadata service.
type Metadata struct {
	Address           string        `yaml:"address"`
	Port              int           `yaml:"port"`
	ConnectTimeout    time.Duration `yaml:"connectTimeout"`
	RequestTimeout    time.Duration `yaml:"requestTimeout"`
	RequestsPerSecond float64       `yaml:"requestsPerSecond"`
	Burst             int           `yaml:"burst"`
	Concurrency       int           `yaml:"concurrency"`
}

// Config is the collector configuration.
type Config struct {
	Hints        []string      `yaml:"hints"`
	HintPaths    []string      `yaml:"hintPaths"`
	ExtraPaths   []string      `yaml:"extraPaths"`
	MergeMode    string        `yaml:"mergeMode"`
	ProbeTimeout time.Duration `yaml:"probeTimeout"`
	Metadata     Metadata      `yaml:"metadata"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		HintPaths:    []string{hints.DefaultDir},
		MergeMode:    merge.Full.String(),
		ProbeTimeout: defaults.ProbeTimeout,
		Metadata: Metadata{
			Address:           metadata.DefaultAddress,
			Port:              metadata.DefaultPort,
			ConnectTimeout:    defaults.MetadataConnectTimeout,
			RequestTimeout:    defaults.MetadataRequestTimeout,
			RequestsPerSecond: defaults.MetadataRateLimit,
			Burst:             defaults.MetadataRateBurst,
			Concurrency:       defaults.MetadataFetchConcurrency,
		},
	}
}

// Load reads the YAML file at path over Default and validates the result.
// Unknown fields are rejected.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "config file not found", err,
				map[string]any{"path": path})
		}
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !stderrors.Is(err, io.EOF) {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse config", err,
			map[string]any{"path": path})
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if _, err := merge.ParseMode(c.MergeMode); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidRequest, "invalid mergeMode", err)
	}
	if c.Metadata.Address == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "metadata.address cannot be empty")
	}
	if c.Metadata.Port < 1 || c.Metadata.Port > 65535 {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "metadata.port out of range",
			map[string]any{"port": c.Metadata.Port})
	}
	if c.ProbeTimeout < 0 || c.Metadata.ConnectTimeout < 0 || c.Metadata.RequestTimeout < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "timeouts cannot be negative")
	}
	if c.Metadata.RequestsPerSecond < 0 || c.Metadata.Burst < 0 || c.Metadata.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidRequest, "metadata limits cannot be negative")
	}
	return nil
}

// Mode returns the parsed merge mode.
func (c *Config) Mode() merge.Mode {
	m, err := merge.ParseMode(c.MergeMode)
	if err != nil {
		return merge.Full
	}
	return m
}

// Option overrides a configuration value.
type Option func(*Config)

// WithHints adds static hints.
func WithHints(names ...string) Option {
	return func(c *Config) {
		c.Hints = append(c.Hints, names...)
	}
}

// WithHintPaths replaces the hint directories when dirs is not empty.
func WithHintPaths(dirs ...string) Option {
	return func(c *Config) {
		if len(dirs) > 0 {
			c.HintPaths = dirs
		}
	}
}

// WithExtraPaths appends directories to the probe search path.
func WithExtraPaths(dirs ...string) Option {
	return func(c *Config) {
		c.ExtraPaths = append(c.ExtraPaths, dirs...)
	}
}

// WithMergeMode sets the merge mode when mode is not empty.
func WithMergeMode(mode string) Option {
	return func(c *Config) {
		if mode != "" {
			c.MergeMode = mode
		}
	}
}

// WithMetadataAddress sets the metadata service address when not empty.
func WithMetadataAddress(address string) Option {
	return func(c *Config) {
		if address != "" {
			c.Metadata.Address = address
		}
	}
}

// WithMetadataPort sets the metadata service port when positive.
func WithMetadataPort(port int) Option {
	return func(c *Config) {
		if port > 0 {
			c.Metadata.Port = port
		}
	}
}

// WithProbeTimeout sets the probe timeout when positive.
func WithProbeTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ProbeTimeout = d
		}
	}
}

// Apply applies opts to c and validates the result.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		opt(c)
	}
	return c.Validate()
}
