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

package collector

import (
	"context"

	"github.com/Neve/ohai/pkg/collector/openstack"
	"github.com/Neve/ohai/pkg/config"
	"github.com/Neve/ohai/pkg/detector"
	"github.com/Neve/ohai/pkg/hints"
	"github.com/Neve/ohai/pkg/metadata"
	"github.com/Neve/ohai/pkg/metadata/ec2"
	"github.com/Neve/ohai/pkg/metadata/native"
	"github.com/Neve/ohai/pkg/probe"
)

// Collector gathers cloud instance attributes.
type Collector interface {
	Collect(ctx context.Context) (*openstack.Result, error)
}

// Detector runs only the detection step.
type Detector interface {
	Detect(ctx context.Context) (detector.Provider, bool, error)
}

// Factory creates collectors. It lets callers swap in test doubles.
type Factory interface {
	CreateOpenStackCollector() Collector
	CreateDetector() Detector
}

// DefaultFactory creates collectors with production dependencies.
type DefaultFactory struct {
	Config *config.Config
	// Runner overrides the command runner built from Config.
	Runner probe.Runner
}

// Option configures a DefaultFactory.
type Option func(*DefaultFactory)

// WithConfig sets the configuration collectors are built from.
func WithConfig(cfg *config.Config) Option {
	return func(f *DefaultFactory) {
		if cfg != nil {
			f.Config = cfg
		}
	}
}

// WithRunner sets the command runner used for probes.
func WithRunner(r probe.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// NewDefaultFactory creates a factory with the default configuration.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{Config: config.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateOpenStackCollector creates an OpenStack collector.
func (f *DefaultFactory) CreateOpenStackCollector() Collector {
	return f.newOpenStackCollector()
}

// CreateDetector creates a detector sharing the collector's probes and hints.
func (f *DefaultFactory) CreateDetector() Detector {
	return f.newOpenStackCollector()
}

func (f *DefaultFactory) newOpenStackCollector() *openstack.Collector {
	cfg := f.Config
	md := cfg.Metadata

	httpClient := metadata.NewClient(
		metadata.BaseURL(md.Address, md.Port),
		metadata.WithRequestTimeout(md.RequestTimeout),
		metadata.WithRateLimit(md.RequestsPerSecond, md.Burst),
	)

	return &openstack.Collector{
		Runner: f.runner(),
		Hints:  f.hints(),
		EC2: ec2.NewClient(md.Address, md.Port,
			ec2.WithConnectTimeout(md.ConnectTimeout),
			ec2.WithConcurrency(md.Concurrency),
			ec2.WithHTTPClient(httpClient),
		),
		Native:    native.NewFetcher(httpClient),
		MergeMode: cfg.Mode(),
	}
}

func (f *DefaultFactory) runner() probe.Runner {
	if f.Runner != nil {
		return f.Runner
	}
	r := probe.NewSafeRunner(f.Config.ExtraPaths...)
	if f.Config.ProbeTimeout > 0 {
		r.Timeout = f.Config.ProbeTimeout
	}
	return r
}

func (f *DefaultFactory) hints() hints.Source {
	return hints.Any{
		hints.NewSet(f.Config.Hints...),
		hints.Dir(f.Config.HintPaths),
	}
}
