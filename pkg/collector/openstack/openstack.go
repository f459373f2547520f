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

package openstack

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/dedup"
	"github.com/Neve/ohai/pkg/detector"
	"github.com/Neve/ohai/pkg/hints"
	"github.com/Neve/ohai/pkg/merge"
	"github.com/Neve/ohai/pkg/probe"
)

// Attribute keys set by the collector itself.
const (
	KeyProvider     = "provider"
	KeyHypervisor   = "hypervisor"
	KeyCloudVersion = "cloud_version"
)

// State is a step of a collection run.
type State int

const (
	StateStart State = iota
	StateDetecting
	StateNotApplicable
	StateDetected
	StateFetchingEC2
	StateFetchingNative
	StateMerging
	StateDeduplicating
	StateEnrichingExtras
	StateDone
)

var stateNames = map[State]string{
	StateStart:           "start",
	StateDetecting:       "detecting",
	StateNotApplicable:   "not-applicable",
	StateDetected:        "detected",
	StateFetchingEC2:     "fetching-ec2",
	StateFetchingNative:  "fetching-native",
	StateMerging:         "merging",
	StateDeduplicating:   "deduplicating",
	StateEnrichingExtras: "enriching-extras",
	StateDone:            "done",
}

// String returns the string representation of the State.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Stage names a step that degraded without failing the run.
type Stage string

const (
	StageEC2Connect  Stage = "ec2-connect"
	StageEC2Fetch    Stage = "ec2-fetch"
	StageNativeFetch Stage = "native-fetch"
)

// EC2Source is the EC2-compatible metadata service.
type EC2Source interface {
	CanConnect(ctx context.Context) bool
	FetchAll(ctx context.Context) (*attribute.Map, error)
}

// NativeSource is the OpenStack-native metadata document.
type NativeSource interface {
	Fetch(ctx context.Context) (*attribute.Map, error)
}

// Result is the outcome of one collection run.
type Result struct {
	// State is StateDone or StateNotApplicable.
	State State
	// Provider is empty when the host is not OpenStack.
	Provider detector.Provider
	// Attributes is empty when the host is not OpenStack.
	Attributes *attribute.Map
	// Degraded lists the stages that failed and were skipped.
	Degraded []Stage
}

// Applicable reports whether the host was detected as OpenStack.
func (r *Result) Applicable() bool {
	return r != nil && r.State != StateNotApplicable
}

// Collector gathers OpenStack instance attributes.
type Collector struct {
	Runner    probe.Runner
	Hints     hints.Source
	EC2       EC2Source
	Native    NativeSource
	MergeMode merge.Mode
}

// Detect runs only the detection step and returns the provider when the host
// is OpenStack.
func (c *Collector) Detect(ctx context.Context) (detector.Provider, bool, error) {
	name, err := detector.ProductName(ctx, c.Runner)
	if err != nil {
		return "", false, fmt.Errorf("failed to probe product name: %w", err)
	}
	slog.Debug("probed product name", "result", name.String())

	if !detector.IsOpenStack(c.Hints, name) {
		return "", false, nil
	}
	return detector.ClassifyProvider(c.Hints), true, nil
}

// Collect runs detection, metadata collection, merge, deduplication and
// enrichment. Metadata failures degrade the result; only a probe that cannot
// be started or a cancelled context returns an error.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	start := time.Now()
	res, err := c.collect(ctx)
	observe(res, err, time.Since(start))
	return res, err
}

func (c *Collector) collect(ctx context.Context) (*Result, error) {
	run := &run{}
	run.enter(StateDetecting)

	provider, ok, err := c.Detect(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		run.enter(StateNotApplicable)
		slog.Info("host is not running on openstack")
		return &Result{State: StateNotApplicable, Attributes: attribute.New()}, nil
	}

	run.enter(StateDetected)
	slog.Info("openstack detected", "provider", provider.String())
	attrs := attribute.New().Set(KeyProvider, provider.String())

	run.enter(StateFetchingEC2)
	if c.EC2 != nil && c.EC2.CanConnect(ctx) {
		if err := c.fetchMetadata(ctx, run, attrs); err != nil {
			return nil, err
		}
	} else {
		slog.Warn("unable to connect to the openstack metadata service")
		run.degrade(StageEC2Connect)
	}

	run.enter(StateEnrichingExtras)
	if err := c.enrich(ctx, attrs); err != nil {
		return nil, err
	}

	run.enter(StateDone)
	return &Result{
		State:      StateDone,
		Provider:   provider,
		Attributes: attrs,
		Degraded:   run.degraded,
	}, nil
}

// fetchMetadata copies the EC2 tree into attrs, merges the native document
// and removes redundant entries.
func (c *Collector) fetchMetadata(ctx context.Context, run *run, attrs *attribute.Map) error {
	ec2, err := c.EC2.FetchAll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("failed to fetch ec2 metadata", "error", err)
		run.degrade(StageEC2Fetch)
	}
	ec2.Range(func(k string, v any) bool {
		attrs.Set(k, v)
		return true
	})

	run.enter(StateFetchingNative)
	var doc *attribute.Map
	if c.Native != nil {
		doc, err = c.Native.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("openstack native metadata omitted", "error", err)
			run.degrade(StageNativeFetch)
		}
	}

	run.enter(StateMerging)
	merge.Merge(attrs, doc, c.MergeMode)

	run.enter(StateDeduplicating)
	dedup.Deduplicate(attrs)
	return nil
}

func (c *Collector) enrich(ctx context.Context, attrs *attribute.Map) error {
	vendor, err := detector.HypervisorVendor(ctx, c.Runner)
	if err != nil {
		return fmt.Errorf("failed to probe hypervisor vendor: %w", err)
	}
	if vendor.OK() {
		attrs.Set(KeyHypervisor, vendor.Value())
	}

	version, err := detector.ProductVersion(ctx, c.Runner)
	if err != nil {
		return fmt.Errorf("failed to probe product version: %w", err)
	}
	if version.OK() {
		attrs.Set(KeyCloudVersion, version.Value())
	}
	return nil
}

type run struct {
	state    State
	degraded []Stage
}

func (r *run) enter(s State) {
	slog.Debug("openstack collector state", "from", r.state.String(), "to", s.String())
	r.state = s
}

func (r *run) degrade(s Stage) {
	r.degraded = append(r.degraded, s)
	degradedTotal.WithLabelValues(string(s)).Inc()
}
