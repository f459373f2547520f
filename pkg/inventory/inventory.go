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

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/collector"
	"github.com/Neve/ohai/pkg/collector/openstack"
	"github.com/Neve/ohai/pkg/header"
	"github.com/Neve/ohai/pkg/serializer"
)

// Metadata keys added to the document header.
const (
	MetadataState    = "state"
	MetadataProvider = "provider"
	MetadataDegraded = "degraded"
	MetadataDetected = "detected"
)

// Inventory is the document written by a collection run.
type Inventory struct {
	header.Header `json:",inline" yaml:",inline"`

	// OpenStack holds the collected attributes; absent on other clouds.
	OpenStack *attribute.Map `json:"openstack,omitempty" yaml:"openstack,omitempty"`
}

// New builds an Inventory from a collection result.
func New(res *openstack.Result, version string) *Inventory {
	inv := &Inventory{}
	inv.Init(header.KindOpenStackInventory, version)
	if res == nil {
		return inv
	}

	inv.Set(MetadataState, res.State.String())
	if !res.Applicable() {
		return inv
	}

	inv.Set(MetadataProvider, res.Provider.String())
	if len(res.Degraded) > 0 {
		stages := make([]string, len(res.Degraded))
		for i, s := range res.Degraded {
			stages[i] = string(s)
		}
		inv.Set(MetadataDegraded, strings.Join(stages, ","))
	}
	inv.OpenStack = res.Attributes
	return inv
}

// Inventorier runs a collector and serializes the resulting document.
type Inventorier struct {
	// Version is the tool version recorded in the header.
	Version string

	// Factory creates the collectors. If nil, the default factory is used.
	Factory collector.Factory

	// Serializer writes the document. If nil, JSON is written to stdout.
	Serializer serializer.Serializer
}

// Collect runs a full collection and writes an Inventory.
func (n *Inventorier) Collect(ctx context.Context) (*Inventory, error) {
	n.init()

	res, err := n.Factory.CreateOpenStackCollector().Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to collect openstack attributes: %w", err)
	}

	inv := New(res, n.Version)
	slog.Debug("inventory collected",
		slog.String("state", res.State.String()),
		slog.Int("attributes", res.Attributes.Len()))

	if err := n.Serializer.Serialize(ctx, inv); err != nil {
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}
	return inv, nil
}

// Detect runs detection only and writes a header-only document.
func (n *Inventorier) Detect(ctx context.Context) (*header.Header, error) {
	n.init()

	provider, ok, err := n.Factory.CreateDetector().Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to detect openstack: %w", err)
	}

	h := &header.Header{}
	h.Init(header.KindOpenStackDetection, n.Version)
	h.Set(MetadataDetected, fmt.Sprintf("%t", ok))
	if ok {
		h.Set(MetadataProvider, provider.String())
	}

	if err := n.Serializer.Serialize(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}
	return h, nil
}

func (n *Inventorier) init() {
	if n.Factory == nil {
		n.Factory = collector.NewDefaultFactory()
	}
	if n.Serializer == nil {
		n.Serializer = serializer.NewStdoutWriter(serializer.FormatJSON)
	}
}
