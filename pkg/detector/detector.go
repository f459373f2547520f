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

// Package detector decides whether the host runs on OpenStack and which
// provider flavour it is.
package detector

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Neve/ohai/pkg/hints"
	"github.com/Neve/ohai/pkg/probe"
)

// Provider identifies the OpenStack flavour reported in the output.
type Provider string

const (
	ProviderOpenStack Provider = "openstack"
	ProviderHP        Provider = "hp"
)

// String returns the string representation of the Provider.
func (p Provider) String() string {
	return string(p)
}

const (
	// ProductNamePath is the DMI field whose content identifies OpenStack guests.
	ProductNamePath = "/sys/devices/virtual/dmi/id/product_name"
	// ProductVersionPath holds the cloud release reported as cloud_version.
	ProductVersionPath = "/sys/devices/virtual/dmi/id/product_version"

	productMarker        = "OpenStack"
	hypervisorVendorLine = "Hypervisor vendor"
)

// IsOpenStack reports whether the openstack or hp hint is present, or the
// product name probe mentions OpenStack.
func IsOpenStack(h hints.Source, productName probe.Result) bool {
	if h != nil && (h.Hint(hints.OpenStack) || h.Hint(hints.HP)) {
		return true
	}
	return productName.OK() && strings.Contains(productName.Value(), productMarker)
}

// ClassifyProvider returns ProviderHP when the hp hint is present and
// ProviderOpenStack otherwise.
func ClassifyProvider(h hints.Source) Provider {
	if h != nil && h.Hint(hints.HP) {
		return ProviderHP
	}
	return ProviderOpenStack
}

// ProductName probes the DMI product name.
func ProductName(ctx context.Context, r probe.Runner) (probe.Result, error) {
	return r.Run(ctx, "cat", ProductNamePath)
}

// ProductVersion probes the DMI product version.
func ProductVersion(ctx context.Context, r probe.Runner) (probe.Result, error) {
	return r.Run(ctx, "cat", ProductVersionPath)
}

// HypervisorVendor runs lscpu and returns the value of its
// "Hypervisor vendor:" line. A missing line is a Failure.
func HypervisorVendor(ctx context.Context, r probe.Runner) (probe.Result, error) {
	res, err := r.Run(ctx, "lscpu")
	if err != nil || !res.OK() {
		return probe.Failure, err
	}
	if vendor, ok := parseHypervisorVendor(res.Value()); ok {
		return probe.Output(vendor), nil
	}
	slog.Debug("lscpu reported no hypervisor vendor")
	return probe.Failure, nil
}

func parseHypervisorVendor(lscpu string) (string, bool) {
	for _, line := range strings.Split(lscpu, "\n") {
		if !strings.Contains(line, hypervisorVendorLine) {
			continue
		}
		_, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		return strings.TrimSpace(value), true
	}
	return "", false
}
