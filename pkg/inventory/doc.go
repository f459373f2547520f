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

// Package inventory turns collection results into versioned documents.
//
// An Inventory carries the common header and the collected attributes under
// the openstack key:
//
//	kind: OpenStackInventory
//	apiVersion: ohai.neve.dev/v1alpha1
//	metadata:
//	  provider: openstack
//	  state: done
//	  timestamp: "2026-10-19T08:30:00Z"
//	  version: v0.3.0
//	openstack:
//	  provider: openstack
//	  ami_id: ami-00000001
//	  hostname: web-1
//	  ...
//
// Hosts that are not OpenStack produce the header only, with state
// not-applicable. Degraded runs list the skipped stages in the degraded
// metadata key.
package inventory
