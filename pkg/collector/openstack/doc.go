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

/*
Package openstack collects OpenStack instance attributes.

A run detects OpenStack from the openstack/hp hints or the DMI product name,
copies the EC2-compatible metadata tree, merges the native meta_data.json
document, removes entries the two trees duplicate and adds the hypervisor
vendor and cloud version probes:

	c := &openstack.Collector{
		Runner: probe.NewSafeRunner(),
		Hints:  hints.Dir{hints.DefaultDir},
		EC2:    ec2.NewClient(metadata.DefaultAddress, metadata.DefaultPort),
		Native: native.NewFetcher(metadata.NewClient(metadata.BaseURL(metadata.DefaultAddress, metadata.DefaultPort))),
	}
	res, err := c.Collect(ctx)

A host that is not OpenStack yields StateNotApplicable and an empty map.
Metadata failures are logged and listed in Result.Degraded:

  - ec2-connect: the metadata address is unreachable; only the provider and
    the probe attributes are returned.
  - ec2-fetch: the EC2 tree could not be read; the native document is still
    merged.
  - native-fetch: meta_data.json failed; the EC2 attributes are returned
    deduplicated.

Collection metrics are registered with the default Prometheus registry
under the ohai_openstack_ prefix.
*/
package openstack
