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

package defaults

import "time"

// Collector timeouts for data collection operations.
const (
	// CollectTimeout bounds a complete OpenStack collection run.
	// Collectors should respect parent context deadlines when shorter.
	CollectTimeout = 2 * time.Minute

	// ProbeTimeout bounds a single diagnostic command (cat, lscpu).
	ProbeTimeout = 10 * time.Second
)

// Metadata service timeouts and limits.
const (
	// MetadataConnectTimeout bounds the TCP reachability check against the
	// EC2-compatible metadata address.
	MetadataConnectTimeout = 2 * time.Second

	// MetadataRequestTimeout is the total timeout for one metadata HTTP request.
	MetadataRequestTimeout = 10 * time.Second

	// MetadataRateLimit is the steady request rate (per second) sent to the
	// metadata service while walking the EC2 tree.
	MetadataRateLimit = 20

	// MetadataRateBurst is the burst size paired with MetadataRateLimit.
	MetadataRateBurst = 5

	// MetadataFetchConcurrency caps in-flight leaf requests per directory listing.
	MetadataFetchConcurrency = 4

	// MetadataMaxResponseSize caps a single metadata response body.
	MetadataMaxResponseSize = 1 << 20
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 2 * time.Second

	// HTTPResponseHeaderTimeout is the timeout for reading response headers.
	HTTPResponseHeaderTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 30 * time.Second
)
