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

// Package defaults provides centralized configuration constants for the ohai
// OpenStack collector.
//
// This package defines timeout values and request limits used across the
// codebase. Centralizing these values ensures consistency and makes tuning
// easier.
//
// # Timeout Categories
//
//   - Collector timeouts: for a whole collection run and single probes
//   - Metadata timeouts: for the EC2-compatible and native metadata services
//   - HTTP client timeouts: for the transport shared by metadata clients
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CollectTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// The metadata service is link-local, so connect timeouts are short: a host
// that cannot reach 169.254.169.254 within two seconds is treated as having no
// metadata service at all and the run degrades instead of hanging.
package defaults
