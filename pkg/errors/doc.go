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

// Package errors provides structured errors used across the collector.
//
// Metadata fetch failures carry the observed HTTP status in Context["status"]
// so callers can log it without parsing messages:
//
//	err := errors.WrapWithContext(errors.ErrCodeUnavailable, "metadata request failed", nil,
//	    map[string]any{"status": 404})
package errors
