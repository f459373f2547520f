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

// Package attribute provides the ordered attribute map threaded through a
// collection run.
//
// A Map behaves like map[string]any but remembers insertion order. The order
// is what "first matching key" means for the deduplication pass, and it is
// preserved in JSON and YAML output so that results read the way the metadata
// services returned them.
//
// Values mirror arbitrary JSON: string, float64, bool, nil, []any, or a nested
// *Map. A Map is owned by a single run and is not safe for concurrent use.
package attribute
