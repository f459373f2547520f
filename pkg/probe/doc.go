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

// Package probe runs local diagnostic commands under a restricted search path.
//
// A probe never fails loudly: a command that cannot be found, exits non-zero,
// or exceeds its timeout yields the Failure sentinel and a warning log. Only a
// spawn failure of a resolved binary, or a cancelled parent context, is
// returned as an error.
//
//	r := probe.NewSafeRunner("/opt/tools/bin")
//	res, err := r.Run(ctx, "cat", "/sys/devices/virtual/dmi/id/product_name")
//	if err != nil {
//	    return err
//	}
//	if res.OK() {
//	    fmt.Println(res.Value())
//	}
package probe
