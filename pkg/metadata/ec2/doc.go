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

// Package ec2 reads the EC2-compatible metadata tree that OpenStack exposes
// at http://169.254.169.254/.
//
// The tree is flattened the way Ohai does it: the path of every leaf below
// /<version>/meta-data/ becomes one key with '-' and '/' replaced by '_', so
// public-keys/0/openssh-key is stored as public_keys_0_openssh_key.
// Listing entries of the form "0=name" are treated as directories and the
// security-groups value is split into a list.
//
// Leaves of one directory are fetched concurrently, bounded by
// WithConcurrency, and inserted in listing order.
package ec2
