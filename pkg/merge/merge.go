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

// Package merge fuses the OpenStack-native metadata document into the
// attribute map built from the EC2-compatible tree.
package merge

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Neve/ohai/pkg/attribute"
)

// Mode selects which incoming keys Merge copies.
type Mode int

const (
	// Full copies every incoming key, overwriting existing values.
	Full Mode = iota
	// Selective copies only the keys listed in SelectiveKeys.
	Selective
)

// SelectiveKeys are the native keys copied in Selective mode.
var SelectiveKeys = []string{"meta", "uuid", "public_keys", "name"}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case Full:
		return "full"
	case Selective:
		return "selective"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "full", "":
		return Full, nil
	case "selective":
		return Selective, nil
	default:
		return Full, fmt.Errorf("unsupported merge mode %q, expected full or selective", s)
	}
}

// Merge copies incoming into base according to mode and returns base.
// A nil base is replaced by a new map. Nil or empty incoming is a no-op.
// Keys are copied in incoming's order. Values taken from incoming are deep
// copies, so later changes to either map do not leak into the other.
func Merge(base, incoming *attribute.Map, mode Mode) *attribute.Map {
	if base == nil {
		base = attribute.New()
	}
	if incoming.Len() == 0 {
		return base
	}

	switch mode {
	case Selective:
		incoming.Range(func(key string, v any) bool {
			if slices.Contains(SelectiveKeys, key) {
				base.Set(key, attribute.CloneValue(v))
			}
			return true
		})
	default:
		incoming.Range(func(key string, v any) bool {
			base.Set(key, attribute.CloneValue(v))
			return true
		})
	}
	return base
}
