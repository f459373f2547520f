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

package attribute

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ErrNotObject is returned by ParseJSON when the document is valid JSON but
// its top-level value is not an object.
var ErrNotObject = errors.New("json document is not an object")

// ParseJSON parses a JSON object into a Map, keeping document key order.
// Numbers decode as float64 (integers beyond 2^53 as int64 or uint64),
// nested objects as *Map and arrays as []any.
func ParseJSON(data []byte) (*Map, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid json document")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: got %s", ErrNotObject, root.Type)
	}
	return fromObject(root), nil
}

func fromObject(obj gjson.Result) *Map {
	m := New()
	obj.ForEach(func(key, value gjson.Result) bool {
		m.Set(key.String(), fromResult(value))
		return true
	})
	return m
}

func fromResult(r gjson.Result) any {
	switch {
	case r.IsObject():
		return fromObject(r)
	case r.IsArray():
		items := r.Array()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, fromResult(item))
		}
		return out
	}

	switch r.Type {
	case gjson.String:
		return r.String()
	case gjson.Number:
		return number(r)
	case gjson.True:
		return true
	case gjson.False:
		return false
	default:
		return nil
	}
}

// maxExactFloat is the largest integer magnitude float64 holds exactly.
const maxExactFloat = 1 << 53

// number decodes a JSON number as float64, or as int64/uint64 when it is an
// integer too large for float64 to hold exactly.
func number(r gjson.Result) any {
	if !strings.ContainsAny(r.Raw, ".eE") {
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			if i > maxExactFloat || i < -maxExactFloat {
				return i
			}
			return float64(i)
		}
		if u, err := strconv.ParseUint(r.Raw, 10, 64); err == nil {
			return u
		}
	}
	return r.Float()
}

// MarshalYAML encodes the map as a YAML mapping in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if m == nil {
		return node, nil
	}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("failed to encode value of %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valueNode)
	}
	return node, nil
}
