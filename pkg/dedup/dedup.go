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

// Package dedup removes attributes that appear twice after the EC2 and native
// metadata trees are merged.
//
// Rules are evaluated in order. Each rule looks up the first key, in map
// insertion order, that matches its pattern and acts on that key only.
package dedup

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/Neve/ohai/pkg/attribute"
)

// Action is the operation a Rule applies to its matched key.
type Action int

const (
	// NoOp matches but leaves the map untouched.
	NoOp Action = iota
	// Delete removes the matched key.
	Delete
	// RenameAndMerge moves the current hostname to full_hostname and
	// replaces it with the matched key's value. It only fires when the map
	// already holds a hostname.
	RenameAndMerge
)

// String returns the string representation of the Action.
func (a Action) String() string {
	switch a {
	case NoOp:
		return "noop"
	case Delete:
		return "delete"
	case RenameAndMerge:
		return "rename-and-merge"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

const (
	hostnameKey     = "hostname"
	fullHostnameKey = "full_hostname"
)

// Rule pairs a key pattern with the action applied to its first match.
type Rule struct {
	Pattern *regexp.Regexp
	Action  Action
}

// Change records one action taken by Apply.
type Change struct {
	Key    string
	Action Action
}

// DefaultRules returns the redundancy rules for merged OpenStack metadata:
// the EC2 copy of the first SSH key is dropped, and the native instance name
// takes over hostname.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`^public_keys_\d_openssh_key$`), Action: Delete},
		{Pattern: regexp.MustCompile(`^name$`), Action: RenameAndMerge},
	}
}

// Deduplicate applies DefaultRules to m and returns it.
func Deduplicate(m *attribute.Map) *attribute.Map {
	Apply(m, DefaultRules())
	return m
}

// Apply evaluates rules against m in order and returns the changes made.
func Apply(m *attribute.Map, rules []Rule) []Change {
	var changes []Change
	for _, rule := range rules {
		key, ok := firstMatch(m, rule.Pattern)
		if !ok {
			slog.Debug("no redundant entries in metadata", "pattern", rule.Pattern.String())
			continue
		}
		if applyRule(m, key, rule.Action) {
			changes = append(changes, Change{Key: key, Action: rule.Action})
		}
	}
	return changes
}

func firstMatch(m *attribute.Map, re *regexp.Regexp) (string, bool) {
	var found string
	m.Range(func(key string, _ any) bool {
		if re.MatchString(key) {
			found = key
			return false
		}
		return true
	})
	return found, found != ""
}

func applyRule(m *attribute.Map, key string, action Action) bool {
	switch action {
	case Delete:
		slog.Debug("deleting redundant attribute", "key", key)
		m.Delete(key)
		return true
	case RenameAndMerge:
		hostname, ok := m.Get(hostnameKey)
		if !ok {
			return false
		}
		value, _ := m.Get(key)
		slog.Debug("renaming attribute to hostname", "key", key)
		m.Set(fullHostnameKey, hostname)
		m.Set(hostnameKey, value)
		if key != hostnameKey {
			m.Delete(key)
		}
		return true
	default:
		slog.Debug("no action for matched attribute", "key", key, "action", action.String())
		return false
	}
}
