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

// Package hints answers "was this deployment context declared externally?".
//
// Hints bypass runtime autodetection. They come from Ohai-style hint files
// (a file named <hint>.json in a hints directory; only its presence matters)
// or from an explicit set passed on the command line or in the config file.
package hints

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Well-known hint names.
const (
	OpenStack = "openstack"
	HP        = "hp"
)

// DefaultDir is the conventional Ohai hints directory.
const DefaultDir = "/etc/chef/ohai/hints"

// Source reports whether a named hint is present.
type Source interface {
	Hint(name string) bool
}

// Set is a static set of hint names.
type Set map[string]struct{}

// NewSet returns a Set holding names. Blank names are ignored.
func NewSet(names ...string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		s[n] = struct{}{}
	}
	return s
}

// Hint implements Source.
func (s Set) Hint(name string) bool {
	_, ok := s[name]
	return ok
}

// Dir looks for <name>.json in each of its directories.
type Dir []string

// Hint implements Source.
func (d Dir) Hint(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	for _, dir := range d {
		path := filepath.Join(dir, name+".json")
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if info.Mode().IsRegular() {
			slog.Debug("hint file found", slog.String("hint", name), slog.String("path", path))
			return true
		}
	}
	return false
}

// Any combines sources; a hint is present when any source reports it.
type Any []Source

// Hint implements Source.
func (a Any) Hint(name string) bool {
	for _, s := range a {
		if s != nil && s.Hint(name) {
			return true
		}
	}
	return false
}
