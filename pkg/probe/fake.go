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

package probe

import (
	"context"
	"strings"
)

// FakeRunner is a Runner returning canned results, for tests.
// Results is keyed by the command line: command and args joined by spaces.
// Unknown command lines return Failure.
type FakeRunner struct {
	Results map[string]Result
	Err     error
	Calls   []string
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, command string, args ...string) (Result, error) {
	line := strings.Join(append([]string{command}, args...), " ")
	f.Calls = append(f.Calls, line)
	if f.Err != nil {
		return Failure, f.Err
	}
	if res, ok := f.Results[line]; ok {
		return res, nil
	}
	return Failure, nil
}
