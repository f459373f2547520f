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
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/Neve/ohai/pkg/defaults"
)

// BaselinePath is the fixed list of directories searched before any extra path.
var BaselinePath = []string{
	"/usr/local/bin",
	"/bin",
	"/usr/bin",
	"/usr/local/sbin",
	"/usr/sbin",
	"/sbin",
}

// Result is the outcome of a probe: trimmed stdout, or Failure.
type Result struct {
	output string
	ok     bool
}

// Failure is the sentinel for a missing command or a non-zero exit.
var Failure = Result{}

// Output returns a successful Result carrying out.
func Output(out string) Result {
	return Result{output: out, ok: true}
}

// OK reports whether the command ran and exited 0.
func (r Result) OK() bool {
	return r.ok
}

// Value returns the trimmed output; empty for Failure.
func (r Result) Value() string {
	return r.output
}

// String returns the output, or "fail" for Failure.
func (r Result) String() string {
	if !r.ok {
		return "fail"
	}
	return r.output
}

// Runner executes diagnostic commands.
type Runner interface {
	Run(ctx context.Context, command string, args ...string) (Result, error)
}

// SafeRunner resolves commands against BaselinePath plus ExtraPaths and runs
// them with that path as PATH.
type SafeRunner struct {
	// ExtraPaths are appended to BaselinePath. Relative entries are ignored.
	ExtraPaths []string

	// Timeout bounds each execution. Zero means defaults.ProbeTimeout.
	Timeout time.Duration
}

// NewSafeRunner returns a SafeRunner searching extraPaths after the baseline.
func NewSafeRunner(extraPaths ...string) *SafeRunner {
	return &SafeRunner{
		ExtraPaths: extraPaths,
		Timeout:    defaults.ProbeTimeout,
	}
}

// SearchPath returns the directories searched, in order.
func (r *SafeRunner) SearchPath() []string {
	dirs := make([]string, 0, len(BaselinePath)+len(r.ExtraPaths))
	dirs = append(dirs, BaselinePath...)
	for _, d := range r.ExtraPaths {
		d = strings.TrimSpace(d)
		if d == "" || !filepath.IsAbs(d) {
			continue
		}
		dirs = append(dirs, filepath.Clean(d))
	}
	return dirs
}

// Lookup resolves command on the search path without running it.
// Commands containing a slash are checked as given.
func (r *SafeRunner) Lookup(command string) (string, bool) {
	if command == "" {
		return "", false
	}
	if strings.Contains(command, "/") {
		return command, isExecutable(command)
	}
	for _, dir := range r.SearchPath() {
		candidate := filepath.Join(dir, command)
		if isExecutable(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// Run executes command once. Missing commands, non-zero exits and timeouts
// return Failure with a nil error.
func (r *SafeRunner) Run(ctx context.Context, command string, args ...string) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Failure, err
	}

	searchPath := strings.Join(r.SearchPath(), string(os.PathListSeparator))
	resolved, ok := r.Lookup(command)
	if !ok {
		slog.Warn("probe command not found",
			slog.String("command", command),
			slog.String("path", searchPath))
		return Failure, nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaults.ProbeTimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, resolved, args...)
	// lscpu and friends localize their labels
	cmd.Env = []string{"PATH=" + searchPath, "LC_ALL=C"}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		out := strings.TrimSpace(stdout.String())
		slog.Debug("probe succeeded", slog.String("command", command), slog.String("output", out))
		return Output(out), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return Failure, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		slog.Warn("probe command timed out",
			slog.String("command", command),
			slog.Duration("timeout", timeout))
		return Failure, nil
	case errors.As(err, &exitErr):
		slog.Warn("probe command returned non-zero status",
			slog.String("command", command),
			slog.Int("status", exitErr.ExitCode()),
			slog.String("stderr", strings.TrimSpace(stderr.String())))
		return Failure, nil
	default:
		return Failure, fmt.Errorf("failed to execute %s: %w", resolved, err)
	}
}
