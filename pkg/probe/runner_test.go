package probe

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func skipUnlessUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("probe tests need a POSIX userland")
	}
}

func writeScript(t *testing.T, dir, name, body string, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), mode))
	return path
}

func TestResult(t *testing.T) {
	assert.False(t, Failure.OK())
	assert.Equal(t, "", Failure.Value())
	assert.Equal(t, "fail", Failure.String())

	r := Output("OpenStack Nova")
	assert.True(t, r.OK())
	assert.Equal(t, "OpenStack Nova", r.Value())
	assert.Equal(t, "OpenStack Nova", r.String())
}

func TestSafeRunner_SearchPath(t *testing.T) {
	r := NewSafeRunner("/opt/tools/bin", "relative/bin", "", "/srv/bin/")

	got := r.SearchPath()
	want := append(append([]string{}, BaselinePath...), "/opt/tools/bin", "/srv/bin")
	assert.Equal(t, want, got)
}

func TestSafeRunner_Run_Success(t *testing.T) {
	skipUnlessUnix(t)
	r := NewSafeRunner()

	res, err := r.Run(context.Background(), "echo", "  OpenStack Compute  ")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "OpenStack Compute", res.Value())
}

func TestSafeRunner_Run_NonZeroExit(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	writeScript(t, dir, "ohai-exit-three", "echo partial; exit 3", 0o755)
	r := NewSafeRunner(dir)

	res, err := r.Run(context.Background(), "ohai-exit-three")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, Failure, res)
}

func TestSafeRunner_Run_MissingCommandNeverErrors(t *testing.T) {
	r := NewSafeRunner(t.TempDir())

	names := []string{
		"ohai-definitely-not-installed",
		"no such command",
		"../../etc/passwd-not-a-binary",
		"/nonexistent/bin/tool",
		"",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			res, err := r.Run(context.Background(), name, "--version")
			assert.NoError(t, err)
			assert.Equal(t, Failure, res)
		})
	}
}

func TestSafeRunner_Run_ExtraPath(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	writeScript(t, dir, "ohai-probe-extra", "echo from-extra", 0o755)

	without := NewSafeRunner()
	res, err := without.Run(context.Background(), "ohai-probe-extra")
	require.NoError(t, err)
	assert.False(t, res.OK(), "command outside the search path must not resolve")

	with := NewSafeRunner(dir)
	res, err = with.Run(context.Background(), "ohai-probe-extra")
	require.NoError(t, err)
	assert.Equal(t, "from-extra", res.Value())
}

func TestSafeRunner_Run_NotExecutable(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	writeScript(t, dir, "ohai-probe-noexec", "echo nope", 0o644)

	r := NewSafeRunner(dir)
	_, ok := r.Lookup("ohai-probe-noexec")
	assert.False(t, ok)

	res, err := r.Run(context.Background(), "ohai-probe-noexec")
	require.NoError(t, err)
	assert.False(t, res.OK())
}

func TestSafeRunner_Run_RestrictedPATH(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	writeScript(t, dir, "ohai-print-path", `echo "$PATH"`, 0o755)

	r := NewSafeRunner(dir)
	res, err := r.Run(context.Background(), "ohai-print-path")
	require.NoError(t, err)
	want := "/usr/local/bin:/bin:/usr/bin:/usr/local/sbin:/usr/sbin:/sbin:" + dir
	assert.Equal(t, want, res.Value())
}

func TestSafeRunner_Run_Timeout(t *testing.T) {
	skipUnlessUnix(t)
	dir := t.TempDir()
	writeScript(t, dir, "ohai-probe-slow", "exec sleep 5", 0o755)

	r := NewSafeRunner(dir)
	r.Timeout = 100 * time.Millisecond

	start := time.Now()
	res, err := r.Run(context.Background(), "ohai-probe-slow")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestSafeRunner_Run_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewSafeRunner()
	res, err := r.Run(ctx, "echo", "hi")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, res.OK())
}

func TestFakeRunner(t *testing.T) {
	f := &FakeRunner{Results: map[string]Result{
		"cat /sys/devices/virtual/dmi/id/product_name": Output("OpenStack Nova"),
	}}

	res, err := f.Run(context.Background(), "cat", "/sys/devices/virtual/dmi/id/product_name")
	require.NoError(t, err)
	assert.Equal(t, "OpenStack Nova", res.Value())

	res, err = f.Run(context.Background(), "lscpu")
	require.NoError(t, err)
	assert.False(t, res.OK())

	assert.Equal(t, []string{"cat /sys/devices/virtual/dmi/id/product_name", "lscpu"}, f.Calls)
}
