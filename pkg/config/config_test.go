package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neve/ohai/pkg/errors"
	"github.com/Neve/ohai/pkg/merge"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ohai.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "169.254.169.254", cfg.Metadata.Address)
	assert.Equal(t, 80, cfg.Metadata.Port)
	assert.Equal(t, merge.Full, cfg.Mode())
	assert.Equal(t, []string{"/etc/chef/ohai/hints"}, cfg.HintPaths)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
hints: [openstack]
extraPaths: [/opt/bin]
mergeMode: selective
probeTimeout: 3s
metadata:
  address: 10.0.0.1
  port: 8775
  requestTimeout: 1500ms
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"openstack"}, cfg.Hints)
	assert.Equal(t, []string{"/opt/bin"}, cfg.ExtraPaths)
	assert.Equal(t, merge.Selective, cfg.Mode())
	assert.Equal(t, 3*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "10.0.0.1", cfg.Metadata.Address)
	assert.Equal(t, 8775, cfg.Metadata.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Metadata.RequestTimeout)
	// untouched fields keep their defaults
	assert.Equal(t, Default().Metadata.ConnectTimeout, cfg.Metadata.ConnectTimeout)
	assert.Equal(t, Default().HintPaths, cfg.HintPaths)
}

func TestLoad_Empty(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"unknown field", "mergeMod: full\n", errors.ErrCodeInvalidRequest},
		{"bad yaml", "hints: [openstack\n", errors.ErrCodeInvalidRequest},
		{"bad merge mode", "mergeMode: partial\n", errors.ErrCodeInvalidRequest},
		{"bad port", "metadata:\n  port: 70000\n", errors.ErrCodeInvalidRequest},
		{"bad duration", "probeTimeout: soon\n", errors.ErrCodeInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			code, ok := errors.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	code, _ := errors.CodeOf(err)
	assert.Equal(t, errors.ErrCodeNotFound, code)
}

func TestApply(t *testing.T) {
	cfg := Default()
	err := cfg.Apply(
		WithHints("hp"),
		WithHintPaths(),
		WithExtraPaths("/opt/bin"),
		WithMergeMode("selective"),
		WithMetadataAddress("127.0.0.1"),
		WithMetadataPort(8080),
		WithProbeTimeout(time.Second),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"hp"}, cfg.Hints)
	assert.Equal(t, Default().HintPaths, cfg.HintPaths)
	assert.Equal(t, []string{"/opt/bin"}, cfg.ExtraPaths)
	assert.Equal(t, merge.Selective, cfg.Mode())
	assert.Equal(t, "127.0.0.1", cfg.Metadata.Address)
	assert.Equal(t, 8080, cfg.Metadata.Port)
	assert.Equal(t, time.Second, cfg.ProbeTimeout)
}

func TestApply_ZeroValuesKeepConfig(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Apply(WithMergeMode(""), WithMetadataAddress(""), WithMetadataPort(0), WithProbeTimeout(0)))
	assert.Equal(t, Default(), cfg)
}

func TestApply_Invalid(t *testing.T) {
	assert.Error(t, Default().Apply(WithMergeMode("everything")))
}
