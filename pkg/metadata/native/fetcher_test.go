package native

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neve/ohai/pkg/attribute"
	"github.com/Neve/ohai/pkg/errors"
	"github.com/Neve/ohai/pkg/metadata"
)

const metaDataJSON = `{
  "uuid": "d8e02d56-2648-49a3-bf97-6be8f1204f38",
  "availability_zone": "nova",
  "hostname": "web-1.novalocal",
  "launch_index": 0,
  "meta": {"role": "webserver", "env": "prod"},
  "public_keys": {"deployer": "ssh-rsa AAAA deployer"},
  "name": "web-1"
}`

func serve(t *testing.T, status int, body string) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != Path {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewFetcher(metadata.NewClient(srv.URL))
}

func TestFetcher_Fetch(t *testing.T) {
	f := serve(t, http.StatusOK, metaDataJSON)

	doc, err := f.Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"uuid", "availability_zone", "hostname", "launch_index", "meta", "public_keys", "name"}, doc.Keys())
	idx, _ := doc.Get("launch_index")
	assert.Equal(t, float64(0), idx)
	meta, _ := doc.Get("meta")
	assert.Equal(t, map[string]any{"role": "webserver", "env": "prod"}, meta.(*attribute.Map).ToMap())
}

func TestFetcher_Fetch_Non200(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusNoContent} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			_, err := serve(t, status, "{}").Fetch(context.Background())
			require.Error(t, err)

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, errors.ErrCodeUnavailable, se.Code)
			assert.Equal(t, status, se.Context["status"])
		})
	}
}

func TestFetcher_Fetch_Malformed(t *testing.T) {
	tests := map[string]string{
		"truncated": `{"uuid": "x"`,
		"array":     `["a"]`,
		"empty":     ``,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := serve(t, http.StatusOK, body).Fetch(context.Background())
			require.Error(t, err)
			code, ok := errors.CodeOf(err)
			require.True(t, ok)
			assert.Equal(t, errors.ErrCodeInvalidResponse, code)
		})
	}
}

func TestFetcher_Fetch_InvalidUUIDIsKept(t *testing.T) {
	doc, err := serve(t, http.StatusOK, `{"uuid": "not-a-uuid"}`).Fetch(context.Background())
	require.NoError(t, err)
	v, _ := doc.GetString("uuid")
	assert.Equal(t, "not-a-uuid", v)
}
