package introspect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/expando-dev/expando/pkg/config"
	"github.com/expando-dev/expando/pkg/extension"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTestServer(t *testing.T) *httptest.Server {
	root := t.TempDir()
	configDir := filepath.Join(root, "config")
	writeFile(t, filepath.Join(root, "match", "base.yml"), "matches:\n  - trigger: \":hi\"\n    replace: \"hello\"\n")
	writeFile(t, filepath.Join(configDir, "default.yml"), "label: default\n")

	eng, _ := config.Load(filepath.Join(configDir, "default.yml"), "", extension.NewRegistry())
	s := New(eng)
	return httptest.NewServer(s.srv.Handler)
}

func TestHandleHealthz(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleProfiles_ListsDefault(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/profiles")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body []profileSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.False(t, body[0].IsCustom)
}

func TestHandleMatches_FindsTrigger(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/matches?trigger=:hi")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body []matchSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, []string{":hi"}, body[0].Triggers)
}

func TestHandleErrors_EmptyWhenLoadClean(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/errors")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body []errorRecordJSON
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body)
}
