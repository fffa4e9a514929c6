package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/stctl/importer"
)

type apiCall struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// fakeAPI records every request and answers each path with a canned body.
type fakeAPI struct {
	mu        sync.Mutex
	calls     []apiCall
	responses map[string]string
	statuses  map[string]int
}

func newFakeAPI(t *testing.T, responses map[string]string) (*fakeAPI, string) {
	t.Helper()
	api := &fakeAPI{responses: responses, statuses: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		call := apiCall{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			assert.NoError(t, json.Unmarshal(raw, &call.Body))
		}

		api.mu.Lock()
		api.calls = append(api.calls, call)
		status, failing := api.statuses[r.URL.Path]
		api.mu.Unlock()

		if failing {
			w.WriteHeader(status)
			return
		}

		body, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"error":"unexpected path"}`)
			return
		}
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return api, server.URL + "/api/v1/"
}

// Fail makes every request to path answer with status.
func (a *fakeAPI) Fail(path string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.statuses[path] = status
}

func (a *fakeAPI) Calls() []apiCall {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]apiCall(nil), a.calls...)
}

// resetFlags puts every flag of the command tree back to its default so
// executions of rootCmd do not leak into each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, child := range c.Commands() {
		resetFlags(child)
	}
}

// runCLI executes stctl against endpoint and returns its stdout.
func runCLI(t *testing.T, endpoint string, args ...string) (string, error) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("logging:\n  level: error\n"), 0o600))

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(append([]string{
		"--config", configPath,
		"--endpoint", endpoint,
		"--api-key", "cli-key",
		"--output", "json",
	}, args...))

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSearchRouting(t *testing.T) {
	const results = `{"records":{"books":[{"external_id":"1","title":"Dune"}]},"info":{}}`

	t.Run("single type uses the document type endpoint", func(t *testing.T) {
		api, endpoint := newFakeAPI(t, map[string]string{
			"/api/v1/engines/e1/document_types/books/search.json": results,
		})

		out, err := runCLI(t, endpoint, "search", "e1", "dune", "--type", "books", "--filter", "genre=scifi")
		require.NoError(t, err)

		calls := api.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodPost, calls[0].Method)
		assert.Equal(t, "/api/v1/engines/e1/document_types/books/search.json", calls[0].Path)
		assert.Equal(t, "dune", calls[0].Body["q"])
		assert.Equal(t, "auth_token=cli-key", calls[0].Query)
		assert.NotContains(t, calls[0].Body, "document_types")
		assert.Equal(t, map[string]any{"books": map[string]any{"genre": "scifi"}}, calls[0].Body["filters"])
		assert.Contains(t, out, `"Dune"`)
	})

	t.Run("several types search the engine", func(t *testing.T) {
		api, endpoint := newFakeAPI(t, map[string]string{
			"/api/v1/engines/e1/suggest.json": results,
		})

		_, err := runCLI(t, endpoint, "suggest", "e1", "du", "--type", "books", "--type", "videos")
		require.NoError(t, err)

		calls := api.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, "/api/v1/engines/e1/suggest.json", calls[0].Path)
		assert.Equal(t, []any{"books", "videos"}, calls[0].Body["document_types"])
	})

	t.Run("where narrows the printed records", func(t *testing.T) {
		_, endpoint := newFakeAPI(t, map[string]string{
			"/api/v1/engines/e1/search.json": `{"records":{"books":[{"title":"Dune","year":1965},{"title":"Emma","year":1815}]}}`,
		})

		out, err := runCLI(t, endpoint, "search", "e1", "novel", "--where", "year > 1900")
		require.NoError(t, err)
		assert.Contains(t, out, "Dune")
		assert.NotContains(t, out, "Emma")
	})
}

func TestDocumentsCreateDispatch(t *testing.T) {
	base := "/api/v1/engines/e1/document_types/books/documents"

	tests := []struct {
		name     string
		content  string
		args     []string
		wantPath string
		check    func(t *testing.T, body map[string]any)
	}{
		{
			name:     "object is a single create",
			content:  `{"external_id":"1","title":"Dune"}`,
			wantPath: base + ".json",
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, map[string]any{"external_id": "1", "title": "Dune"}, body["document"])
			},
		},
		{
			name:     "array is one bulk create",
			content:  `[{"external_id":"1"},{"external_id":"2"},{"external_id":"3"}]`,
			wantPath: base + "/bulk_create.json",
			check: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["documents"], 3)
			},
		},
		{
			name:     "upsert array is one bulk create or update",
			content:  `[{"external_id":"1"},{"external_id":"2"}]`,
			args:     []string{"--upsert"},
			wantPath: base + "/bulk_create_or_update.json",
			check: func(t *testing.T, body map[string]any) {
				assert.Len(t, body["documents"], 2)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, endpoint := newFakeAPI(t, map[string]string{
				base + ".json":                       `{"external_id":"1","title":"Dune"}`,
				base + "/bulk_create.json":           `[true,true,true]`,
				base + "/bulk_create_or_update.json": `[true,true]`,
			})

			args := append([]string{"documents", "create", "e1", "books", writeJSON(t, tt.content)}, tt.args...)
			_, err := runCLI(t, endpoint, args...)
			require.NoError(t, err)

			calls := api.Calls()
			require.Len(t, calls, 1, "one round trip")
			assert.Equal(t, http.MethodPost, calls[0].Method)
			assert.Equal(t, tt.wantPath, calls[0].Path)
			tt.check(t, calls[0].Body)
		})
	}
}

func TestDocumentsDeleteDispatch(t *testing.T) {
	base := "/api/v1/engines/e1/document_types/books/documents"

	t.Run("one id", func(t *testing.T) {
		api, endpoint := newFakeAPI(t, map[string]string{base + "/42.json": ``})

		out, err := runCLI(t, endpoint, "documents", "delete", "e1", "books", "42")
		require.NoError(t, err)

		calls := api.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodDelete, calls[0].Method)
		assert.Equal(t, base+"/42.json", calls[0].Path)
		assert.Equal(t, "auth_token=cli-key", calls[0].Query)
		assert.Contains(t, out, "Deleted document 42")
	})

	t.Run("several ids are one bulk destroy", func(t *testing.T) {
		api, endpoint := newFakeAPI(t, map[string]string{base + "/bulk_destroy.json": `[true,false,true]`})

		_, err := runCLI(t, endpoint, "documents", "delete", "e1", "books", "1", "2", "3")
		require.NoError(t, err)

		calls := api.Calls()
		require.Len(t, calls, 1, "one round trip")
		assert.Equal(t, http.MethodPost, calls[0].Method)
		assert.Equal(t, base+"/bulk_destroy.json", calls[0].Path)
		assert.Equal(t, []any{"1", "2", "3"}, calls[0].Body["documents"])
	})
}

func TestDocumentsImportNoRetries(t *testing.T) {
	base := "/api/v1/engines/e1/document_types/books/documents"
	api, endpoint := newFakeAPI(t, map[string]string{})
	api.Fail(base+"/bulk_create.json", http.StatusServiceUnavailable)

	_, err := runCLI(t, endpoint, "documents", "import", "e1", "books",
		writeJSON(t, `[{"external_id":"1"}]`), "--max-retries", "0", "--create-only")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 batch(es) failed")

	calls := api.Calls()
	require.Len(t, calls, 1, "a 503 is retryable but --max-retries 0 sends once")
	assert.Equal(t, base+"/bulk_create.json", calls[0].Path)
}

func TestRetryLimit(t *testing.T) {
	assert.Equal(t, importer.NoRetries, retryLimit(0))
	assert.Equal(t, 3, retryLimit(3))
}
