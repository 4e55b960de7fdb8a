package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/leapfrag/internal/mapping"
	"github.com/leapstack-labs/leapfrag/internal/state"
	"github.com/leapstack-labs/leapfrag/internal/testutil"
	_ "github.com/leapstack-labs/leapfrag/pkg/dialects/all"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func do(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var out map[string]any
	if strings.HasPrefix(strings.TrimSpace(rec.Body.String()), "{") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestRender(t *testing.T) {
	h := New(Config{Dialect: "postgres", Types: []string{"ltree"}, Logger: testutil.NewTestLogger(t)}).Handler()

	tests := []struct {
		name        string
		body        string
		wantStatus  int
		wantOutput  string
		wantColumns []any
		wantErr     string
	}{
		{
			name:        "default dialect",
			body:        `{"fragment": "a = true and ltree = 1"}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "{@}.a = true and ltree = 1",
			wantColumns: []any{"a"},
		},
		{
			name:        "request dialect",
			body:        "{\"fragment\": \"`x` = true\", \"dialect\": \"sqlserver\"}",
			wantStatus:  http.StatusOK,
			wantOutput:  "{@}.[x] = 1",
			wantColumns: []any{"[x]"},
		},
		{
			name:        "request types",
			body:        `{"fragment": "hstore + b", "types": ["hstore"]}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "hstore + {@}.b",
			wantColumns: []any{"b"},
		},
		{
			name:        "nothing to qualify",
			body:        `{"fragment": "1 + 1"}`,
			wantStatus:  http.StatusOK,
			wantOutput:  "1 + 1",
			wantColumns: []any{},
		},
		{
			name:       "unknown dialect",
			body:       `{"fragment": "a", "dialect": "cobol"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "unknown dialect",
		},
		{
			name:       "unknown field",
			body:       `{"fragmnt": "a"}`,
			wantStatus: http.StatusBadRequest,
			wantErr:    "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, out := do(t, h, http.MethodPost, "/render", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantErr != "" {
				assert.Contains(t, out["error"], tt.wantErr)
				return
			}
			assert.Equal(t, tt.wantOutput, out["output"])
			assert.Equal(t, tt.wantColumns, out["columns"])
		})
	}
}

func TestRenderSavesToStore(t *testing.T) {
	store := state.NewSQLiteStore(nil)
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Migrate())

	h := New(Config{Store: store}).Handler()
	_, out := do(t, h, http.MethodPost, "/render", `{"fragment": "a + b", "dialect": "generic"}`)
	id, _ := out["id"].(string)
	require.NotEmpty(t, id)

	saved, err := store.GetRender(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "{@}.a + {@}.b", saved.Output)
	assert.Equal(t, "http", saved.Source)
}

func TestColumnsAndTransform(t *testing.T) {
	h := New(Config{}).Handler()

	_, out := do(t, h, http.MethodPost, "/columns", `{"rendered": "{@}.a = {@}.\"b c\""}`)
	assert.Equal(t, []any{"a", `"b c"`}, out["columns"])

	_, out = do(t, h, http.MethodPost, "/transform", `{"fragment": "col1 + col10", "columns": ["col1"]}`)
	assert.Equal(t, "{@}.col1 + col10", out["output"])
	assert.Equal(t, []any{"col1"}, out["columns"])
}

func TestDialectsAndHealth(t *testing.T) {
	h := New(Config{}).Handler()

	rec, out := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", out["status"])

	rec, _ = do(t, h, http.MethodGet, "/dialects", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var dialects []dialectInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dialects))

	byName := make(map[string]dialectInfo)
	for _, d := range dialects {
		byName[d.Name] = d
	}
	assert.Equal(t, dialectInfo{Name: "sqlserver", OpenQuote: "[", CloseQuote: "]", True: "1", False: "0"}, byName["sqlserver"])
	assert.Contains(t, byName, "postgres")

	rec, _ = do(t, h, http.MethodPost, "/healthz", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestMappingSnapshot(t *testing.T) {
	logger, logs := testutil.NewCaptureLogger(t)
	s := New(Config{Mapping: "mapping.yaml", Logger: logger})
	h := s.Handler()

	rec, _ := do(t, h, http.MethodGet, "/mapping", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	doc := &mapping.Document{Entities: []mapping.Entity{{Name: "A", Where: "x = 1"}}}
	s.reload(context.Background(), doc, nil)

	rec, out := do(t, h, http.MethodGet, "/mapping", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), out["generation"])
	results := out["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "{@}.x = 1", results[0].(map[string]any)["output"])

	s.reload(context.Background(), nil, assert.AnError)
	_, out = do(t, h, http.MethodGet, "/mapping", "")
	assert.Equal(t, float64(2), out["generation"])
	assert.Equal(t, assert.AnError.Error(), out["error"])
	assert.Contains(t, logs.String(), "mapping reload failed")

	rec, _ = do(t, New(Config{}).Handler(), http.MethodGet, "/mapping", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEvents(t *testing.T) {
	s := New(Config{Mapping: "mapping.yaml"})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return s.notifier.count() == 1 }, 2*time.Second, 10*time.Millisecond)
	s.reload(ctx, &mapping.Document{}, nil)

	lines := bufio.NewScanner(resp.Body)
	var got []string
	for lines.Scan() && len(got) < 2 {
		if line := lines.Text(); line != "" {
			got = append(got, line)
		}
	}
	assert.Equal(t, []string{"event: mapping", `data: {"generation":1}`}, got)
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entities:\n  - name: A\n    where: a = 1\n"), 0o600))

	s := New(Config{Addr: "127.0.0.1:0", Mapping: path, Logger: testutil.NewTestLogger(t)})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx) }()

	require.Eventually(t, func() bool { return s.currentSnapshot() != nil }, 5*time.Second, 20*time.Millisecond)
	assert.Empty(t, s.currentSnapshot().Error)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}
