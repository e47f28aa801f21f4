package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/content-intel-backend/internal/modules/classification"
)

type fakeDashboard struct {
	mu      sync.Mutex
	batches [][]string
	// failAfter rejects every update once this many batches were accepted.
	failAfter int
}

func newFakeDashboard(t *testing.T) (*fakeDashboard, *httptest.Server) {
	t.Helper()
	fd := &fakeDashboard{failAfter: -1}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["username"] != "admin" || body["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid username or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "ci_session", Value: "tok.sig", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("PATCH /api/classification/update", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("ci_session"); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		var req classification.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		fd.mu.Lock()
		defer fd.mu.Unlock()
		if fd.failAfter >= 0 && len(fd.batches) >= fd.failAfter {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to update classification data"})
			return
		}
		fd.batches = append(fd.batches, req.InventoryIDs)
		items := make([]map[string]any, 0, len(req.InventoryIDs))
		for _, id := range req.InventoryIDs {
			items = append(items, map[string]any{"inventory_id": id, "content_mix_category": req.Category})
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "updatedCount": len(items), "items": items})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return fd, srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestRunRejectsInvalidRequest(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-id", "1"}, &stdout, &stderr)
	assert.Equal(t, 2, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "invalid request")
}

func TestRunDryRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-id", "1,2", "-category", "Blog", "-dry-run"}, &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Equal(t, "would update 2 item(s) source=manual assigned_by=cli\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRunServerModeSendsBatches(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	fd, srv := newFakeDashboard(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-server", srv.URL, "-user", "admin", "-password", "pw",
		"-id", "1,2,3", "-category", "Blog", "-batch", "2",
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	fd.mu.Lock()
	assert.Equal(t, [][]string{{"1", "2"}, {"3"}}, fd.batches)
	fd.mu.Unlock()
	assert.Equal(t, "updated 3 of 3 item(s)\n  1\tBlog\n  2\tBlog\n  3\tBlog\n", stdout.String())
}

func TestRunServerModeReportsFailures(t *testing.T) {
	t.Setenv("LOG_MODE", "test")
	fd, srv := newFakeDashboard(t)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{
		"-server", srv.URL, "-user", "admin", "-password", "bad", "-id", "1", "-category", "Blog",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "login")
	assert.Empty(t, stdout.String())

	fd.mu.Lock()
	fd.failAfter = 1
	fd.mu.Unlock()
	stdout.Reset()
	stderr.Reset()
	code = run(context.Background(), []string{
		"-server", srv.URL, "-user", "admin", "-password", "pw",
		"-id", "1,2", "-category", "Blog", "-batch", "1",
	}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Equal(t, "updated 1 of 2 item(s)\n  1\tBlog\n", stdout.String(), "applied batches are still reported")
	assert.Contains(t, stderr.String(), "Failed to update classification data")
}

func TestBatches(t *testing.T) {
	ids := classification.IDList{"1", "2", "3", "4", "5"}
	assert.Equal(t, []classification.IDList{ids}, batches(ids, 0))
	assert.Equal(t, []classification.IDList{ids}, batches(ids, 10))
	assert.Equal(t, []classification.IDList{{"1", "2"}, {"3", "4"}, {"5"}}, batches(ids, 2))
}
