package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

type fakeAPI struct {
	listCalls  atomic.Int32
	statsCalls atomic.Int32
	// failUpdate makes the update route answer 500.
	failUpdate atomic.Bool
	// blockList holds list reads until the request context ends.
	blockList   atomic.Bool
	listStarted chan struct{}
	// seenDuringUpdate captures the cached page while the update is in flight.
	seenDuringUpdate func()
}

func newFakeAPI(t *testing.T) (*fakeAPI, *Client) {
	t.Helper()
	api := &fakeAPI{listStarted: make(chan struct{}, 4)}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ci_session", Value: "tok.sig", Path: "/"})
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("POST /api/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "ci_session", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	})
	mux.HandleFunc("GET /api/classification", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("ci_session"); err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
		api.listCalls.Add(1)
		if api.blockList.Load() {
			api.listStarted <- struct{}{}
			<-r.Context().Done()
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": []map[string]any{
				{"inventory_id": "1", "language": "en"},
				{"inventory_id": "2", "language": "en", "content_mix_category": "Blog"},
			},
			"total": 2, "page": 1, "limit": 100, "totalPages": 1,
		})
	})
	mux.HandleFunc("GET /api/classification/stats", func(w http.ResponseWriter, r *http.Request) {
		api.statsCalls.Add(1)
		writeJSON(w, http.StatusOK, classification.NewStats(2, 1))
	})
	mux.HandleFunc("PATCH /api/classification/update", func(w http.ResponseWriter, r *http.Request) {
		if api.seenDuringUpdate != nil {
			api.seenDuringUpdate()
		}
		if api.failUpdate.Load() {
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Failed to update classification data", "message": "Internal server error",
			})
			return
		}
		var req classification.UpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		category := req.Category
		writeJSON(w, http.StatusOK, classification.Result{
			Success:      true,
			UpdatedCount: 1,
			Items:        []content.InventoryItem{{InventoryID: 1, Language: "en", ContentMixCategory: &category}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewClient(logger.Nop(), Config{BaseURL: srv.URL + "/", Timeout: 5 * time.Second})
	require.NoError(t, err)
	require.NoError(t, c.Login(context.Background(), "admin", "pw"))
	return api, c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func peekCategory(c *Client, key string, id int64) (string, bool) {
	v, ok := c.Cache().Peek(key)
	if !ok {
		return "", false
	}
	for _, it := range v.(*Page).Items {
		if it.InventoryID == id {
			if it.ContentMixCategory == nil {
				return "", true
			}
			return *it.ContentMixCategory, true
		}
	}
	return "", false
}

func categoryOf(t *testing.T, c *Client, key string, id int64) string {
	t.Helper()
	category, ok := peekCategory(c, key, id)
	require.True(t, ok, "item %d not cached under %s", id, key)
	return category
}

func TestReadsAreCachedPerKey(t *testing.T) {
	api, c := newFakeAPI(t)
	ctx := context.Background()

	page, err := c.Classification(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	_, err = c.Classification(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), api.listCalls.Load())

	_, err = c.Classification(ctx, url.Values{"page": {"2"}})
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.listCalls.Load())

	stats, err := c.ClassificationStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(50), stats.Percentage)
}

func TestOptimisticUpdateSucceeds(t *testing.T) {
	api, c := newFakeAPI(t)
	ctx := context.Background()
	key := Key(ScopeClassification, nil)

	_, err := c.Classification(ctx, nil)
	require.NoError(t, err)
	_, err = c.ClassificationStats(ctx, nil)
	require.NoError(t, err)

	var during string
	api.seenDuringUpdate = func() { during, _ = peekCategory(c, key, 1) }

	res, err := c.UpdateClassification(ctx, classification.UpdateRequest{
		InventoryIDs: classification.IDList{"1"},
		Category:     "Webinar",
	})
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, int64(1), res.UpdatedCount)
	assert.Equal(t, "Webinar", during, "patch is visible before the server answers")
	assert.Equal(t, "Blog", categoryOf(t, c, key, 2), "other rows untouched")

	_, fresh := c.Cache().Fresh(key)
	assert.False(t, fresh, "list invalidated after settle")
	_, fresh = c.Cache().Fresh(Key(ScopeClassificationStats, nil))
	assert.False(t, fresh, "stats invalidated after settle")

	_, err = c.ClassificationStats(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.statsCalls.Load())
}

func TestOptimisticUpdateRollsBack(t *testing.T) {
	api, c := newFakeAPI(t)
	ctx := context.Background()
	key := Key(ScopeClassification, nil)

	_, err := c.Classification(ctx, nil)
	require.NoError(t, err)

	var during string
	api.seenDuringUpdate = func() { during, _ = peekCategory(c, key, 2) }
	api.failUpdate.Store(true)

	_, err = c.UpdateClassification(ctx, classification.UpdateRequest{
		InventoryIDs: classification.IDList{"2"},
		Category:     "Webinar",
	})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to update classification data", apiErr.Message)

	assert.Equal(t, "Webinar", during)
	assert.Equal(t, "Blog", categoryOf(t, c, key, 2), "snapshot restored")
	_, fresh := c.Cache().Fresh(key)
	assert.False(t, fresh)
}

func TestUpdateRejectsInvalidRequestLocally(t *testing.T) {
	api, c := newFakeAPI(t)
	var called atomic.Bool
	api.seenDuringUpdate = func() { called.Store(true) }

	_, err := c.UpdateClassification(context.Background(), classification.UpdateRequest{InventoryIDs: classification.IDList{"1"}})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.False(t, called.Load())
}

func TestUpdateCancelsInFlightReads(t *testing.T) {
	api, c := newFakeAPI(t)
	ctx := context.Background()
	key := Key(ScopeClassification, nil)

	_, err := c.Classification(ctx, nil)
	require.NoError(t, err)
	c.Cache().Invalidate(ScopeClassification)

	api.blockList.Store(true)
	readErr := make(chan error, 1)
	go func() {
		_, err := c.Classification(ctx, nil)
		readErr <- err
	}()
	select {
	case <-api.listStarted:
	case <-time.After(5 * time.Second):
		t.Fatal("list read never reached the server")
	}

	_, err = c.UpdateClassification(ctx, classification.UpdateRequest{
		InventoryIDs: classification.IDList{"1"},
		Category:     "Webinar",
	})
	require.NoError(t, err)

	select {
	case err := <-readErr:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("in-flight read was not cancelled")
	}
	assert.Equal(t, "Webinar", categoryOf(t, c, key, 1), "cancelled read did not overwrite the patch")
}

func TestUnauthorizedWithoutLogin(t *testing.T) {
	_, c := newFakeAPI(t)
	require.NoError(t, c.Logout(context.Background()))
	c.httpClient.Jar = nil

	_, err := c.Classification(context.Background(), nil)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Unauthorized", apiErr.Message)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	_, err := NewClient(logger.Nop(), Config{})
	assert.Error(t, err)
}
