package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
	"github.com/yungbote/content-intel-backend/internal/modules/coverage"
	"github.com/yungbote/content-intel-backend/internal/modules/facets"
	"github.com/yungbote/content-intel-backend/internal/platform/logger"
)

// Page is one page of inventory rows as served by the list endpoints.
type Page struct {
	Items      []content.InventoryItem `json:"items"`
	Total      int64                   `json:"total"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
	TotalPages int                     `json:"totalPages"`
}

type ContentStats struct {
	Total     int64   `json:"total"`
	Published int64   `json:"published"`
	AvgScore  float64 `json:"avgScore"`
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
	Detail  string `json:"message"`
	Code    string `json:"code"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("dashboard api: %d %s: %s", e.Status, e.Message, e.Detail)
	}
	return fmt.Sprintf("dashboard api: %d %s", e.Status, e.Message)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client. Its Jar must be set for the
	// session cookie to stick.
	HTTPClient *http.Client
	// DefaultAssignor fills assignedBy in optimistic patches when a request
	// leaves it empty.
	DefaultAssignor string
}

// Client talks to the dashboard API and keeps a per-instance query cache.
type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
	cache      *QueryCache
	assignor   string
	now        func() time.Time
}

func NewClient(log *logger.Logger, cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("dashboard: base url required")
	}
	hc := cfg.HTTPClient
	if hc == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("dashboard: cookie jar: %w", err)
		}
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout, Jar: jar}
	}
	return &Client{
		log:        log.With("client", "DashboardClient"),
		baseURL:    base,
		httpClient: hc,
		cache:      NewQueryCache(),
		assignor:   cfg.DefaultAssignor,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

func (c *Client) Cache() *QueryCache { return c.cache }

func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", nil, body, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	c.cache.Reset()
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, nil)
}

func (c *Client) Content(ctx context.Context, params url.Values) (*Page, error) {
	return fetch[*Page](ctx, c, Key(ScopeContent, params), "/api/content", params)
}

func (c *Client) ContentStats(ctx context.Context) (*ContentStats, error) {
	params := url.Values{"action": {"stats"}}
	return fetch[*ContentStats](ctx, c, Key(ScopeContentStats, params), "/api/content", params)
}

func (c *Client) Filters(ctx context.Context) (*facets.Options, error) {
	return fetch[*facets.Options](ctx, c, Key(ScopeFilters, nil), "/api/filters", nil)
}

func (c *Client) Coverage(ctx context.Context, params url.Values) (*coverage.Matrix, error) {
	return fetch[*coverage.Matrix](ctx, c, Key(ScopeCoverage, params), "/api/coverage", params)
}

func (c *Client) Nurture(ctx context.Context, language string) (*coverage.Matrix, error) {
	params := url.Values{}
	if language != "" {
		params.Set("language", language)
	}
	return fetch[*coverage.Matrix](ctx, c, Key(ScopeNurture, params), "/api/nurture-coverage", params)
}

func (c *Client) Classification(ctx context.Context, params url.Values) (*Page, error) {
	return fetch[*Page](ctx, c, Key(ScopeClassification, params), "/api/classification", params)
}

func (c *Client) ClassificationStats(ctx context.Context, isPDG *bool) (*classification.Stats, error) {
	params := url.Values{}
	if isPDG != nil {
		params.Set("is_pdg", strconv.FormatBool(*isPDG))
	}
	return fetch[*classification.Stats](ctx, c, Key(ScopeClassificationStats, params), "/api/classification/stats", params)
}

// UpdateClassification applies req optimistically to every cached
// classification page, sends it, and rolls the pages back when the request
// fails. Either way the classification list and stats are invalidated so
// the next read reconciles with the server.
func (c *Client) UpdateClassification(ctx context.Context, req classification.UpdateRequest) (*classification.Result, error) {
	upd, err := req.Validate(c.assignor)
	if err != nil {
		return nil, &APIError{Status: http.StatusBadRequest, Message: err.Error()}
	}

	if n := c.cache.Cancel(ScopeClassification); n > 0 {
		c.log.Debug("cancelled in-flight classification reads", "count", n)
	}
	snapshot := c.cache.Snapshot(ScopeClassification)
	now := c.now()
	c.cache.Patch(ScopeClassification, func(v any) any {
		if page, ok := v.(*Page); ok {
			return ApplyClassification(page, upd, now)
		}
		return v
	})
	defer c.cache.Invalidate(ScopeClassification, ScopeClassificationStats)

	var res classification.Result
	if err := c.do(ctx, http.MethodPatch, "/api/classification/update", nil, req, &res); err != nil {
		c.cache.Restore(snapshot)
		c.log.Warn("classification update rolled back", "ids", len(upd.IDs), "error", err)
		return nil, err
	}
	return &res, nil
}

func fetch[T any](ctx context.Context, c *Client, key, path string, params url.Values) (T, error) {
	var zero T
	if v, ok := c.cache.Fresh(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	ctx, version, finish := c.cache.begin(ctx, key)
	defer finish()

	var out T
	if err := c.do(ctx, http.MethodGet, path, params, nil, &out); err != nil {
		return zero, err
	}
	if !c.cache.commit(key, version, out) {
		c.log.Debug("discarded overtaken read", "key", key)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(raw, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
