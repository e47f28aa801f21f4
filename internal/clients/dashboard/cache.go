package dashboard

import (
	"context"
	"net/url"
	"strings"
	"sync"
)

const (
	ScopeContent             = "content"
	ScopeContentStats        = "content-stats"
	ScopeFilters             = "filters"
	ScopeCoverage            = "coverage"
	ScopeNurture             = "nurture"
	ScopeClassification      = "classification"
	ScopeClassificationStats = "classification-stats"
)

// Key identifies one query by scope and request parameters.
func Key(scope string, params url.Values) string {
	if len(params) == 0 {
		return scope
	}
	return scope + "?" + params.Encode()
}

func scopeOf(key string) string {
	if i := strings.IndexByte(key, '?'); i >= 0 {
		return key[:i]
	}
	return key
}

type entry struct {
	value    any
	hasValue bool
	stale    bool
	// version moves on every write so a fetch can tell it was overtaken.
	version  uint64
	inflight map[uint64]context.CancelFunc
}

// QueryCache holds decoded responses per query key, tracks in-flight reads
// and supports optimistic patches with snapshot rollback. It is scoped to one
// Client.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]*entry
	seq     uint64
}

func NewQueryCache() *QueryCache {
	return &QueryCache{entries: map[string]*entry{}}
}

func (q *QueryCache) get(key string) *entry {
	e, ok := q.entries[key]
	if !ok {
		e = &entry{inflight: map[uint64]context.CancelFunc{}}
		q.entries[key] = e
	}
	return e
}

// Reset cancels every in-flight read and drops all entries.
func (q *QueryCache) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, e := range q.entries {
		for _, cancel := range e.inflight {
			cancel()
		}
	}
	q.entries = map[string]*entry{}
}

// Peek returns whatever is cached for key, stale or not.
func (q *QueryCache) Peek(key string) (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok || !e.hasValue {
		return nil, false
	}
	return e.value, true
}

// Fresh returns the cached value only when it has not been invalidated.
func (q *QueryCache) Fresh(key string) (any, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	e, ok := q.entries[key]
	if !ok || !e.hasValue || e.stale {
		return nil, false
	}
	return e.value, true
}

func (q *QueryCache) Set(key string, value any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.write(q.get(key), value)
}

func (q *QueryCache) write(e *entry, value any) {
	q.seq++
	e.value = value
	e.hasValue = true
	e.stale = false
	e.version = q.seq
}

// begin registers an in-flight read for key. The returned context is
// cancelled by Cancel; finish must always be called.
func (q *QueryCache) begin(ctx context.Context, key string) (context.Context, uint64, func()) {
	ctx, cancel := context.WithCancel(ctx)
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	id := q.seq
	e := q.get(key)
	e.inflight[id] = cancel
	version := e.version
	return ctx, version, func() {
		q.mu.Lock()
		delete(q.get(key).inflight, id)
		q.mu.Unlock()
		cancel()
	}
}

// commit stores a fetched value unless the entry was written after the
// fetch began.
func (q *QueryCache) commit(key string, version uint64, value any) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	e := q.get(key)
	if e.version != version {
		return false
	}
	q.write(e, value)
	return true
}

// Cancel aborts every in-flight read in scope and returns how many were
// cancelled.
func (q *QueryCache) Cancel(scope string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := 0
	for key, e := range q.entries {
		if scopeOf(key) != scope {
			continue
		}
		for id, cancel := range e.inflight {
			cancel()
			delete(e.inflight, id)
			n++
		}
	}
	return n
}

// Invalidate marks every entry in the given scopes stale. Stale values stay
// visible through Peek until the next read replaces them.
func (q *QueryCache) Invalidate(scopes ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, e := range q.entries {
		for _, s := range scopes {
			if scopeOf(key) == s {
				e.stale = true
			}
		}
	}
}

// Snapshot records the cached values in scope for a later Restore.
type Snapshot struct {
	scope  string
	values map[string]any
}

func (q *QueryCache) Snapshot(scope string) Snapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	s := Snapshot{scope: scope, values: map[string]any{}}
	for key, e := range q.entries {
		if scopeOf(key) == scope && e.hasValue {
			s.values[key] = e.value
		}
	}
	return s
}

// Restore puts the snapshot values back. Entries created after the snapshot
// are dropped.
func (q *QueryCache) Restore(s Snapshot) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, e := range q.entries {
		if scopeOf(key) != s.scope {
			continue
		}
		if v, ok := s.values[key]; ok {
			q.write(e, v)
			continue
		}
		e.value, e.hasValue = nil, false
	}
}

// Patch replaces every cached value in scope with reduce(value).
func (q *QueryCache) Patch(scope string, reduce func(any) any) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for key, e := range q.entries {
		if scopeOf(key) == scope && e.hasValue {
			q.write(e, reduce(e.value))
		}
	}
}
