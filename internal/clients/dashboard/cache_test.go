package dashboard

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
)

func TestKeyScopes(t *testing.T) {
	assert.Equal(t, "classification", Key(ScopeClassification, nil))
	k := Key(ScopeClassification, url.Values{"page": {"2"}, "search": {"a b"}})
	assert.Equal(t, "classification?page=2&search=a+b", k)
	assert.Equal(t, ScopeClassification, scopeOf(k))
	assert.Equal(t, ScopeClassificationStats, scopeOf(Key(ScopeClassificationStats, nil)))
}

func TestSnapshotRestore(t *testing.T) {
	q := NewQueryCache()
	q.Set("classification?page=1", "a")
	q.Set("classification-stats", "s")
	snap := q.Snapshot(ScopeClassification)

	q.Patch(ScopeClassification, func(v any) any { return v.(string) + "!" })
	q.Set("classification?page=2", "new")
	v, _ := q.Peek("classification?page=1")
	assert.Equal(t, "a!", v)

	q.Restore(snap)
	v, _ = q.Peek("classification?page=1")
	assert.Equal(t, "a", v)
	_, ok := q.Peek("classification?page=2")
	assert.False(t, ok, "entries added after the snapshot are dropped")
	v, _ = q.Peek("classification-stats")
	assert.Equal(t, "s", v, "other scopes untouched")
}

func TestOvertakenFetchIsDiscarded(t *testing.T) {
	q := NewQueryCache()
	q.Set("content", 1)

	_, version, finish := q.begin(context.Background(), "content")
	q.Set("content", 2)
	assert.False(t, q.commit("content", version, 3))
	finish()

	v, _ := q.Fresh("content")
	assert.Equal(t, 2, v)
}

func TestCancelOnlyTouchesScope(t *testing.T) {
	q := NewQueryCache()
	ctxA, _, finishA := q.begin(context.Background(), "classification?page=1")
	defer finishA()
	ctxB, _, finishB := q.begin(context.Background(), "content")
	defer finishB()

	assert.Equal(t, 1, q.Cancel(ScopeClassification))
	assert.Error(t, ctxA.Err())
	assert.NoError(t, ctxB.Err())
}

func TestApplyClassificationReducer(t *testing.T) {
	blog := "Blog"
	page := &Page{Items: []content.InventoryItem{
		{InventoryID: 1, ContentMixCategory: &blog},
		{InventoryID: 2},
	}, Total: 2}
	category, action := "Webinar", "archive"
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	out := ApplyClassification(page, classification.Update{
		IDs: []int64{2}, Category: &category, CMSAction: &action,
		Source: "manual", AssignedBy: "dashboard",
	}, now)

	assert.Nil(t, page.Items[1].ContentMixCategory, "input not modified")
	assert.Equal(t, "Blog", *out.Items[0].ContentMixCategory)
	got := out.Items[1]
	assert.Equal(t, "Webinar", *got.ContentMixCategory)
	assert.Equal(t, "manual", *got.ContentMixSource)
	assert.Equal(t, "dashboard", *got.ContentMixAssignedBy)
	assert.Equal(t, now, *got.ContentMixAssignedAt)
	assert.Equal(t, "archive", *got.CMSActions)
	assert.Equal(t, now, *got.CMSActionsUpdatedAt)
	assert.Equal(t, int64(2), out.Total)

	onlyAction := ApplyClassification(page, classification.Update{IDs: []int64{1}, CMSAction: &action}, now)
	assert.Nil(t, onlyAction.Items[0].ContentMixAssignedAt, "action patch leaves category stamp alone")
	assert.Nil(t, ApplyClassification(nil, classification.Update{}, now))
}
