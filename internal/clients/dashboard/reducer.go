package dashboard

import (
	"time"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
	"github.com/yungbote/content-intel-backend/internal/modules/classification"
)

// ApplyClassification is the optimistic reducer for a classification page:
// it returns a copy of page with upd applied to matching rows. The input page
// is not modified.
func ApplyClassification(page *Page, upd classification.Update, now time.Time) *Page {
	if page == nil {
		return nil
	}
	ids := make(map[int64]bool, len(upd.IDs))
	for _, id := range upd.IDs {
		ids[id] = true
	}
	out := *page
	out.Items = make([]content.InventoryItem, len(page.Items))
	for i, it := range page.Items {
		if ids[it.InventoryID] {
			it = patchItem(it, upd, now)
		}
		out.Items[i] = it
	}
	return &out
}

func patchItem(it content.InventoryItem, upd classification.Update, now time.Time) content.InventoryItem {
	if upd.Category != nil {
		category, source, assignedBy, at := *upd.Category, upd.Source, upd.AssignedBy, now
		it.ContentMixCategory = &category
		it.ContentMixSource = &source
		it.ContentMixAssignedBy = &assignedBy
		it.ContentMixAssignedAt = &at
	}
	if upd.CMSAction != nil {
		action, at := *upd.CMSAction, now
		it.CMSActions = &action
		it.CMSActionsUpdatedAt = &at
	}
	return it
}
