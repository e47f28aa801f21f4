package classification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
)

const (
	DefaultSource   = "manual"
	DefaultAssignor = "dashboard"
)

// IDList accepts inventory ids as JSON strings or numbers.
type IDList []string

func (l *IDList) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = nil
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("inventoryIds must be an array")
	}
	out := make(IDList, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(r, &n); err != nil {
			return fmt.Errorf("inventoryIds must contain strings or numbers")
		}
		out = append(out, n.String())
	}
	*l = out
	return nil
}

// UpdateRequest is the batch classification payload.
type UpdateRequest struct {
	InventoryIDs IDList `json:"inventoryIds"`
	Category     string `json:"category,omitempty"`
	CMSAction    string `json:"cmsAction,omitempty"`
	Source       string `json:"source,omitempty"`
	AssignedBy   string `json:"assignedBy,omitempty"`
}

// Update is a validated request ready to apply.
type Update struct {
	IDs        []int64
	Category   *string
	CMSAction  *string
	Source     string
	AssignedBy string
}

// ValidationError is a caller mistake; its message is safe to return.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// Validate checks the request and fills defaults. Duplicate ids collapse to
// one.
func (r UpdateRequest) Validate(defaultAssignor string) (Update, error) {
	if len(r.InventoryIDs) == 0 {
		return Update{}, &ValidationError{Msg: "inventoryIds is required and must be a non-empty array"}
	}
	category := strings.TrimSpace(r.Category)
	action := strings.TrimSpace(r.CMSAction)
	if category == "" && action == "" {
		return Update{}, &ValidationError{Msg: "Either category or cmsAction must be provided"}
	}

	seen := make(map[int64]bool, len(r.InventoryIDs))
	ids := make([]int64, 0, len(r.InventoryIDs))
	for _, raw := range r.InventoryIDs {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return Update{}, &ValidationError{Msg: fmt.Sprintf("invalid inventory id %q", raw)}
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}

	u := Update{IDs: ids, Source: strings.TrimSpace(r.Source), AssignedBy: strings.TrimSpace(r.AssignedBy)}
	if u.Source == "" {
		u.Source = DefaultSource
	}
	if u.AssignedBy == "" {
		u.AssignedBy = strings.TrimSpace(defaultAssignor)
	}
	if u.AssignedBy == "" {
		u.AssignedBy = DefaultAssignor
	}
	if category != "" {
		u.Category = &category
	}
	if action != "" {
		u.CMSAction = &action
	}
	return u, nil
}

// Columns is the column patch for one UPDATE statement. A category change
// stamps provenance; an action change stamps only its own timestamp.
func (u Update) Columns(now time.Time) map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Category != nil {
		cols["content_mix_category"] = *u.Category
		cols["content_mix_source"] = u.Source
		cols["content_mix_assigned_by"] = u.AssignedBy
		cols["content_mix_assigned_at"] = now
	}
	if u.CMSAction != nil {
		cols["cms_actions"] = *u.CMSAction
		cols["cms_actions_updated_at"] = now
	}
	return cols
}

// Result is the mutation response. Items is never nil.
type Result struct {
	Success      bool                    `json:"success"`
	UpdatedCount int64                   `json:"updatedCount"`
	Items        []content.InventoryItem `json:"items"`
}

// Stats summarises how much of the classification scope carries a category.
type Stats struct {
	Total        int64 `json:"total"`
	Classified   int64 `json:"classified"`
	Unclassified int64 `json:"unclassified"`
	Percentage   int64 `json:"percentage"`
}

func NewStats(total, classified int64) Stats {
	s := Stats{Total: total, Classified: classified, Unclassified: total - classified}
	if total > 0 {
		s.Percentage = (classified*200 + total) / (total * 2)
	}
	return s
}
