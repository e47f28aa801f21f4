package contentquery

import (
	"strings"
	"time"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	SortAsc  = "asc"
	SortDesc = "desc"

	DateFieldCreated = "cms_created_at"
	DateFieldUpdated = "cms_updated_at"

	BucketPoor      = "poor"
	BucketFair      = "fair"
	BucketGood      = "good"
	BucketNotScored = "not_scored"
)

// Facet is a multi-select filter that can also ask for NULL / NOT NULL.
// IsNull wins over IsNotNull, which wins over Values.
type Facet struct {
	Values    []string
	IsNull    bool
	IsNotNull bool
}

func (f Facet) Active() bool {
	return f.IsNull || f.IsNotNull || len(f.Values) > 0
}

// TextFacet is a case-insensitive substring filter with the same NULL
// precedence as Facet.
type TextFacet struct {
	Contains  string
	IsNull    bool
	IsNotNull bool
}

// ContentFilter is the library view filter.
type ContentFilter struct {
	Page  int
	Limit int

	Search       string
	Personas     []string
	BuyingStages []string
	ContentTypes []string
	Languages    []string
	PDGStages    Facet
	ContentMix   Facet

	IsGated           *bool
	IsNurture         *bool
	IsPDG             *bool
	IsPublished       *bool
	HasLowContent     *bool
	HasLowReadability *bool
	HasTitleIssues    *bool
	HasURLIssues      *bool

	ScoreMin *float64
	ScoreMax *float64

	DateField string
	DateFrom  string
	DateTo    string

	ScoreRanges []string

	SortBy    string
	SortOrder string
}

// ClassificationFilter is the classification table filter.
type ClassificationFilter struct {
	Page  int
	Limit int

	InventoryID        string
	NodeID             string
	AnnStage           string
	ContentTypeMachine string

	ContentTypeInferred TextFacet

	Personas     []string
	BuyingStages []string
	Languages    []string
	IsPDG        *bool

	ContentMix Facet
	CMSActions Facet

	SortBy    string
	SortOrder string
}

// CoverageFilter narrows the coverage heatmap.
type CoverageFilter struct {
	Language   string
	IsPDG      *bool
	ContentMix Facet
}

// Pagination resolves page and limit, substituting defaults for invalid
// values and capping the limit.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

func Paginate(page, limit int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Pagination{Page: page, Limit: limit, Offset: (page - 1) * limit}
}

// TotalPages is ceil(total/limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func normalizeOrder(order, def string) string {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return def
	}
}

// dayRange turns inclusive YYYY-MM-DD bounds into [from, toExclusive) in UTC.
// Unparseable bounds are dropped.
func dayRange(from, to string) (*time.Time, *time.Time) {
	var lo, hi *time.Time
	if t, err := time.Parse(time.DateOnly, strings.TrimSpace(from)); err == nil {
		t = t.UTC()
		lo = &t
	}
	if t, err := time.Parse(time.DateOnly, strings.TrimSpace(to)); err == nil {
		t = t.UTC().AddDate(0, 0, 1)
		hi = &t
	}
	return lo, hi
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
