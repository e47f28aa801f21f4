package contentquery

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var enabled = []string{"en", "de"}

func render(t *testing.T, q Query) (string, []interface{}) {
	t.Helper()
	sql, args, err := q.ToSql()
	require.NoError(t, err)
	return sql, args
}

func boolPtr(b bool) *bool { return &b }

func TestComposeContentDefaults(t *testing.T) {
	q := ComposeContent(ContentFilter{})
	sql, args := render(t, q)

	assert.Equal(t,
		"((content_inventory.cms_actions IS NULL OR content_inventory.cms_actions <> ?))",
		sql)
	assert.Equal(t, []interface{}{"archive"}, args)
	assert.Equal(t, []string{
		"content_inventory.cms_updated_at IS NULL",
		"content_inventory.cms_updated_at DESC",
		"content_inventory.inventory_id DESC",
	}, q.OrderBy)
	assert.Equal(t, Pagination{Page: 1, Limit: 20, Offset: 0}, q.Pagination)
}

func TestComposeContentSearchAndFacets(t *testing.T) {
	q := ComposeContent(ContentFilter{
		Search:       "Cloud_50%",
		Languages:    []string{"fr"},
		Personas:     []string{"CFO", "CTO"},
		BuyingStages: []string{"Explore"},
		ContentTypes: []string{"Blog"},
	})
	sql, args := render(t, q)

	assert.Contains(t, sql, "(LOWER(content_inventory.title) LIKE ? ESCAPE '\\' OR LOWER(content_inventory.topic) LIKE ? ESCAPE '\\')")
	assert.Contains(t, sql, "content_inventory.language IN (?)")
	assert.Contains(t, sql, "pm.persona_primary_label IN (?,?)")
	assert.Contains(t, sql, "pm.buying_stage IN (?)")
	assert.Contains(t, sql, "content_inventory.content_type_machine IN (?)")
	assert.Contains(t, args, `%cloud\_50\%%`)
	assert.Contains(t, args, "fr")
}

func TestFacetNullPrecedence(t *testing.T) {
	cases := []struct {
		name  string
		facet Facet
		want  string
	}{
		{"null wins over everything", Facet{Values: []string{"A"}, IsNull: true, IsNotNull: true}, "content_inventory.ann_stage IS NULL"},
		{"not null wins over values", Facet{Values: []string{"A"}, IsNotNull: true}, "content_inventory.ann_stage IS NOT NULL"},
		{"values", Facet{Values: []string{"A", " ", "B", "A"}}, "content_inventory.ann_stage IN (?,?)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sql, _, err := FacetPredicate(Col("ann_stage"), tc.facet).ToSql()
			require.NoError(t, err)
			assert.Equal(t, tc.want, sql)
		})
	}
	assert.Nil(t, FacetPredicate(Col("ann_stage"), Facet{}))
}

func TestComposeContentNullFacetNeverAlwaysFalse(t *testing.T) {
	q := ComposeContent(ContentFilter{
		ContentMix: Facet{Values: []string{"Whitepaper"}, IsNull: true},
	})
	sql, args := render(t, q)
	assert.Contains(t, sql, "content_inventory.content_mix_category IS NULL")
	assert.NotContains(t, sql, "content_mix_category IN")
	assert.NotContains(t, args, "Whitepaper")
	assert.NotContains(t, sql, "(1=0)")
}

func TestComposeContentToggles(t *testing.T) {
	q := ComposeContent(ContentFilter{
		IsGated:           boolPtr(true),
		IsNurture:         boolPtr(false),
		IsPDG:             boolPtr(true),
		HasLowContent:     boolPtr(true),
		HasLowReadability: boolPtr(true),
		HasTitleIssues:    boolPtr(false),
		HasURLIssues:      boolPtr(true),
	})
	sql, _ := render(t, q)
	for _, col := range []string{
		"is_content_gated", "is_nurture_content", "is_pdg_program_content",
		"seo_flag_low_content", "seo_flag_low_readability", "seo_flag_title_issue", "seo_flag_url_issue",
	} {
		assert.Contains(t, sql, "content_inventory."+col+" = ?")
	}
}

func TestPublishedPredicate(t *testing.T) {
	sql, args, err := PublishedPredicate(true).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "content_inventory.cms_status = ?", sql)
	assert.Equal(t, []interface{}{"published"}, args)

	sql, _, err = PublishedPredicate(false).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(content_inventory.cms_status IS NULL OR content_inventory.cms_status <> ?)", sql)
}

func TestComposeContentScoreAndDates(t *testing.T) {
	lo, hi := 10.0, 80.0
	q := ComposeContent(ContentFilter{
		ScoreMin:  &lo,
		ScoreMax:  &hi,
		DateField: DateFieldCreated,
		DateFrom:  "2024-01-01",
		DateTo:    "2024-01-31",
	})
	sql, args := render(t, q)
	assert.Contains(t, sql, "content_inventory.seo_onpage_score >= ?")
	assert.Contains(t, sql, "content_inventory.seo_onpage_score <= ?")
	assert.Contains(t, sql, "content_inventory.cms_created_at >= ?")
	assert.Contains(t, sql, "content_inventory.cms_created_at < ?")
	assert.Contains(t, args, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.Contains(t, args, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
}

func TestComposeContentIgnoresUnknownDateField(t *testing.T) {
	q := ComposeContent(ContentFilter{DateField: "title", DateFrom: "2024-01-01"})
	sql, _ := render(t, q)
	assert.NotContains(t, sql, ">= ?")
}

func TestScoreBucketPredicate(t *testing.T) {
	sql, args, err := ScoreBucketPredicate([]string{"good", "not_scored", "bogus"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"(sc.score_overall_weighted >= ? OR (content_inventory.active_scoring_id IS NULL OR sc.score_overall_weighted IS NULL))",
		sql)
	assert.Equal(t, []interface{}{3.0}, args)

	sql, args, err = ScoreBucketPredicate([]string{"poor", "fair"}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"((sc.score_overall_weighted >= ? AND sc.score_overall_weighted < ?) OR (sc.score_overall_weighted >= ? AND sc.score_overall_weighted < ?))",
		sql)
	assert.Equal(t, []interface{}{0.0, 2.0, 2.0, 3.0}, args)

	assert.Nil(t, ScoreBucketPredicate([]string{"bogus"}))
}

func TestComposeContentScoreBucketsKeepOtherFilters(t *testing.T) {
	q := ComposeContent(ContentFilter{
		Languages:   []string{"en"},
		ScoreRanges: []string{"good"},
	})
	sql, _ := render(t, q)
	assert.True(t, strings.HasPrefix(sql, "((content_inventory.cms_actions IS NULL"))
	assert.Contains(t, sql, "content_inventory.language IN (?) AND (sc.score_overall_weighted >= ?)")
}

func TestComposeContentSortAllowList(t *testing.T) {
	q := ComposeContent(ContentFilter{SortBy: "cms_created_at", SortOrder: "ASC"})
	assert.Equal(t, "content_inventory.cms_created_at ASC", q.OrderBy[1])

	q = ComposeContent(ContentFilter{SortBy: "title; DROP TABLE x", SortOrder: "sideways"})
	assert.Equal(t, "content_inventory.cms_updated_at DESC", q.OrderBy[1])
}

func TestPaginate(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: 20}, Paginate(0, 0))
	assert.Equal(t, Pagination{Page: 1, Limit: 20}, Paginate(-3, -1))
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Offset: 20}, Paginate(3, 10))
	assert.Equal(t, MaxLimit, Paginate(1, 10_000).Limit)

	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
}

func TestComposeClassification(t *testing.T) {
	q := ComposeClassification(ClassificationFilter{
		InventoryID:         "12",
		NodeID:              "N-",
		ContentTypeInferred: TextFacet{Contains: "guide", IsNotNull: true},
		IsPDG:               boolPtr(true),
		CMSActions:          Facet{Values: []string{"archive"}},
		SortBy:              "persona",
		SortOrder:           "asc",
	}, enabled)
	sql, args := render(t, q)

	assert.True(t, strings.HasPrefix(sql, "(content_inventory.cms_status = ? AND content_inventory.language IN (?,?)"))
	assert.Contains(t, sql, "LOWER(CAST(content_inventory.inventory_id AS TEXT)) LIKE ?")
	assert.Contains(t, sql, "LOWER(content_inventory.node_id) LIKE ?")
	assert.Contains(t, sql, "pm.content_type_inferred IS NOT NULL")
	assert.NotContains(t, args, "%guide%")
	assert.Contains(t, sql, "content_inventory.is_pdg_program_content = ?")
	assert.Contains(t, sql, "content_inventory.cms_actions IN (?)")
	assert.NotContains(t, sql, "cms_actions <> ?", "classification shows archived rows")
	assert.Equal(t, "pm.persona_primary_label ASC", q.OrderBy[1])
}

func TestComposeClassificationDefaultSort(t *testing.T) {
	q := ComposeClassification(ClassificationFilter{SortBy: "inventory_id"}, nil)
	assert.Equal(t, "content_inventory.created_at DESC", q.OrderBy[1])
}

func TestCoverageScopes(t *testing.T) {
	sql, args, err := CoverageScope(enabled).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"(content_inventory.cms_status = ? AND (content_inventory.cms_actions IS NULL OR content_inventory.cms_actions <> ?) AND content_inventory.language IN (?,?))",
		sql)
	assert.Equal(t, []interface{}{"published", "archive", "en", "de"}, args)

	sql, args, err = ComposeCoverage(CoverageFilter{
		Language:   "de",
		IsPDG:      boolPtr(true),
		ContentMix: Facet{Values: []string{"Blog"}, IsNotNull: true},
	}, enabled).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "content_inventory.language IN (?)")
	assert.Contains(t, sql, "content_inventory.is_pdg_program_content = ?")
	assert.Contains(t, sql, "content_inventory.content_mix_category IS NOT NULL")
	assert.NotContains(t, args, "en")

	sql, _, err = ComposeNurture("", enabled).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "content_inventory.is_nurture_content = ?")

	sql, args, err = NurtureAxisScope(enabled).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "is_nurture_content")
	assert.NotContains(t, sql, "cms_actions")
	assert.Equal(t, []interface{}{"published", "en", "de"}, args)
}
