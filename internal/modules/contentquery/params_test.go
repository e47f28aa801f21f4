package contentquery

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContentFilter(t *testing.T) {
	v, err := url.ParseQuery("page=2&limit=abc&search=+cloud+&personas=CFO,CTO&personas=CISO" +
		"&is_gated=true&is_nurture=false&is_pdg=maybe&score_min=1.5&score_max=x" +
		"&pdg_stages=P1&pdg_stage_is_null=true&content_mix_is_not_null=true" +
		"&score_ranges=good,not_scored&date_field=cms_created_at&date_from=2024-01-01" +
		"&sort_by=cms_created_at&sort_order=asc")
	require.NoError(t, err)

	f := ParseContentFilter(v)
	assert.Equal(t, 2, f.Page)
	assert.Equal(t, 0, f.Limit)
	assert.Equal(t, "cloud", f.Search)
	assert.Equal(t, []string{"CFO", "CTO", "CISO"}, f.Personas)
	require.NotNil(t, f.IsGated)
	assert.True(t, *f.IsGated)
	require.NotNil(t, f.IsNurture)
	assert.False(t, *f.IsNurture)
	assert.Nil(t, f.IsPDG)
	require.NotNil(t, f.ScoreMin)
	assert.Equal(t, 1.5, *f.ScoreMin)
	assert.Nil(t, f.ScoreMax)
	assert.Equal(t, Facet{Values: []string{"P1"}, IsNull: true}, f.PDGStages)
	assert.True(t, f.ContentMix.IsNotNull)
	assert.Equal(t, []string{"good", "not_scored"}, f.ScoreRanges)
	assert.Equal(t, "cms_created_at", f.DateField)
	assert.Equal(t, "asc", f.SortOrder)
}

func TestParseContentFilterRejectsNonFiniteScores(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "+Inf", "-Infinity", "1e999"} {
		f := ParseContentFilter(url.Values{ParamScoreMin: {raw}, ParamScoreMax: {raw}})
		assert.Nil(t, f.ScoreMin, raw)
		assert.Nil(t, f.ScoreMax, raw)
	}
	f := ParseContentFilter(url.Values{ParamScoreMin: {"-0.5"}})
	require.NotNil(t, f.ScoreMin)
	assert.Equal(t, -0.5, *f.ScoreMin)
}

func TestContentFilterValuesRoundTrip(t *testing.T) {
	yes := true
	min := 2.5
	f := ContentFilter{
		Page:        3,
		Search:      "pricing",
		Languages:   []string{"en", "de"},
		IsPublished: &yes,
		ScoreMin:    &min,
		ContentMix:  Facet{IsNull: true},
		ScoreRanges: []string{"poor"},
	}
	encoded := f.Values().Encode()
	assert.Equal(t, "content_mix_is_null=true&is_published=true&languages=en%2Cde&page=3&score_min=2.5&score_ranges=poor&search=pricing", encoded)

	back, err := url.ParseQuery(encoded)
	require.NoError(t, err)
	assert.Equal(t, f, ParseContentFilter(back))
}

func TestParseClassificationFilter(t *testing.T) {
	v := url.Values{
		"inventory_id":                  {"12"},
		"content_type_inferred":         {"guide"},
		"content_type_inferred_is_null": {"true"},
		"cms_actions":                   {"archive,update"},
		"cms_actions_is_not_null":       {"true"},
		"is_pdg":                        {"false"},
		"sort_by":                       {"stage"},
	}
	f := ParseClassificationFilter(v)
	assert.Equal(t, "12", f.InventoryID)
	assert.Equal(t, TextFacet{Contains: "guide", IsNull: true}, f.ContentTypeInferred)
	assert.Equal(t, Facet{Values: []string{"archive", "update"}, IsNotNull: true}, f.CMSActions)
	require.NotNil(t, f.IsPDG)
	assert.False(t, *f.IsPDG)

	assert.Equal(t, f, ParseClassificationFilter(f.Values()))
}

func TestParseCoverageFilter(t *testing.T) {
	f := ParseCoverageFilter(url.Values{"language": {"de"}, "is_pdg": {"true"}, "content_mix_categories": {"Blog"}})
	assert.Equal(t, "de", f.Language)
	require.NotNil(t, f.IsPDG)
	assert.Equal(t, []string{"Blog"}, f.ContentMix.Values)
	assert.Equal(t, f, ParseCoverageFilter(f.Values()))
}
