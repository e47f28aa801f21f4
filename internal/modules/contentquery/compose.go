package contentquery

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
)

const (
	MappingAlias = "pm"
	ScoringAlias = "sc"
)

// Joins attach the active persona mapping and active scoring. Both are
// belongs-to joins on a primary key, so they never multiply rows.
var Joins = []string{
	"LEFT JOIN content_persona_mapping " + MappingAlias + " ON " + MappingAlias + ".mapping_id = content_inventory.active_persona_mapping_id",
	"LEFT JOIN content_scoring " + ScoringAlias + " ON " + ScoringAlias + ".scoring_id = content_inventory.active_scoring_id",
}

// Col qualifies an inventory column.
func Col(name string) string { return "content_inventory." + name }

func mappingCol(name string) string { return MappingAlias + "." + name }

var (
	colOverallScore = ScoringAlias + ".score_overall_weighted"
	colPersona      = mappingCol("persona_primary_label")
	colStage        = mappingCol("buying_stage")
)

// Query is a composed list request: predicate, ordering and page window.
type Query struct {
	Where   sq.And
	OrderBy []string
	Pagination
}

// ToSql renders the predicate with '?' placeholders.
func (q Query) ToSql() (string, []interface{}, error) {
	if len(q.Where) == 0 {
		return "1=1", nil, nil
	}
	return q.Where.ToSql()
}

var contentSortColumns = map[string]string{
	DateFieldCreated: Col("cms_created_at"),
	DateFieldUpdated: Col("cms_updated_at"),
}

// ComposeContent builds the library list query. Without a languages
// filter every language is listed.
func ComposeContent(f ContentFilter) Query {
	where := sq.And{NotArchived()}

	if term := strings.TrimSpace(f.Search); term != "" {
		where = append(where, sq.Or{Contains(Col("title"), term), Contains(Col("topic"), term)})
	}
	where = appendIn(where, Col("language"), f.Languages)
	where = appendIn(where, Col("content_type_machine"), f.ContentTypes)
	where = appendIn(where, colPersona, f.Personas)
	where = appendIn(where, colStage, f.BuyingStages)
	where = appendPred(where, FacetPredicate(Col("ann_stage"), f.PDGStages))
	where = appendPred(where, FacetPredicate(Col("content_mix_category"), f.ContentMix))

	where = appendBool(where, Col("is_content_gated"), f.IsGated)
	where = appendBool(where, Col("is_nurture_content"), f.IsNurture)
	where = appendBool(where, Col("is_pdg_program_content"), f.IsPDG)
	where = appendBool(where, Col("seo_flag_low_content"), f.HasLowContent)
	where = appendBool(where, Col("seo_flag_low_readability"), f.HasLowReadability)
	where = appendBool(where, Col("seo_flag_title_issue"), f.HasTitleIssues)
	where = appendBool(where, Col("seo_flag_url_issue"), f.HasURLIssues)
	if f.IsPublished != nil {
		where = append(where, PublishedPredicate(*f.IsPublished))
	}

	if f.ScoreMin != nil {
		where = append(where, sq.GtOrEq{Col("seo_onpage_score"): *f.ScoreMin})
	}
	if f.ScoreMax != nil {
		where = append(where, sq.LtOrEq{Col("seo_onpage_score"): *f.ScoreMax})
	}

	if column, ok := contentSortColumns[f.DateField]; ok {
		lo, hi := dayRange(f.DateFrom, f.DateTo)
		if lo != nil {
			where = append(where, sq.GtOrEq{column: *lo})
		}
		if hi != nil {
			where = append(where, sq.Lt{column: *hi})
		}
	}

	where = appendPred(where, ScoreBucketPredicate(f.ScoreRanges))

	column, ok := contentSortColumns[f.SortBy]
	if !ok {
		column = Col("cms_updated_at")
	}
	return Query{
		Where:      where,
		OrderBy:    orderBy(column, normalizeOrder(f.SortOrder, SortDesc)),
		Pagination: Paginate(f.Page, f.Limit),
	}
}

var classificationSortColumns = map[string]string{
	"node_id":              Col("node_id"),
	"ann_stage":            Col("ann_stage"),
	"language":             Col("language"),
	"title":                Col("title"),
	"persona":              colPersona,
	"stage":                colStage,
	"content_type_machine": Col("content_type_machine"),
	"content_mix_category": Col("content_mix_category"),
	"cms_actions":          Col("cms_actions"),
}

// ComposeClassification builds the classification table query: published
// content in the requested or enabled languages.
func ComposeClassification(f ClassificationFilter, enabledLanguages []string) Query {
	where := sq.And{sq.Eq{Col("cms_status"): content.CMSStatusPublished}}
	where = appendLanguages(where, f.Languages, enabledLanguages)

	if v := strings.TrimSpace(f.InventoryID); v != "" {
		where = append(where, Contains("CAST("+Col("inventory_id")+" AS TEXT)", v))
	}
	if v := strings.TrimSpace(f.NodeID); v != "" {
		where = append(where, Contains(Col("node_id"), v))
	}
	if v := strings.TrimSpace(f.AnnStage); v != "" {
		where = append(where, Contains(Col("ann_stage"), v))
	}
	if v := strings.TrimSpace(f.ContentTypeMachine); v != "" {
		where = append(where, Contains(Col("content_type_machine"), v))
	}
	where = appendPred(where, TextFacetPredicate(mappingCol("content_type_inferred"), f.ContentTypeInferred))

	where = appendIn(where, colPersona, f.Personas)
	where = appendIn(where, colStage, f.BuyingStages)
	where = appendBool(where, Col("is_pdg_program_content"), f.IsPDG)
	where = appendPred(where, FacetPredicate(Col("content_mix_category"), f.ContentMix))
	where = appendPred(where, FacetPredicate(Col("cms_actions"), f.CMSActions))

	column, ok := classificationSortColumns[f.SortBy]
	order := normalizeOrder(f.SortOrder, SortDesc)
	if !ok {
		column, order = Col("created_at"), SortDesc
	}
	return Query{
		Where:      where,
		OrderBy:    orderBy(column, order),
		Pagination: Paginate(f.Page, f.Limit),
	}
}

// ClassificationScope is the population the classification stats count.
func ClassificationScope(isPDG *bool, enabledLanguages []string) sq.And {
	where := sq.And{sq.Eq{Col("cms_status"): content.CMSStatusPublished}}
	where = appendLanguages(where, nil, enabledLanguages)
	return appendBool(where, Col("is_pdg_program_content"), isPDG)
}

// CoverageScope is the unfiltered heatmap population: published, enabled
// language, not archived.
func CoverageScope(enabledLanguages []string) sq.And {
	where := sq.And{sq.Eq{Col("cms_status"): content.CMSStatusPublished}, NotArchived()}
	return appendLanguages(where, nil, enabledLanguages)
}

// ComposeCoverage narrows CoverageScope by the heatmap filters. A named
// language replaces the enabled-language restriction.
func ComposeCoverage(f CoverageFilter, enabledLanguages []string) sq.And {
	where := sq.And{sq.Eq{Col("cms_status"): content.CMSStatusPublished}, NotArchived()}
	var langs []string
	if l := strings.TrimSpace(f.Language); l != "" {
		langs = []string{l}
	}
	where = appendLanguages(where, langs, enabledLanguages)
	where = appendBool(where, Col("is_pdg_program_content"), f.IsPDG)
	return appendPred(where, FacetPredicate(Col("content_mix_category"), f.ContentMix))
}

// NurtureAxisScope is the population the nurture heatmap draws its persona
// axis from: every published item in an enabled language, nurture or not.
func NurtureAxisScope(enabledLanguages []string) sq.And {
	where := sq.And{sq.Eq{Col("cms_status"): content.CMSStatusPublished}}
	return appendLanguages(where, nil, enabledLanguages)
}

// ComposeNurture is the nurture heatmap population.
func ComposeNurture(language string, enabledLanguages []string) sq.And {
	yes := true
	where := ComposeCoverage(CoverageFilter{Language: language}, enabledLanguages)
	return appendBool(where, Col("is_nurture_content"), &yes)
}

// NotArchived treats a NULL action as not archived.
func NotArchived() sq.Sqlizer {
	return sq.Or{
		sq.Eq{Col("cms_actions"): nil},
		sq.NotEq{Col("cms_actions"): content.CMSActionArchive},
	}
}

func PublishedPredicate(published bool) sq.Sqlizer {
	if published {
		return sq.Eq{Col("cms_status"): content.CMSStatusPublished}
	}
	return sq.Or{
		sq.Eq{Col("cms_status"): nil},
		sq.NotEq{Col("cms_status"): content.CMSStatusPublished},
	}
}

// FacetPredicate returns nil when the facet is inactive.
func FacetPredicate(column string, f Facet) sq.Sqlizer {
	switch {
	case f.IsNull:
		return sq.Eq{column: nil}
	case f.IsNotNull:
		return sq.NotEq{column: nil}
	}
	vals := cleanList(f.Values)
	if len(vals) == 0 {
		return nil
	}
	return sq.Eq{column: vals}
}

func TextFacetPredicate(column string, f TextFacet) sq.Sqlizer {
	switch {
	case f.IsNull:
		return sq.Eq{column: nil}
	case f.IsNotNull:
		return sq.NotEq{column: nil}
	}
	if v := strings.TrimSpace(f.Contains); v != "" {
		return Contains(column, v)
	}
	return nil
}

// ScoreBucketPredicate ORs the selected buckets; unknown names are ignored.
func ScoreBucketPredicate(ranges []string) sq.Sqlizer {
	var or sq.Or
	for _, r := range cleanList(ranges) {
		switch strings.ToLower(r) {
		case BucketPoor:
			or = append(or, sq.And{sq.GtOrEq{colOverallScore: content.ScorePoorMin}, sq.Lt{colOverallScore: content.ScoreFairMin}})
		case BucketFair:
			or = append(or, sq.And{sq.GtOrEq{colOverallScore: content.ScoreFairMin}, sq.Lt{colOverallScore: content.ScoreGoodMin}})
		case BucketGood:
			or = append(or, sq.GtOrEq{colOverallScore: content.ScoreGoodMin})
		case BucketNotScored:
			or = append(or, sq.Or{sq.Eq{Col("active_scoring_id"): nil}, sq.Eq{colOverallScore: nil}})
		}
	}
	if len(or) == 0 {
		return nil
	}
	return or
}

// Contains is a case-insensitive substring match with LIKE wildcards escaped.
func Contains(column, term string) sq.Sqlizer {
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	return sq.Expr("LOWER("+column+") LIKE ? ESCAPE '\\'", pattern)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func appendLanguages(where sq.And, requested, enabled []string) sq.And {
	if langs := cleanList(requested); len(langs) > 0 {
		return append(where, sq.Eq{Col("language"): langs})
	}
	if langs := cleanList(enabled); len(langs) > 0 {
		return append(where, sq.Eq{Col("language"): langs})
	}
	return where
}

func appendIn(where sq.And, column string, values []string) sq.And {
	if vals := cleanList(values); len(vals) > 0 {
		return append(where, sq.Eq{column: vals})
	}
	return where
}

func appendBool(where sq.And, column string, v *bool) sq.And {
	if v == nil {
		return where
	}
	return append(where, sq.Eq{column: *v})
}

func appendPred(where sq.And, p sq.Sqlizer) sq.And {
	if p == nil {
		return where
	}
	return append(where, p)
}

// orderBy puts NULLs last on every dialect and breaks ties on the key so
// pages are stable.
func orderBy(column, order string) []string {
	return []string{
		fmt.Sprintf("%s IS NULL", column),
		fmt.Sprintf("%s %s", column, strings.ToUpper(order)),
		fmt.Sprintf("%s %s", Col("inventory_id"), strings.ToUpper(order)),
	}
}
