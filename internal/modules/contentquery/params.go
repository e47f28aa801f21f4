package contentquery

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Query string keys shared by the HTTP handlers and the dashboard client.
const (
	ParamPage   = "page"
	ParamLimit  = "limit"
	ParamSearch = "search"

	ParamPersonas     = "personas"
	ParamBuyingStages = "buying_stages"
	ParamContentTypes = "content_types"
	ParamLanguages    = "languages"
	ParamLanguage     = "language"

	ParamPDGStages        = "pdg_stages"
	ParamPDGStageNull     = "pdg_stage_is_null"
	ParamPDGStageNotNull  = "pdg_stage_is_not_null"
	ParamContentMix       = "content_mix_categories"
	ParamContentMixNull   = "content_mix_is_null"
	ParamContentMixNotNil = "content_mix_is_not_null"

	ParamIsGated           = "is_gated"
	ParamIsNurture         = "is_nurture"
	ParamIsPDG             = "is_pdg"
	ParamIsPublished       = "is_published"
	ParamHasLowContent     = "has_low_content"
	ParamHasLowReadability = "has_low_readability"
	ParamHasTitleIssues    = "has_title_issues"
	ParamHasURLIssues      = "has_url_issues"

	ParamScoreMin    = "score_min"
	ParamScoreMax    = "score_max"
	ParamScoreRanges = "score_ranges"
	ParamDateField   = "date_field"
	ParamDateFrom    = "date_from"
	ParamDateTo      = "date_to"
	ParamSortBy      = "sort_by"
	ParamSortOrder   = "sort_order"

	ParamInventoryID                = "inventory_id"
	ParamNodeID                     = "node_id"
	ParamAnnStage                   = "ann_stage"
	ParamContentTypeMachine         = "content_type_machine"
	ParamContentTypeInferred        = "content_type_inferred"
	ParamContentTypeInferredNull    = "content_type_inferred_is_null"
	ParamContentTypeInferredNotNull = "content_type_inferred_is_not_null"
	ParamCMSActions                 = "cms_actions"
	ParamCMSActionsNull             = "cms_actions_is_null"
	ParamCMSActionsNotNull          = "cms_actions_is_not_null"
)

// ParseContentFilter reads the library filter from a query string.
// Malformed numbers and booleans are treated as absent.
func ParseContentFilter(v url.Values) ContentFilter {
	return ContentFilter{
		Page:         intParam(v, ParamPage),
		Limit:        intParam(v, ParamLimit),
		Search:       strings.TrimSpace(v.Get(ParamSearch)),
		Personas:     ListParam(v, ParamPersonas),
		BuyingStages: ListParam(v, ParamBuyingStages),
		ContentTypes: ListParam(v, ParamContentTypes),
		Languages:    ListParam(v, ParamLanguages),
		PDGStages: Facet{
			Values:    ListParam(v, ParamPDGStages),
			IsNull:    flagParam(v, ParamPDGStageNull),
			IsNotNull: flagParam(v, ParamPDGStageNotNull),
		},
		ContentMix:        parseContentMix(v),
		IsGated:           BoolParam(v, ParamIsGated),
		IsNurture:         BoolParam(v, ParamIsNurture),
		IsPDG:             BoolParam(v, ParamIsPDG),
		IsPublished:       BoolParam(v, ParamIsPublished),
		HasLowContent:     BoolParam(v, ParamHasLowContent),
		HasLowReadability: BoolParam(v, ParamHasLowReadability),
		HasTitleIssues:    BoolParam(v, ParamHasTitleIssues),
		HasURLIssues:      BoolParam(v, ParamHasURLIssues),
		ScoreMin:          floatParam(v, ParamScoreMin),
		ScoreMax:          floatParam(v, ParamScoreMax),
		DateField:         strings.TrimSpace(v.Get(ParamDateField)),
		DateFrom:          strings.TrimSpace(v.Get(ParamDateFrom)),
		DateTo:            strings.TrimSpace(v.Get(ParamDateTo)),
		ScoreRanges:       ListParam(v, ParamScoreRanges),
		SortBy:            strings.TrimSpace(v.Get(ParamSortBy)),
		SortOrder:         strings.TrimSpace(v.Get(ParamSortOrder)),
	}
}

func ParseClassificationFilter(v url.Values) ClassificationFilter {
	return ClassificationFilter{
		Page:               intParam(v, ParamPage),
		Limit:              intParam(v, ParamLimit),
		InventoryID:        strings.TrimSpace(v.Get(ParamInventoryID)),
		NodeID:             strings.TrimSpace(v.Get(ParamNodeID)),
		AnnStage:           strings.TrimSpace(v.Get(ParamAnnStage)),
		ContentTypeMachine: strings.TrimSpace(v.Get(ParamContentTypeMachine)),
		ContentTypeInferred: TextFacet{
			Contains:  strings.TrimSpace(v.Get(ParamContentTypeInferred)),
			IsNull:    flagParam(v, ParamContentTypeInferredNull),
			IsNotNull: flagParam(v, ParamContentTypeInferredNotNull),
		},
		Personas:     ListParam(v, ParamPersonas),
		BuyingStages: ListParam(v, ParamBuyingStages),
		Languages:    ListParam(v, ParamLanguages),
		IsPDG:        BoolParam(v, ParamIsPDG),
		ContentMix:   parseContentMix(v),
		CMSActions: Facet{
			Values:    ListParam(v, ParamCMSActions),
			IsNull:    flagParam(v, ParamCMSActionsNull),
			IsNotNull: flagParam(v, ParamCMSActionsNotNull),
		},
		SortBy:    strings.TrimSpace(v.Get(ParamSortBy)),
		SortOrder: strings.TrimSpace(v.Get(ParamSortOrder)),
	}
}

func ParseCoverageFilter(v url.Values) CoverageFilter {
	return CoverageFilter{
		Language:   strings.TrimSpace(v.Get(ParamLanguage)),
		IsPDG:      BoolParam(v, ParamIsPDG),
		ContentMix: parseContentMix(v),
	}
}

func parseContentMix(v url.Values) Facet {
	return Facet{
		Values:    ListParam(v, ParamContentMix),
		IsNull:    flagParam(v, ParamContentMixNull),
		IsNotNull: flagParam(v, ParamContentMixNotNil),
	}
}

// Values encodes the filter back into a canonical query string. Only set
// fields are written, so equal filters produce equal encodings.
func (f ContentFilter) Values() url.Values {
	v := url.Values{}
	setInt(v, ParamPage, f.Page)
	setInt(v, ParamLimit, f.Limit)
	setString(v, ParamSearch, f.Search)
	setList(v, ParamPersonas, f.Personas)
	setList(v, ParamBuyingStages, f.BuyingStages)
	setList(v, ParamContentTypes, f.ContentTypes)
	setList(v, ParamLanguages, f.Languages)
	setList(v, ParamPDGStages, f.PDGStages.Values)
	setFlag(v, ParamPDGStageNull, f.PDGStages.IsNull)
	setFlag(v, ParamPDGStageNotNull, f.PDGStages.IsNotNull)
	setContentMix(v, f.ContentMix)
	setBool(v, ParamIsGated, f.IsGated)
	setBool(v, ParamIsNurture, f.IsNurture)
	setBool(v, ParamIsPDG, f.IsPDG)
	setBool(v, ParamIsPublished, f.IsPublished)
	setBool(v, ParamHasLowContent, f.HasLowContent)
	setBool(v, ParamHasLowReadability, f.HasLowReadability)
	setBool(v, ParamHasTitleIssues, f.HasTitleIssues)
	setBool(v, ParamHasURLIssues, f.HasURLIssues)
	setFloat(v, ParamScoreMin, f.ScoreMin)
	setFloat(v, ParamScoreMax, f.ScoreMax)
	setString(v, ParamDateField, f.DateField)
	setString(v, ParamDateFrom, f.DateFrom)
	setString(v, ParamDateTo, f.DateTo)
	setList(v, ParamScoreRanges, f.ScoreRanges)
	setString(v, ParamSortBy, f.SortBy)
	setString(v, ParamSortOrder, f.SortOrder)
	return v
}

func (f ClassificationFilter) Values() url.Values {
	v := url.Values{}
	setInt(v, ParamPage, f.Page)
	setInt(v, ParamLimit, f.Limit)
	setString(v, ParamInventoryID, f.InventoryID)
	setString(v, ParamNodeID, f.NodeID)
	setString(v, ParamAnnStage, f.AnnStage)
	setString(v, ParamContentTypeMachine, f.ContentTypeMachine)
	setString(v, ParamContentTypeInferred, f.ContentTypeInferred.Contains)
	setFlag(v, ParamContentTypeInferredNull, f.ContentTypeInferred.IsNull)
	setFlag(v, ParamContentTypeInferredNotNull, f.ContentTypeInferred.IsNotNull)
	setList(v, ParamPersonas, f.Personas)
	setList(v, ParamBuyingStages, f.BuyingStages)
	setList(v, ParamLanguages, f.Languages)
	setBool(v, ParamIsPDG, f.IsPDG)
	setContentMix(v, f.ContentMix)
	setList(v, ParamCMSActions, f.CMSActions.Values)
	setFlag(v, ParamCMSActionsNull, f.CMSActions.IsNull)
	setFlag(v, ParamCMSActionsNotNull, f.CMSActions.IsNotNull)
	setString(v, ParamSortBy, f.SortBy)
	setString(v, ParamSortOrder, f.SortOrder)
	return v
}

func (f CoverageFilter) Values() url.Values {
	v := url.Values{}
	setString(v, ParamLanguage, f.Language)
	setBool(v, ParamIsPDG, f.IsPDG)
	setContentMix(v, f.ContentMix)
	return v
}

func setContentMix(v url.Values, f Facet) {
	setList(v, ParamContentMix, f.Values)
	setFlag(v, ParamContentMixNull, f.IsNull)
	setFlag(v, ParamContentMixNotNil, f.IsNotNull)
}

// ListParam accepts comma separated values and repeated keys.
func ListParam(v url.Values, key string) []string {
	var out []string
	for _, raw := range v[key] {
		for _, part := range strings.Split(raw, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

// BoolParam is a tri-state: "true", "false" or absent.
func BoolParam(v url.Values, key string) *bool {
	switch strings.ToLower(strings.TrimSpace(v.Get(key))) {
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	default:
		return nil
	}
}

func flagParam(v url.Values, key string) bool {
	b := BoolParam(v, key)
	return b != nil && *b
}

func intParam(v url.Values, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func floatParam(v url.Values, key string) *float64 {
	raw := strings.TrimSpace(v.Get(key))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func setInt(v url.Values, key string, n int) {
	if n != 0 {
		v.Set(key, strconv.Itoa(n))
	}
}

func setString(v url.Values, key, s string) {
	if s = strings.TrimSpace(s); s != "" {
		v.Set(key, s)
	}
}

func setList(v url.Values, key string, vals []string) {
	if vals = cleanList(vals); len(vals) > 0 {
		v.Set(key, strings.Join(vals, ","))
	}
}

func setFlag(v url.Values, key string, b bool) {
	if b {
		v.Set(key, "true")
	}
}

func setBool(v url.Values, key string, b *bool) {
	if b != nil {
		v.Set(key, strconv.FormatBool(*b))
	}
}

func setFloat(v url.Values, key string, f *float64) {
	if f != nil {
		v.Set(key, strconv.FormatFloat(*f, 'f', -1, 64))
	}
}
