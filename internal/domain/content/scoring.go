package content

import "time"

const (
	ScorePoorMin = 0.0
	ScoreFairMin = 2.0
	ScoreGoodMin = 3.0
)

type Scoring struct {
	ScoringID            int64    `gorm:"column:scoring_id;primaryKey;autoIncrement:false" json:"scoring_id,string"`
	InventoryID          int64    `gorm:"column:inventory_id;index" json:"inventory_id,string"`
	ScoreOverallWeighted *float64 `gorm:"column:score_overall_weighted" json:"score_overall_weighted"`
	ScoreClarity         *float64 `gorm:"column:score_clarity" json:"score_clarity"`
	ScoreConversion      *float64 `gorm:"column:score_conversion" json:"score_conversion"`
	ScoreRelevance       *float64 `gorm:"column:score_relevance" json:"score_relevance"`
	ScoreStructure       *float64 `gorm:"column:score_structure" json:"score_structure"`

	FlagIsWallOfText        *bool `gorm:"column:flag_is_wall_of_text" json:"flag_is_wall_of_text"`
	FlagHasTransactionalCTA *bool `gorm:"column:flag_has_transactional_cta" json:"flag_has_transactional_cta"`
	FlagHasMixedPronouns    *bool `gorm:"column:flag_has_mixed_pronouns" json:"flag_has_mixed_pronouns"`
	FlagIsCompanyCentric    *bool `gorm:"column:flag_is_company_centric" json:"flag_is_company_centric"`
	FlagHasCaseStudyMetrics *bool `gorm:"column:flag_has_case_study_metrics" json:"flag_has_case_study_metrics"`

	AuditExecutiveSummary   *string   `gorm:"column:audit_executive_summary" json:"audit_executive_summary"`
	AuditPrimaryStrengths   AuditList `gorm:"column:audit_primary_strengths" json:"audit_primary_strengths"`
	AuditCriticalWeaknesses AuditList `gorm:"column:audit_critical_weaknesses" json:"audit_critical_weaknesses"`
	AuditRecommendations    AuditList `gorm:"column:audit_recommendations" json:"audit_recommendations"`

	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Scoring) TableName() string { return "content_scoring" }
