package content

import "time"

const (
	CMSStatusPublished = "published"
	CMSActionArchive   = "archive"

	MappingStatusActive = "active"
)

// InventoryItem is one CMS asset. The row is owned by the CMS of record; the
// service only writes the classification columns.
type InventoryItem struct {
	InventoryID int64   `gorm:"column:inventory_id;primaryKey;autoIncrement:false" json:"inventory_id,string"`
	NodeID      *string `gorm:"column:node_id;index" json:"node_id"`
	Language    string  `gorm:"column:language;index" json:"language"`
	Title       *string `gorm:"column:title" json:"title"`
	Topic       *string `gorm:"column:topic" json:"topic"`
	URL         *string `gorm:"column:url" json:"url"`

	ContentTypeMachine *string `gorm:"column:content_type_machine" json:"content_type_machine"`
	AnnStage           *string `gorm:"column:ann_stage" json:"ann_stage"`
	SerialNumber       *string `gorm:"column:serial_number" json:"serial_number"`

	ContentMixCategory   *string    `gorm:"column:content_mix_category;index" json:"content_mix_category"`
	ContentMixSource     *string    `gorm:"column:content_mix_source" json:"content_mix_source"`
	ContentMixAssignedBy *string    `gorm:"column:content_mix_assigned_by" json:"content_mix_assigned_by"`
	ContentMixAssignedAt *time.Time `gorm:"column:content_mix_assigned_at" json:"content_mix_assigned_at"`

	CMSStatus           *string    `gorm:"column:cms_status;index" json:"cms_status"`
	CMSActions          *string    `gorm:"column:cms_actions" json:"cms_actions"`
	CMSActionsUpdatedAt *time.Time `gorm:"column:cms_actions_updated_at" json:"cms_actions_updated_at"`
	CMSCreatedAt        *time.Time `gorm:"column:cms_created_at" json:"cms_created_at"`
	CMSUpdatedAt        *time.Time `gorm:"column:cms_updated_at" json:"cms_updated_at"`

	IsContentGated      *bool `gorm:"column:is_content_gated" json:"is_content_gated"`
	IsNurtureContent    *bool `gorm:"column:is_nurture_content" json:"is_nurture_content"`
	IsPDGProgramContent *bool `gorm:"column:is_pdg_program_content" json:"is_pdg_program_content"`

	SEOOnpageScore        *float64 `gorm:"column:seo_onpage_score" json:"seo_onpage_score"`
	SEOTop10Keywords      *int     `gorm:"column:seo_top10_keywords" json:"seo_top10_keywords"`
	SEOTop30Keywords      *int     `gorm:"column:seo_top30_keywords" json:"seo_top30_keywords"`
	SEOFlagLowContent     *bool    `gorm:"column:seo_flag_low_content" json:"seo_flag_low_content"`
	SEOFlagLowReadability *bool    `gorm:"column:seo_flag_low_readability" json:"seo_flag_low_readability"`
	SEOFlagTitleIssue     *bool    `gorm:"column:seo_flag_title_issue" json:"seo_flag_title_issue"`
	SEOFlagURLIssue       *bool    `gorm:"column:seo_flag_url_issue" json:"seo_flag_url_issue"`

	ActivePersonaMappingID *int64 `gorm:"column:active_persona_mapping_id" json:"active_persona_mapping_id,string"`
	ActiveScoringID        *int64 `gorm:"column:active_scoring_id" json:"active_scoring_id,string"`

	PersonaMapping *PersonaMapping `gorm:"foreignKey:ActivePersonaMappingID;references:MappingID" json:"persona_mapping"`
	Scoring        *Scoring        `gorm:"foreignKey:ActiveScoringID;references:ScoringID" json:"scoring"`

	CreatedAt *time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at"`
}

func (InventoryItem) TableName() string { return "content_inventory" }
