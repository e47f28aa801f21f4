package content

import "time"

// PersonaMapping is a model-produced persona and buying-stage label for an
// inventory item. Items point at their current mapping through
// active_persona_mapping_id.
type PersonaMapping struct {
	MappingID           int64      `gorm:"column:mapping_id;primaryKey;autoIncrement:false" json:"mapping_id,string"`
	InventoryID         int64      `gorm:"column:inventory_id;index" json:"inventory_id,string"`
	PersonaPrimaryLabel *string    `gorm:"column:persona_primary_label" json:"persona_primary_label"`
	BuyingStage         *string    `gorm:"column:buying_stage" json:"buying_stage"`
	ContentTypeInferred *string    `gorm:"column:content_type_inferred" json:"content_type_inferred"`
	KeyPainPoint        *string    `gorm:"column:key_pain_point" json:"key_pain_point"`
	Rationale           *string    `gorm:"column:rationale" json:"rationale"`
	ModelName           *string    `gorm:"column:model_name" json:"model_name"`
	Status              *string    `gorm:"column:status" json:"status"`
	CreatedAt           *time.Time `gorm:"column:created_at" json:"created_at"`
}

func (PersonaMapping) TableName() string { return "content_persona_mapping" }
