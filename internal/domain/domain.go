package domain

import "github.com/yungbote/content-intel-backend/internal/domain/content"

const (
	CMSStatusPublished  = content.CMSStatusPublished
	CMSActionArchive    = content.CMSActionArchive
	MappingStatusActive = content.MappingStatusActive

	ScorePoorMin = content.ScorePoorMin
	ScoreFairMin = content.ScoreFairMin
	ScoreGoodMin = content.ScoreGoodMin
)

type (
	InventoryItem  = content.InventoryItem
	PersonaMapping = content.PersonaMapping
	Scoring        = content.Scoring
	AuditList      = content.AuditList
)

// Models lists every table the service reads, in migration order.
func Models() []interface{} {
	return []interface{}{
		&content.PersonaMapping{},
		&content.Scoring{},
		&content.InventoryItem{},
	}
}
