package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/content-intel-backend/internal/domain/content"
)

func Str(s string) *string { return &s }
func Bool(b bool) *bool { return &b }
func Float(f float64) *float64 { return &f }
func Int(i int) *int { return &i }
func Time(t time.Time) *time.Time { return &t }

// Item describes a seeded inventory row. Zero values mean "published, not
// archived, english"; mapping and scoring rows are created only when a label
// or score is set.
type Item struct {
	ID          int64
	NodeID      string
	Language    string
	Title       string
	Topic       string
	Unpublished bool
	CMSActions  *string
	ContentType *string
	AnnStage    *string
	ContentMix  *string

	Gated   bool
	Nurture bool
	PDG     bool

	SEOScore *float64
	Top10    *int
	Top30    *int

	CreatedAt *time.Time
	UpdatedAt *time.Time

	Persona      *string
	Stage        *string
	InferredType *string
	// MappingInactive seeds a mapping row that the item does not point at.
	MappingInactive bool

	Score  *float64
	Audits *content.AuditList
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, it Item) *content.InventoryItem {
	tb.Helper()

	lang := it.Language
	if lang == "" {
		lang = "en"
	}
	status := content.CMSStatusPublished
	if it.Unpublished {
		status = "draft"
	}
	row := &content.InventoryItem{
		InventoryID:         it.ID,
		Language:            lang,
		CMSStatus:           &status,
		CMSActions:          it.CMSActions,
		ContentTypeMachine:  it.ContentType,
		AnnStage:            it.AnnStage,
		ContentMixCategory:  it.ContentMix,
		IsContentGated:      Bool(it.Gated),
		IsNurtureContent:    Bool(it.Nurture),
		IsPDGProgramContent: Bool(it.PDG),
		SEOOnpageScore:      it.SEOScore,
		SEOTop10Keywords:    it.Top10,
		SEOTop30Keywords:    it.Top30,
		CMSCreatedAt:        it.CreatedAt,
		CMSUpdatedAt:        it.UpdatedAt,
		CreatedAt:           it.CreatedAt,
	}
	if it.NodeID != "" {
		row.NodeID = Str(it.NodeID)
	}
	if it.Title != "" {
		row.Title = Str(it.Title)
	}
	if it.Topic != "" {
		row.Topic = Str(it.Topic)
	}

	if it.Persona != nil || it.Stage != nil || it.InferredType != nil {
		m := &content.PersonaMapping{
			MappingID:           it.ID * 10,
			InventoryID:         it.ID,
			PersonaPrimaryLabel: it.Persona,
			BuyingStage:         it.Stage,
			ContentTypeInferred: it.InferredType,
			Status:              Str(content.MappingStatusActive),
		}
		if err := tx.WithContext(ctx).Create(m).Error; err != nil {
			tb.Fatalf("seed mapping: %v", err)
		}
		if !it.MappingInactive {
			row.ActivePersonaMappingID = &m.MappingID
		}
	}

	if it.Score != nil || it.Audits != nil {
		s := &content.Scoring{
			ScoringID:            it.ID * 10,
			InventoryID:          it.ID,
			ScoreOverallWeighted: it.Score,
		}
		if it.Audits != nil {
			s.AuditPrimaryStrengths = *it.Audits
		}
		if err := tx.WithContext(ctx).Create(s).Error; err != nil {
			tb.Fatalf("seed scoring: %v", err)
		}
		row.ActiveScoringID = &s.ScoringID
	}

	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return row
}
