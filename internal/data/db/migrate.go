package db

import (
	"fmt"

	"github.com/yungbote/content-intel-backend/internal/domain"
	"gorm.io/gorm"
)

// AutoMigrateAll creates the content tables. The CMS owns them in production,
// so this only runs when DB_AUTO_MIGRATE is set or under tests.
func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(domain.Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
