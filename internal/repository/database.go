package repository

import (
	"fmt"

	"github.com/blues/crowdmint/internal/model"
	"gorm.io/gorm"
)

// Migrate 自动迁移贡献索引相关的表
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.ContributionRecordModel{},
		&model.SyncCursorModel{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
