package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/blues/crowdmint/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContributionRepository 贡献事件索引
type ContributionRepository struct {
	db *gorm.DB
}

// NewContributionRepository 创建贡献事件索引
func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

// Save 批量保存贡献事件，已存在的 (tx_hash, log_index) 忽略
func (r *ContributionRepository) Save(ctx context.Context, events []model.ContributionEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}

	records := make([]model.ContributionRecordModel, 0, len(events))
	for _, ev := range events {
		records = append(records, model.NewContributionRecord(ev))
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to save contribution records: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListByContributor 按贡献者查询，按区块与日志序号升序
func (r *ContributionRepository) ListByContributor(ctx context.Context, contributor string) ([]model.ContributionEvent, error) {
	var records []model.ContributionRecordModel
	if err := r.db.WithContext(ctx).
		Where("contributor = ?", contributor).
		Order("block_num ASC, log_index ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toEvents(records), nil
}

// ListByProject 按项目查询
func (r *ContributionRepository) ListByProject(ctx context.Context, projectAddress string) ([]model.ContributionEvent, error) {
	var records []model.ContributionRecordModel
	if err := r.db.WithContext(ctx).
		Where("project_address = ?", projectAddress).
		Order("block_num ASC, log_index ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toEvents(records), nil
}

// GetCursor 读取同步游标，不存在时返回 found=false
func (r *ContributionRepository) GetCursor(ctx context.Context, name string) (int64, bool, error) {
	var cursor model.SyncCursorModel
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&cursor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return cursor.BlockNum, true, nil
}

// SaveCursor 写入同步游标
func (r *ContributionRepository) SaveCursor(ctx context.Context, name string, blockNum int64) error {
	cursor := model.SyncCursorModel{Name: name, BlockNum: blockNum}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"block_num", "updated_at"}),
		}).
		Create(&cursor).Error
}

func toEvents(records []model.ContributionRecordModel) []model.ContributionEvent {
	events := make([]model.ContributionEvent, 0, len(records))
	for _, m := range records {
		events = append(events, m.ToEvent())
	}
	return events
}
