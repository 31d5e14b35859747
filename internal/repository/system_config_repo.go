package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"punchclock/backend/internal/model"
)

// SystemConfigRepository 系统配置数据访问接口（键值行）
type SystemConfigRepository interface {
	List(ctx context.Context) ([]model.SystemConfig, error)
	Get(ctx context.Context, key string) (*model.SystemConfig, error)
	Upsert(ctx context.Context, entry *model.SystemConfig) error
}

type systemConfigRepo struct {
	db *gorm.DB
}

// NewSystemConfigRepo 创建 SystemConfigRepository 实例
func NewSystemConfigRepo(db *gorm.DB) SystemConfigRepository {
	return &systemConfigRepo{db: db}
}

func (r *systemConfigRepo) List(ctx context.Context) ([]model.SystemConfig, error) {
	var entries []model.SystemConfig
	err := r.db.WithContext(ctx).Order("key ASC").Find(&entries).Error
	return entries, err
}

func (r *systemConfigRepo) Get(ctx context.Context, key string) (*model.SystemConfig, error) {
	var entry model.SystemConfig
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *systemConfigRepo) Upsert(ctx context.Context, entry *model.SystemConfig) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at", "updated_by"}),
		}).
		Create(entry).Error
}
