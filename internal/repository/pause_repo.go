package repository

import (
	"context"

	"gorm.io/gorm"

	"punchclock/backend/internal/model"
)

// PauseRepository 暂离数据访问接口
type PauseRepository interface {
	Create(ctx context.Context, pause *model.Pause) error
	GetByID(ctx context.Context, id string) (*model.Pause, error)
	Update(ctx context.Context, pause *model.Pause) error
	// FindOpenByRecord 返回某记录当前未结束的暂离（单开暂离不变式检查用）
	FindOpenByRecord(ctx context.Context, recordID string) (*model.Pause, error)
	// ListClosedByRecord 返回某记录全部已结束暂离（结余重算用）
	ListClosedByRecord(ctx context.Context, recordID string) ([]model.Pause, error)
	ListByRecord(ctx context.Context, recordID string) ([]model.Pause, error)
}

type pauseRepo struct {
	db *gorm.DB
}

// NewPauseRepo 创建 PauseRepository 实例
func NewPauseRepo(db *gorm.DB) PauseRepository {
	return &pauseRepo{db: db}
}

func (r *pauseRepo) Create(ctx context.Context, pause *model.Pause) error {
	return r.db.WithContext(ctx).Create(pause).Error
}

func (r *pauseRepo) GetByID(ctx context.Context, id string) (*model.Pause, error) {
	var pause model.Pause
	err := r.db.WithContext(ctx).Where("pause_id = ?", id).First(&pause).Error
	if err != nil {
		return nil, err
	}
	return &pause, nil
}

func (r *pauseRepo) Update(ctx context.Context, pause *model.Pause) error {
	return r.db.WithContext(ctx).Save(pause).Error
}

func (r *pauseRepo) FindOpenByRecord(ctx context.Context, recordID string) (*model.Pause, error) {
	var pause model.Pause
	err := r.db.WithContext(ctx).
		Where("record_id = ? AND end_at IS NULL", recordID).
		First(&pause).Error
	if err != nil {
		return nil, err
	}
	return &pause, nil
}

func (r *pauseRepo) ListClosedByRecord(ctx context.Context, recordID string) ([]model.Pause, error) {
	var pauses []model.Pause
	err := r.db.WithContext(ctx).
		Where("record_id = ? AND end_at IS NOT NULL", recordID).
		Order("start_at ASC").
		Find(&pauses).Error
	return pauses, err
}

func (r *pauseRepo) ListByRecord(ctx context.Context, recordID string) ([]model.Pause, error) {
	var pauses []model.Pause
	err := r.db.WithContext(ctx).
		Where("record_id = ?", recordID).
		Order("start_at ASC").
		Find(&pauses).Error
	return pauses, err
}
