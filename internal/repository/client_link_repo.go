package repository

import (
	"context"

	"gorm.io/gorm"

	"punchclock/backend/internal/model"
)

// ClientLinkRepository 派驻链接数据访问接口
type ClientLinkRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.ClientLink, error)
	ListByClient(ctx context.Context, clientID string) ([]model.ClientLink, error)
	ReplaceForUser(ctx context.Context, userID string, links []model.ClientLink) ([]model.ClientLink, error)
}

type clientLinkRepo struct {
	db *gorm.DB
}

// NewClientLinkRepo 创建 ClientLinkRepository 实例
func NewClientLinkRepo(db *gorm.DB) ClientLinkRepository {
	return &clientLinkRepo{db: db}
}

func (r *clientLinkRepo) ListByUser(ctx context.Context, userID string) ([]model.ClientLink, error) {
	var links []model.ClientLink
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Company").
		Where("user_id = ?", userID).
		Find(&links).Error
	return links, err
}

func (r *clientLinkRepo) ListByClient(ctx context.Context, clientID string) ([]model.ClientLink, error) {
	var links []model.ClientLink
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("client_id = ?", clientID).
		Find(&links).Error
	return links, err
}

// ReplaceForUser 以"全删全插"策略重建某用户的派驻链接集合。
func (r *clientLinkRepo) ReplaceForUser(ctx context.Context, userID string, links []model.ClientLink) ([]model.ClientLink, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.ClientLink{}).Error; err != nil {
			return err
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Create(&links).Error
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}
