package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User         UserRepository
	Company      CompanyRepository
	Client       ClientRepository
	Shift        ShiftRepository
	ClientLink   ClientLinkRepository
	TimeRecord   TimeRecordRepository
	Pause        PauseRepository
	SystemConfig SystemConfigRepository

	db *gorm.DB
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:         NewUserRepo(db),
		Company:      NewCompanyRepo(db),
		Client:       NewClientRepo(db),
		Shift:        NewShiftRepo(db),
		ClientLink:   NewClientLinkRepo(db),
		TimeRecord:   NewTimeRecordRepo(db),
		Pause:        NewPauseRepo(db),
		SystemConfig: NewSystemConfigRepo(db),
		db:           db,
	}
}

// Atomically 在单个数据库事务内执行 fn，fn 通过事务级聚合读写。
// 打卡切换、暂离开启等"读-判-写"序列必须在此内执行，
// 配合行锁将同一用户的并发请求串行化。
func (r *Repository) Atomically(ctx context.Context, fn func(txRepo *Repository) error) error {
	if r.db == nil {
		// 测试场景下聚合由 mock 构成，无真实事务可用，直接执行
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
