package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"punchclock/backend/internal/model"
)

// TimeRecordFilter 考勤记录列表过滤条件
type TimeRecordFilter struct {
	UserID   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// TimeRecordRepository 考勤记录数据访问接口
type TimeRecordRepository interface {
	Create(ctx context.Context, record *model.TimeRecord) error
	GetByID(ctx context.Context, id string) (*model.TimeRecord, error)
	Update(ctx context.Context, record *model.TimeRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter TimeRecordFilter, offset, limit int) ([]model.TimeRecord, int64, error)
	// ListByUserOnDate 返回某用户某参考日的全部记录（重叠检测用）
	ListByUserOnDate(ctx context.Context, userID string, date time.Time) ([]model.TimeRecord, error)
	// FindLatestByUser 按创建顺序返回某用户最近一条记录（非按参考日）
	FindLatestByUser(ctx context.Context, userID string) (*model.TimeRecord, error)
	// FindLatestByUserLocked 同上，但带 FOR UPDATE 行锁；
	// 必须在 Repository.Atomically 事务内调用，用于打卡切换的读-判-写序列。
	FindLatestByUserLocked(ctx context.Context, userID string) (*model.TimeRecord, error)
	// AcquirePunchLock 获取该用户的打卡事务级咨询锁，事务结束自动释放。
	// 用户首次打卡时没有可加行锁的记录，靠此锁串行化并发打卡，
	// 必须在 Repository.Atomically 事务内调用。
	AcquirePunchLock(ctx context.Context, userID string) error
	FindByUserOnDate(ctx context.Context, userID string, date time.Time) (*model.TimeRecord, error)
}

type timeRecordRepo struct {
	db *gorm.DB
}

// NewTimeRecordRepo 创建 TimeRecordRepository 实例
func NewTimeRecordRepo(db *gorm.DB) TimeRecordRepository {
	return &timeRecordRepo{db: db}
}

func (r *timeRecordRepo) Create(ctx context.Context, record *model.TimeRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *timeRecordRepo) AcquirePunchLock(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext('punch:' || ?))", userID).Error
}

func (r *timeRecordRepo) GetByID(ctx context.Context, id string) (*model.TimeRecord, error) {
	var record model.TimeRecord
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Client").
		Preload("Pauses").
		Where("record_id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *timeRecordRepo) Update(ctx context.Context, record *model.TimeRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *timeRecordRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("record_id = ?", id).
		Delete(&model.TimeRecord{}).Error
}

func (r *timeRecordRepo) List(ctx context.Context, filter TimeRecordFilter, offset, limit int) ([]model.TimeRecord, int64, error) {
	var records []model.TimeRecord
	var total int64

	db := r.db.WithContext(ctx).Model(&model.TimeRecord{})
	if filter.UserID != "" {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.DateFrom != nil {
		db = db.Where("reference_date >= ?", filter.DateFrom.Format("2006-01-02"))
	}
	if filter.DateTo != nil {
		db = db.Where("reference_date <= ?", filter.DateTo.Format("2006-01-02"))
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("User").
		Preload("Client").
		Order("reference_date DESC, entry_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error
	return records, total, err
}

func (r *timeRecordRepo) ListByUserOnDate(ctx context.Context, userID string, date time.Time) ([]model.TimeRecord, error) {
	var records []model.TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND reference_date = ?", userID, date.Format("2006-01-02")).
		Find(&records).Error
	return records, err
}

func (r *timeRecordRepo) FindLatestByUser(ctx context.Context, userID string) (*model.TimeRecord, error) {
	var record model.TimeRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *timeRecordRepo) FindLatestByUserLocked(ctx context.Context, userID string) (*model.TimeRecord, error) {
	var record model.TimeRecord
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *timeRecordRepo) FindByUserOnDate(ctx context.Context, userID string, date time.Time) (*model.TimeRecord, error) {
	var record model.TimeRecord
	err := r.db.WithContext(ctx).
		Preload("Pauses").
		Where("user_id = ? AND reference_date = ?", userID, date.Format("2006-01-02")).
		Order("entry_at DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
