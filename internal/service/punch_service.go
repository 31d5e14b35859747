package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// staleOpenThreshold 未关闭记录超过此时长后视为遗忘打卡，
// 下一次打卡直接开启新记录，旧记录留待管理员修正。
const staleOpenThreshold = 16 * time.Hour

// PunchService 一键打卡业务接口
type PunchService interface {
	// Toggle 打卡切换：存在有效的未关闭记录则关闭，否则开启新记录
	Toggle(ctx context.Context, req *dto.ToggleRequest) (*dto.ToggleResponse, error)
}

type punchService struct {
	repo   *repository.Repository
	eval   *recordEvaluator
	logger *zap.Logger
}

// NewPunchService 创建 PunchService 实例
func NewPunchService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) PunchService {
	return &punchService{
		repo:   repo,
		eval:   &recordEvaluator{repo: repo, logger: logger, loc: loc},
		logger: logger,
	}
}

func (s *punchService) Toggle(ctx context.Context, req *dto.ToggleRequest) (*dto.ToggleResponse, error) {
	now := time.Now().In(s.eval.loc)

	var resp *dto.ToggleResponse
	// 读-判-写整体在事务内执行。咨询锁串行化同一用户的并发打卡：
	// 首次打卡没有可加行锁的记录，FOR UPDATE 行锁兜不住双开。
	err := s.repo.Atomically(ctx, func(tx *repository.Repository) error {
		if err := tx.TimeRecord.AcquirePunchLock(ctx, req.UserID); err != nil {
			s.logger.Error("获取打卡咨询锁失败", zap.String("user_id", req.UserID), zap.Error(err))
			return err
		}

		latest, err := tx.TimeRecord.FindLatestByUserLocked(ctx, req.UserID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询最近考勤记录失败", zap.String("user_id", req.UserID), zap.Error(err))
			return err
		}

		if latest != nil && latest.IsOpen() {
			if now.Sub(latest.EntryAt) < staleOpenThreshold {
				resp, err = s.close(ctx, tx, latest, now, req.Note)
				return err
			}
			s.logger.Warn("检测到超时未关闭的考勤记录，开启新记录",
				zap.String("user_id", req.UserID),
				zap.String("record_id", latest.RecordID),
				zap.Time("entry_at", latest.EntryAt),
			)
		}

		resp, err = s.open(ctx, tx, req.UserID, now, req.Note)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// open 开启新考勤记录，入场状态即时判定
func (s *punchService) open(ctx context.Context, tx *repository.Repository, userID string, now time.Time, note string) (*dto.ToggleResponse, error) {
	record := &model.TimeRecord{
		UserID:        userID,
		ReferenceDate: time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		EntryAt:       now,
		EntryNote:     note,
	}
	record.CreatedBy = &userID
	record.UpdatedBy = &userID

	eval := s.eval.withRepo(tx)
	if err := eval.apply(ctx, record, 0); err != nil {
		return nil, err
	}
	if err := tx.TimeRecord.Create(ctx, record); err != nil {
		s.logger.Error("开启考勤记录失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return &dto.ToggleResponse{Action: "open", Record: *timeRecordToResponse(record)}, nil
}

// close 关闭未结束的考勤记录，重走完整判定
func (s *punchService) close(ctx context.Context, tx *repository.Repository, record *model.TimeRecord, now time.Time, note string) (*dto.ToggleResponse, error) {
	record.ExitAt = &now
	if note != "" {
		record.ExitNote = note
	}
	record.UpdatedBy = &record.UserID

	eval := s.eval.withRepo(tx)
	pauseMinutes, err := eval.closedPauseMinutes(ctx, record.RecordID)
	if err != nil {
		return nil, err
	}
	if err := eval.apply(ctx, record, pauseMinutes); err != nil {
		return nil, err
	}
	if err := tx.TimeRecord.Update(ctx, record); err != nil {
		s.logger.Error("关闭考勤记录失败", zap.String("record_id", record.RecordID), zap.Error(err))
		return nil, err
	}

	return &dto.ToggleResponse{Action: "close", Record: *timeRecordToResponse(record)}, nil
}
