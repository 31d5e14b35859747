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
	pkgerrors "punchclock/backend/pkg/errors"
)

// ── 暂离模块业务错误 ──

var (
	ErrPauseNotFound      = errors.New("暂离记录不存在")
	ErrPauseAlreadyOpen   = errors.New("该考勤记录已存在未结束的暂离")
	ErrPauseAlreadyClosed = errors.New("该暂离已结束")
	ErrPauseBeforeStart   = errors.New("暂离结束时间不能早于开始时间")
)

// PauseService 暂离业务接口
type PauseService interface {
	// Start 开始暂离；同一记录同时只允许一个未结束暂离
	Start(ctx context.Context, req *dto.StartPauseRequest) (*dto.PauseResponse, error)
	// End 结束暂离并重算所属记录的状态与结余
	End(ctx context.Context, req *dto.EndPauseRequest) (*dto.PauseResponse, error)
	ListByRecord(ctx context.Context, recordID string) ([]dto.PauseResponse, error)
}

type pauseService struct {
	repo   *repository.Repository
	eval   *recordEvaluator
	logger *zap.Logger
}

// NewPauseService 创建 PauseService 实例
func NewPauseService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) PauseService {
	return &pauseService{
		repo:   repo,
		eval:   &recordEvaluator{repo: repo, logger: logger, loc: loc},
		logger: logger,
	}
}

func (s *pauseService) Start(ctx context.Context, req *dto.StartPauseRequest) (*dto.PauseResponse, error) {
	startAt := time.Now().In(s.eval.loc)
	if req.StartAt != nil {
		startAt = *req.StartAt
	}

	var pause *model.Pause
	// 单开暂离的读-判-写在事务内执行，部分唯一索引兜底并发竞争
	err := s.repo.Atomically(ctx, func(tx *repository.Repository) error {
		if _, err := tx.TimeRecord.GetByID(ctx, req.RecordID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRecordNotFound
			}
			s.logger.Error("查询考勤记录失败", zap.String("record_id", req.RecordID), zap.Error(err))
			return err
		}

		open, err := tx.Pause.FindOpenByRecord(ctx, req.RecordID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询未结束暂离失败", zap.String("record_id", req.RecordID), zap.Error(err))
			return err
		}
		if open != nil {
			return ErrPauseAlreadyOpen
		}

		pause = &model.Pause{
			RecordID:  req.RecordID,
			StartAt:   startAt,
			StartNote: req.Note,
		}
		if err := tx.Pause.Create(ctx, pause); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkgerrors.ErrConcurrentPause
			}
			s.logger.Error("创建暂离失败", zap.String("record_id", req.RecordID), zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return pauseToResponse(pause), nil
}

func (s *pauseService) End(ctx context.Context, req *dto.EndPauseRequest) (*dto.PauseResponse, error) {
	endAt := time.Now().In(s.eval.loc)
	if req.EndAt != nil {
		endAt = *req.EndAt
	}

	var pause *model.Pause
	// 结束与重算同事务，避免与并发的记录编辑交错
	err := s.repo.Atomically(ctx, func(tx *repository.Repository) error {
		var err error
		pause, err = tx.Pause.GetByID(ctx, req.PauseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPauseNotFound
			}
			s.logger.Error("查询暂离失败", zap.String("pause_id", req.PauseID), zap.Error(err))
			return err
		}
		if pause.EndAt != nil {
			return ErrPauseAlreadyClosed
		}
		if endAt.Before(pause.StartAt) {
			return ErrPauseBeforeStart
		}

		pause.EndAt = &endAt
		if req.Note != "" {
			pause.EndNote = req.Note
		}
		if err := tx.Pause.Update(ctx, pause); err != nil {
			s.logger.Error("更新暂离失败", zap.String("pause_id", pause.PauseID), zap.Error(err))
			return err
		}

		// 暂离时长影响结余，结束后重算所属记录
		return s.recalcRecord(ctx, tx, pause.RecordID)
	})
	if err != nil {
		return nil, err
	}

	return pauseToResponse(pause), nil
}

func (s *pauseService) ListByRecord(ctx context.Context, recordID string) ([]dto.PauseResponse, error) {
	pauses, err := s.repo.Pause.ListByRecord(ctx, recordID)
	if err != nil {
		s.logger.Error("查询暂离列表失败", zap.String("record_id", recordID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.PauseResponse, 0, len(pauses))
	for i := range pauses {
		result = append(result, *pauseToResponse(&pauses[i]))
	}
	return result, nil
}

// recalcRecord 在同一事务内重跑所属考勤记录的完整判定并持久化
func (s *pauseService) recalcRecord(ctx context.Context, tx *repository.Repository, recordID string) error {
	record, err := tx.TimeRecord.GetByID(ctx, recordID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.String("record_id", recordID), zap.Error(err))
		return err
	}

	eval := s.eval.withRepo(tx)
	pauseMinutes, err := eval.closedPauseMinutes(ctx, recordID)
	if err != nil {
		return err
	}
	if err := eval.apply(ctx, record, pauseMinutes); err != nil {
		return err
	}
	if err := tx.TimeRecord.Update(ctx, record); err != nil {
		s.logger.Error("更新考勤记录失败", zap.String("record_id", recordID), zap.Error(err))
		return err
	}
	return nil
}

func pauseToResponse(pause *model.Pause) *dto.PauseResponse {
	return &dto.PauseResponse{
		ID:       pause.PauseID,
		RecordID: pause.RecordID,
		StartAt:  pause.StartAt,
		EndAt:    pause.EndAt,
	}
}
