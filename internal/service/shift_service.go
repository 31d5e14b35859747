package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// ── 班次模块业务错误 ──

var (
	ErrShiftNotFound = errors.New("班次不存在")
	ErrShiftOverlap  = errors.New("该时段与已有班次冲突")
)

// 班次最短有效时长（分钟），跨午夜按翻越解析后计算
const minShiftMinutes = 60

// ShiftService 班次业务接口
type ShiftService interface {
	ListByUser(ctx context.Context, userID string) ([]dto.ShiftResponse, error)
	Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error)
	Delete(ctx context.Context, id string) error
}

type shiftService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewShiftService 创建 ShiftService 实例
func NewShiftService(repo *repository.Repository, logger *zap.Logger) ShiftService {
	return &shiftService{repo: repo, logger: logger}
}

func (s *shiftService) ListByUser(ctx context.Context, userID string) ([]dto.ShiftResponse, error) {
	shifts, err := s.repo.Shift.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		result = append(result, *shiftToResponse(&shifts[i]))
	}
	return result, nil
}

func (s *shiftService) Create(ctx context.Context, req *dto.CreateShiftRequest) (*dto.ShiftResponse, error) {
	start, err := parseClock(req.StartTime)
	if err != nil {
		return nil, &ValidationError{Reason: "班次开始时间格式无效"}
	}
	end, err := parseClock(req.EndTime)
	if err != nil {
		return nil, &ValidationError{Reason: "班次结束时间格式无效"}
	}

	if resolvedDuration(start, end) < minShiftMinutes {
		return nil, &ValidationError{
			Reason: fmt.Sprintf("班次时长不得少于 %d 分钟", minShiftMinutes),
		}
	}

	existing, err := s.repo.Shift.ListByUser(ctx, req.UserID)
	if err != nil {
		s.logger.Error("查询班次列表失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	for i := range existing {
		es, err1 := parseClock(existing[i].StartTime)
		ee, err2 := parseClock(existing[i].EndTime)
		if err1 != nil || err2 != nil {
			// 库内异常数据不阻断新建
			s.logger.Warn("班次时段数据异常，跳过冲突检测",
				zap.String("shift_id", existing[i].ShiftID))
			continue
		}
		if clockIntervalsOverlap(splitIntervals(start, end), splitIntervals(es, ee)) {
			return nil, ErrShiftOverlap
		}
	}

	shift := &model.Shift{
		UserID:    req.UserID,
		StartTime: formatClock(start),
		EndTime:   formatClock(end),
		ClientID:  req.ClientID,
	}
	if err := s.repo.Shift.Create(ctx, shift); err != nil {
		s.logger.Error("创建班次失败", zap.String("user_id", req.UserID), zap.Error(err))
		return nil, err
	}
	return shiftToResponse(shift), nil
}

func (s *shiftService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Shift.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrShiftNotFound
		}
		s.logger.Error("查询班次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.Shift.Delete(ctx, id); err != nil {
		s.logger.Error("删除班次失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func shiftToResponse(shift *model.Shift) *dto.ShiftResponse {
	resp := &dto.ShiftResponse{
		ID:        shift.ShiftID,
		UserID:    shift.UserID,
		StartTime: shift.StartTime,
		EndTime:   shift.EndTime,
	}
	if shift.Client != nil {
		resp.Client = &dto.ClientBrief{
			ID:        shift.Client.ClientID,
			TradeName: shift.Client.TradeName,
		}
	}
	return resp
}
