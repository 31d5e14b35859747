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

// ── 考勤记录模块业务错误 ──

var (
	ErrRecordNotFound = errors.New("考勤记录不存在")
	ErrRecordOverlap  = errors.New("该时段与已有考勤记录冲突")
)

// ValidationError 记录校验失败，Reason 为对调用方可见的具体原因。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// TimeRecordService 考勤记录业务接口
type TimeRecordService interface {
	// Create 手工登记：校验 → 班次匹配 → 状态分类/结算 → 入库
	Create(ctx context.Context, req *dto.CreateTimeRecordRequest, callerID string) (*dto.TimeRecordResponse, error)
	// Update 更新记录并重走完整判定管线
	Update(ctx context.Context, id string, req *dto.UpdateTimeRecordRequest, callerID string) (*dto.TimeRecordResponse, error)
	GetByID(ctx context.Context, id string) (*dto.TimeRecordResponse, error)
	List(ctx context.Context, req *dto.TimeRecordListRequest) ([]dto.TimeRecordResponse, int64, error)
	// GetToday 返回某用户今日记录；无记录时返回 nil（非错误）
	GetToday(ctx context.Context, userID string) (*dto.TimeRecordResponse, error)
	Delete(ctx context.Context, id string) error
}

type timeRecordService struct {
	repo   *repository.Repository
	eval   *recordEvaluator
	logger *zap.Logger
}

// NewTimeRecordService 创建 TimeRecordService 实例
func NewTimeRecordService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) TimeRecordService {
	return &timeRecordService{
		repo:   repo,
		eval:   &recordEvaluator{repo: repo, logger: logger, loc: loc},
		logger: logger,
	}
}

// ────────────────────── Create ──────────────────────

func (s *timeRecordService) Create(ctx context.Context, req *dto.CreateTimeRecordRequest, callerID string) (*dto.TimeRecordResponse, error) {
	refDate, err := s.resolveReferenceDate(req.ReferenceDate, req.EntryAt)
	if err != nil {
		return nil, err
	}

	record := &model.TimeRecord{
		UserID:        req.UserID,
		ReferenceDate: refDate,
		EntryAt:       req.EntryAt,
		ExitAt:        req.ExitAt,
		EntryNote:     req.EntryNote,
		ExitNote:      req.ExitNote,
		ClientID:      req.ClientID,
	}
	record.CreatedBy = &callerID
	record.UpdatedBy = &callerID

	if err := s.validate(ctx, record, "", req.AllowOverlap); err != nil {
		return nil, err
	}

	pauseMinutes := 0 // 新记录尚无暂离
	if err := s.eval.apply(ctx, record, pauseMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.TimeRecord.Create(ctx, record); err != nil {
		s.logger.Error("创建考勤记录失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(record), nil
}

// ────────────────────── Update ──────────────────────

func (s *timeRecordService) Update(ctx context.Context, id string, req *dto.UpdateTimeRecordRequest, callerID string) (*dto.TimeRecordResponse, error) {
	record, err := s.repo.TimeRecord.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.EntryAt != nil {
		record.EntryAt = *req.EntryAt
	}
	if req.ExitAt != nil {
		record.ExitAt = req.ExitAt
	}
	if req.EntryNote != nil {
		record.EntryNote = *req.EntryNote
	}
	if req.ExitNote != nil {
		record.ExitNote = *req.ExitNote
	}
	if req.ClientID != nil {
		record.ClientID = req.ClientID
	}
	record.UpdatedBy = &callerID

	if err := s.validate(ctx, record, record.RecordID, req.AllowOverlap); err != nil {
		return nil, err
	}

	pauseMinutes, err := s.eval.closedPauseMinutes(ctx, record.RecordID)
	if err != nil {
		return nil, err
	}
	if err := s.eval.apply(ctx, record, pauseMinutes); err != nil {
		return nil, err
	}

	if err := s.repo.TimeRecord.Update(ctx, record); err != nil {
		s.logger.Error("更新考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(record), nil
}

// ────────────────────── 查询 ──────────────────────

func (s *timeRecordService) GetByID(ctx context.Context, id string) (*dto.TimeRecordResponse, error) {
	record, err := s.repo.TimeRecord.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return s.toResponse(record), nil
}

func (s *timeRecordService) List(ctx context.Context, req *dto.TimeRecordListRequest) ([]dto.TimeRecordResponse, int64, error) {
	filter := repository.TimeRecordFilter{UserID: req.UserID}
	if req.DateFrom != "" {
		t, err := time.Parse("2006-01-02", req.DateFrom)
		if err != nil {
			return nil, 0, &ValidationError{Reason: "起始日期格式无效"}
		}
		filter.DateFrom = &t
	}
	if req.DateTo != "" {
		t, err := time.Parse("2006-01-02", req.DateTo)
		if err != nil {
			return nil, 0, &ValidationError{Reason: "截止日期格式无效"}
		}
		filter.DateTo = &t
	}

	records, total, err := s.repo.TimeRecord.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("查询考勤记录列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.TimeRecordResponse, 0, len(records))
	for i := range records {
		result = append(result, *s.toResponse(&records[i]))
	}
	return result, total, nil
}

func (s *timeRecordService) GetToday(ctx context.Context, userID string) (*dto.TimeRecordResponse, error) {
	today := time.Now().In(s.eval.loc)
	record, err := s.repo.TimeRecord.FindByUserOnDate(ctx, userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 今日无记录不是错误；调用方按空处理
			return nil, nil
		}
		s.logger.Error("查询今日考勤失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return s.toResponse(record), nil
}

func (s *timeRecordService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.TimeRecord.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordNotFound
		}
		s.logger.Error("查询考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if err := s.repo.TimeRecord.Delete(ctx, id); err != nil {
		s.logger.Error("删除考勤记录失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ── 内部辅助方法 ──

// validate 按固定顺序执行校验：时序 → 最短时长 → 最长时长 → 重叠。
// excludeID 非空时重叠检测排除记录自身（更新场景）。
// 重叠默认拒绝；allowOverlap 为 true（管理员回溯修正）时降级为告警日志。
func (s *timeRecordService) validate(ctx context.Context, record *model.TimeRecord, excludeID string, allowOverlap bool) error {
	if v := validateTimeOrder(record.EntryAt, record.ExitAt); !v.OK {
		return &ValidationError{Reason: v.Reason}
	}

	minMinutes, maxHours := readDurationBounds(ctx, s.repo, s.logger)
	if v := validateMinDuration(record.EntryAt, record.ExitAt, minMinutes); !v.OK {
		return &ValidationError{Reason: v.Reason}
	}
	if v := validateMaxDuration(record.EntryAt, record.ExitAt, maxHours); !v.OK {
		return &ValidationError{Reason: v.Reason}
	}

	existing, err := s.repo.TimeRecord.ListByUserOnDate(ctx, record.UserID, record.ReferenceDate)
	if err != nil {
		s.logger.Error("查询同日考勤记录失败", zap.String("user_id", record.UserID), zap.Error(err))
		return err
	}
	if excludeID != "" {
		filtered := existing[:0]
		for i := range existing {
			if existing[i].RecordID != excludeID {
				filtered = append(filtered, existing[i])
			}
		}
		existing = filtered
	}

	if result := checkOverlap(record.EntryAt, record.ExitAt, existing); result.HasOverlap {
		if !allowOverlap {
			return ErrRecordOverlap
		}
		s.logger.Warn("重叠校验被跳过",
			zap.String("user_id", record.UserID),
			zap.String("conflict_record_id", result.Conflict.RecordID),
		)
	}
	return nil
}

// resolveReferenceDate 解析参考日；缺省取入场时间在业务时区下的日历日。
func (s *timeRecordService) resolveReferenceDate(raw *string, entry time.Time) (time.Time, error) {
	if raw != nil && *raw != "" {
		t, err := time.Parse("2006-01-02", *raw)
		if err != nil {
			return time.Time{}, &ValidationError{Reason: "参考日格式无效"}
		}
		return t, nil
	}
	lt := entry.In(s.eval.loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (s *timeRecordService) toResponse(record *model.TimeRecord) *dto.TimeRecordResponse {
	return timeRecordToResponse(record)
}

// timeRecordToResponse 模型到响应的转换，打卡/暂离模块共用
func timeRecordToResponse(record *model.TimeRecord) *dto.TimeRecordResponse {
	resp := &dto.TimeRecordResponse{
		ID:             record.RecordID,
		UserID:         record.UserID,
		ReferenceDate:  record.ReferenceDate.Format("2006-01-02"),
		EntryAt:        record.EntryAt,
		ExitAt:         record.ExitAt,
		EntryNote:      record.EntryNote,
		ExitNote:       record.ExitNote,
		EntryStatus:    record.EntryStatus,
		ExitStatus:     record.ExitStatus,
		CalcDetail:     record.CalcDetail,
		BalanceMinutes: record.BalanceMinutes,
	}

	if record.User != nil {
		resp.User = &dto.UserBrief{
			ID:   record.User.UserID,
			Name: record.User.Name,
			CPF:  record.User.CPF,
		}
	}
	if record.Client != nil {
		resp.Client = &dto.ClientBrief{
			ID:        record.Client.ClientID,
			TradeName: record.Client.TradeName,
		}
	}
	for i := range record.Pauses {
		p := &record.Pauses[i]
		resp.Pauses = append(resp.Pauses, dto.PauseResponse{
			ID:       p.PauseID,
			RecordID: p.RecordID,
			StartAt:  p.StartAt,
			EndAt:    p.EndAt,
		})
	}
	return resp
}
