package service

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/model"
	"punchclock/backend/internal/repository"
)

// ── 系统配置模块业务错误 ──

var (
	ErrConfigNotFound = errors.New("配置项不存在")
)

// ── 容差默认值 ──
// 配置行缺失或取值非法时引擎回退到这些值，同时输出告警日志，
// 保证分类不中断的前提下让配置漂移可被观测。
const (
	defaultEntryGreen    = 5
	defaultEntryYellow   = 15
	defaultExitTolerance = 10
	defaultOvertimeLimit = 120
	defaultMinDuration   = 60 // 分钟
	defaultMaxDuration   = 16 // 小时
)

// SystemConfigService 系统配置业务接口
type SystemConfigService interface {
	List(ctx context.Context) ([]dto.SystemConfigResponse, error)
	Get(ctx context.Context, key string) (*dto.SystemConfigResponse, error)
	Update(ctx context.Context, key string, req *dto.UpdateSystemConfigRequest, callerID string) (*dto.SystemConfigResponse, error)
	// Tolerances 组装考勤容差配置（含默认值回退）
	Tolerances(ctx context.Context) ToleranceConfig
}

type systemConfigService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSystemConfigService 创建 SystemConfigService 实例
func NewSystemConfigService(repo *repository.Repository, logger *zap.Logger) SystemConfigService {
	return &systemConfigService{repo: repo, logger: logger}
}

func (s *systemConfigService) List(ctx context.Context) ([]dto.SystemConfigResponse, error) {
	entries, err := s.repo.SystemConfig.List(ctx)
	if err != nil {
		s.logger.Error("查询配置列表失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.SystemConfigResponse, 0, len(entries))
	for i := range entries {
		result = append(result, *toSystemConfigResponse(&entries[i]))
	}
	return result, nil
}

func (s *systemConfigService) Get(ctx context.Context, key string) (*dto.SystemConfigResponse, error) {
	entry, err := s.repo.SystemConfig.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConfigNotFound
		}
		s.logger.Error("查询配置项失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return toSystemConfigResponse(entry), nil
}

func (s *systemConfigService) Update(ctx context.Context, key string, req *dto.UpdateSystemConfigRequest, callerID string) (*dto.SystemConfigResponse, error) {
	entry := &model.SystemConfig{
		Key:   key,
		Value: req.Value,
	}
	if req.Description != nil {
		entry.Description = *req.Description
	}
	entry.UpdatedBy = &callerID

	if err := s.repo.SystemConfig.Upsert(ctx, entry); err != nil {
		s.logger.Error("更新配置项失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return toSystemConfigResponse(entry), nil
}

func (s *systemConfigService) Tolerances(ctx context.Context) ToleranceConfig {
	return readTolerances(ctx, s.repo, s.logger)
}

func toSystemConfigResponse(entry *model.SystemConfig) *dto.SystemConfigResponse {
	return &dto.SystemConfigResponse{
		Key:         entry.Key,
		Value:       entry.Value,
		Description: entry.Description,
		UpdatedAt:   entry.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ── 容差读取（考勤服务共用）──

// readConfigInt 读取数值配置项；缺失、非法或查询失败一律回退默认值并告警。
// 配置读取问题不向上传播，分类流程不因配置故障中断。
func readConfigInt(ctx context.Context, repo *repository.Repository, logger *zap.Logger, key string, def int) int {
	entry, err := repo.SystemConfig.Get(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("配置缺失，使用默认值", zap.String("key", key), zap.Int("default", def))
		} else {
			logger.Warn("配置查询失败，使用默认值", zap.String("key", key), zap.Int("default", def), zap.Error(err))
		}
		return def
	}

	n, err := strconv.Atoi(entry.Value)
	if err != nil || n < 0 {
		logger.Warn("配置值无效，使用默认值",
			zap.String("key", key),
			zap.String("value", entry.Value),
			zap.Int("default", def),
		)
		return def
	}
	return n
}

// readTolerances 组装容差配置，逐键回退默认值。
// 每次分类即时读取，不做进程内缓存（配置变更频率低，读放大可接受）。
func readTolerances(ctx context.Context, repo *repository.Repository, logger *zap.Logger) ToleranceConfig {
	return ToleranceConfig{
		EntryGreen:    readConfigInt(ctx, repo, logger, model.ConfigEntryGreenMinutes, defaultEntryGreen),
		EntryYellow:   readConfigInt(ctx, repo, logger, model.ConfigEntryYellowMinutes, defaultEntryYellow),
		ExitTolerance: readConfigInt(ctx, repo, logger, model.ConfigExitTolerance, defaultExitTolerance),
		OvertimeLimit: readConfigInt(ctx, repo, logger, model.ConfigOvertimeLimit, defaultOvertimeLimit),
	}
}

// readDurationBounds 读取记录时长上下限（分钟 / 小时）。
func readDurationBounds(ctx context.Context, repo *repository.Repository, logger *zap.Logger) (minMinutes, maxHours int) {
	minMinutes = readConfigInt(ctx, repo, logger, model.ConfigMinDurationMinutes, defaultMinDuration)
	maxHours = readConfigInt(ctx, repo, logger, model.ConfigMaxDurationHours, defaultMaxDuration)
	return minMinutes, maxHours
}
