package service

import (
	"time"

	"go.uber.org/zap"

	"punchclock/backend/config"
	"punchclock/backend/internal/repository"
	"punchclock/backend/pkg/jwt"
	"punchclock/backend/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	TimeRecord   TimeRecordService
	Punch        PunchService
	Pause        PauseService
	Shift        ShiftService
	ClientLink   ClientLinkService
	Client       ClientService
	Company      CompanyService
	SystemConfig SystemConfigService
	Export       ExportService
}

// NewService 创建 Service 聚合
// loc 为业务参考时区，墙钟换算全部以它为准
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	loc *time.Location,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:         NewUserService(repo, logger),
		TimeRecord:   NewTimeRecordService(repo, loc, logger),
		Punch:        NewPunchService(repo, loc, logger),
		Pause:        NewPauseService(repo, loc, logger),
		Shift:        NewShiftService(repo, logger),
		ClientLink:   NewClientLinkService(repo, logger),
		Client:       NewClientService(repo, logger),
		Company:      NewCompanyService(repo, logger),
		SystemConfig: NewSystemConfigService(repo, logger),
		Export:       NewExportService(repo, loc, logger),
	}
}
