package handler

import "punchclock/backend/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth         *AuthHandler
	User         *UserHandler
	TimeRecord   *TimeRecordHandler
	Shift        *ShiftHandler
	ClientLink   *ClientLinkHandler
	Client       *ClientHandler
	Company      *CompanyHandler
	SystemConfig *SystemConfigHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(svc.Auth),
		User:         NewUserHandler(svc.User),
		TimeRecord:   NewTimeRecordHandler(svc.TimeRecord, svc.Punch, svc.Pause),
		Shift:        NewShiftHandler(svc.Shift),
		ClientLink:   NewClientLinkHandler(svc.ClientLink),
		Client:       NewClientHandler(svc.Client),
		Company:      NewCompanyHandler(svc.Company),
		SystemConfig: NewSystemConfigHandler(svc.SystemConfig),
		Export:       NewExportHandler(svc.Export),
	}
}
