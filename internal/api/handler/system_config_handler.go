package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// SystemConfigHandler 系统配置模块 HTTP 处理器
type SystemConfigHandler struct {
	configSvc service.SystemConfigService
}

// NewSystemConfigHandler 创建 SystemConfigHandler
func NewSystemConfigHandler(configSvc service.SystemConfigService) *SystemConfigHandler {
	return &SystemConfigHandler{configSvc: configSvc}
}

// List 配置列表
// GET /api/v1/system-config
func (h *SystemConfigHandler) List(c *gin.Context) {
	entries, err := h.configSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

// Get 获取单个配置项
// GET /api/v1/system-config/:key
func (h *SystemConfigHandler) Get(c *gin.Context) {
	entry, err := h.configSvc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, service.ErrConfigNotFound) {
			response.NotFound(c, 18001, "配置项不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, entry)
}

// Update 更新配置项（管理员）
// PUT /api/v1/system-config/:key
func (h *SystemConfigHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.configSvc.Update(c.Request.Context(), c.Param("key"), &req, callerID)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, entry)
}
