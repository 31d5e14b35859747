package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportTimeRecords 导出月度考勤表
// GET /api/v1/export/time-records?month=2026-08&user_id=xxx
func (h *ExportHandler) ExportTimeRecords(c *gin.Context) {
	month := c.Query("month")
	if month == "" {
		response.BadRequest(c, 10001, "month 不能为空")
		return
	}

	buf, filename, err := h.exportSvc.ExportTimeRecords(c.Request.Context(), month, c.Query("user_id"))
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrExportInvalidMonth):
		response.BadRequest(c, 19001, "月份格式无效，应为 YYYY-MM")
	case errors.Is(err, service.ErrExportNoRecords):
		response.NotFound(c, 19002, "该月份无考勤记录")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
