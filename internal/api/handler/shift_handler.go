package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// ShiftHandler 班次模块 HTTP 处理器
type ShiftHandler struct {
	shiftSvc service.ShiftService
}

// NewShiftHandler 创建 ShiftHandler
func NewShiftHandler(shiftSvc service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftSvc: shiftSvc}
}

// ListByUser 某用户的班次列表
// GET /api/v1/shifts/user/:userId
func (h *ShiftHandler) ListByUser(c *gin.Context) {
	shifts, err := h.shiftSvc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, shifts)
}

// Create 创建班次（管理员/管理者）
// POST /api/v1/shifts
func (h *ShiftHandler) Create(c *gin.Context) {
	var req dto.CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	shift, err := h.shiftSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, shift)
}

// Delete 删除班次（管理员/管理者）
// DELETE /api/v1/shifts/:id
func (h *ShiftHandler) Delete(c *gin.Context) {
	if err := h.shiftSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ShiftHandler) handleError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, 14001, vErr.Reason)
	case errors.Is(err, service.ErrShiftOverlap):
		response.BadRequest(c, 14002, "该时段与已有班次冲突")
	case errors.Is(err, service.ErrShiftNotFound):
		response.NotFound(c, 14003, "班次不存在")
	default:
		response.InternalError(c)
	}
}
