package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	pkgerrors "punchclock/backend/pkg/errors"
	"punchclock/backend/pkg/response"
)

// TimeRecordHandler 考勤记录模块 HTTP 处理器
// 覆盖手工登记、一键打卡与暂离三组操作
type TimeRecordHandler struct {
	recordSvc service.TimeRecordService
	punchSvc  service.PunchService
	pauseSvc  service.PauseService
}

// NewTimeRecordHandler 创建 TimeRecordHandler
func NewTimeRecordHandler(
	recordSvc service.TimeRecordService,
	punchSvc service.PunchService,
	pauseSvc service.PauseService,
) *TimeRecordHandler {
	return &TimeRecordHandler{
		recordSvc: recordSvc,
		punchSvc:  punchSvc,
		pauseSvc:  pauseSvc,
	}
}

// Create 手工登记考勤记录（管理员/管理者）
// POST /api/v1/time-records
func (h *TimeRecordHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateTimeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.recordSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, record)
}

// List 考勤记录列表
// GET /api/v1/time-records
func (h *TimeRecordHandler) List(c *gin.Context) {
	var req dto.TimeRecordListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	records, total, err := h.recordSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OKPage(c, records, total, req.GetPage(), req.GetPageSize())
}

// GetToday 获取某用户今日考勤
// GET /api/v1/time-records/today?user_id=xxx
func (h *TimeRecordHandler) GetToday(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		// 缺省查自己
		var ok bool
		userID, ok = MustGetUserID(c)
		if !ok {
			return
		}
	}

	record, err := h.recordSvc.GetToday(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, record)
}

// GetByID 获取考勤记录详情
// GET /api/v1/time-records/:id
func (h *TimeRecordHandler) GetByID(c *gin.Context) {
	record, err := h.recordSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, record)
}

// Update 更新考勤记录（管理员/管理者）
// PUT /api/v1/time-records/:id
func (h *TimeRecordHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTimeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	record, err := h.recordSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, record)
}

// Delete 删除考勤记录（管理员）
// DELETE /api/v1/time-records/:id
func (h *TimeRecordHandler) Delete(c *gin.Context) {
	if err := h.recordSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Toggle 一键打卡
// POST /api/v1/time-records/toggle
func (h *TimeRecordHandler) Toggle(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	// 打卡只对本人生效
	req.UserID = userID

	result, err := h.punchSvc.Toggle(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, result)
}

// StartPause 开始暂离
// POST /api/v1/time-records/pauses/start
func (h *TimeRecordHandler) StartPause(c *gin.Context) {
	var req dto.StartPauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pause, err := h.pauseSvc.Start(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, pause)
}

// EndPause 结束暂离
// POST /api/v1/time-records/pauses/end
func (h *TimeRecordHandler) EndPause(c *gin.Context) {
	var req dto.EndPauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	pause, err := h.pauseSvc.End(c.Request.Context(), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, pause)
}

// ListPauses 某记录的暂离列表
// GET /api/v1/time-records/:id/pauses
func (h *TimeRecordHandler) ListPauses(c *gin.Context) {
	pauses, err := h.pauseSvc.ListByRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, pauses)
}

func (h *TimeRecordHandler) handleError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, 13001, vErr.Reason)
	case errors.Is(err, service.ErrRecordOverlap):
		response.BadRequest(c, 13002, "该时段与已有考勤记录冲突")
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, 13003, "考勤记录不存在")
	case errors.Is(err, service.ErrPauseNotFound):
		response.NotFound(c, 13004, "暂离记录不存在")
	case errors.Is(err, service.ErrPauseAlreadyOpen):
		response.BadRequest(c, 13005, "该考勤记录已存在未结束的暂离")
	case errors.Is(err, service.ErrPauseAlreadyClosed):
		response.BadRequest(c, 13006, "该暂离已结束")
	case errors.Is(err, service.ErrPauseBeforeStart):
		response.BadRequest(c, 13007, "暂离结束时间不能早于开始时间")
	case errors.Is(err, pkgerrors.ErrConcurrentPause):
		response.Error(c, http.StatusConflict, 13009, "暂离状态已被其他操作修改，请重试")
	default:
		response.InternalError(c)
	}
}
