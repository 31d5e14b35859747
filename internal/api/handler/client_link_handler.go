package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// ClientLinkHandler 派驻链接模块 HTTP 处理器
type ClientLinkHandler struct {
	linkSvc service.ClientLinkService
}

// NewClientLinkHandler 创建 ClientLinkHandler
func NewClientLinkHandler(linkSvc service.ClientLinkService) *ClientLinkHandler {
	return &ClientLinkHandler{linkSvc: linkSvc}
}

// Sync 重建某用户的派驻链接集合（管理员/管理者）
// PUT /api/v1/client-links/user/:userId
func (h *ClientLinkHandler) Sync(c *gin.Context) {
	var req dto.SyncClientLinksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	links, err := h.linkSvc.SyncLinks(c.Request.Context(), c.Param("userId"), &req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, links)
}

// ListByUser 某用户的派驻链接
// GET /api/v1/client-links/user/:userId
func (h *ClientLinkHandler) ListByUser(c *gin.Context) {
	links, err := h.linkSvc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, links)
}

// ListByClient 某客户的派驻链接
// GET /api/v1/client-links/client/:clientId
func (h *ClientLinkHandler) ListByClient(c *gin.Context) {
	links, err := h.linkSvc.ListByClient(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, links)
}

func (h *ClientLinkHandler) handleError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		response.BadRequest(c, 15001, vErr.Reason)
	default:
		response.InternalError(c)
	}
}
