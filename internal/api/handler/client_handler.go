package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// ClientHandler 客户模块 HTTP 处理器
type ClientHandler struct {
	clientSvc service.ClientService
}

// NewClientHandler 创建 ClientHandler
func NewClientHandler(clientSvc service.ClientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

// Create 创建客户（管理员/管理者）
// POST /api/v1/clients
func (h *ClientHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	client, err := h.clientSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, client)
}

// List 客户列表
// GET /api/v1/clients?only_active=true
func (h *ClientHandler) List(c *gin.Context) {
	onlyActive := c.Query("only_active") == "true"

	clients, err := h.clientSvc.List(c.Request.Context(), onlyActive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, clients)
}

// GetByID 获取客户详情
// GET /api/v1/clients/:id
func (h *ClientHandler) GetByID(c *gin.Context) {
	client, err := h.clientSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, client)
}

// Update 更新客户（管理员/管理者）
// PUT /api/v1/clients/:id
func (h *ClientHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	client, err := h.clientSvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, client)
}

// Delete 删除客户（管理员，软删除）
// DELETE /api/v1/clients/:id
func (h *ClientHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.clientSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *ClientHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClientNotFound):
		response.NotFound(c, 16001, "客户不存在")
	default:
		response.InternalError(c)
	}
}
