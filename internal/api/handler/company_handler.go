package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"punchclock/backend/internal/dto"
	"punchclock/backend/internal/service"
	"punchclock/backend/pkg/response"
)

// CompanyHandler 企业模块 HTTP 处理器
type CompanyHandler struct {
	companySvc service.CompanyService
}

// NewCompanyHandler 创建 CompanyHandler
func NewCompanyHandler(companySvc service.CompanyService) *CompanyHandler {
	return &CompanyHandler{companySvc: companySvc}
}

// Create 创建企业（管理员）
// POST /api/v1/companies
func (h *CompanyHandler) Create(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Created(c, company)
}

// List 企业列表
// GET /api/v1/companies?only_active=true
func (h *CompanyHandler) List(c *gin.Context) {
	onlyActive := c.Query("only_active") == "true"

	companies, err := h.companySvc.List(c.Request.Context(), onlyActive)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, companies)
}

// GetByID 获取企业详情
// GET /api/v1/companies/:id
func (h *CompanyHandler) GetByID(c *gin.Context) {
	company, err := h.companySvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, company)
}

// Update 更新企业（管理员）
// PUT /api/v1/companies/:id
func (h *CompanyHandler) Update(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	company, err := h.companySvc.Update(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, company)
}

// Delete 删除企业（管理员，软删除）
// DELETE /api/v1/companies/:id
func (h *CompanyHandler) Delete(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.companySvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *CompanyHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCompanyNotFound):
		response.NotFound(c, 17001, "企业不存在")
	default:
		response.InternalError(c)
	}
}
