package dto

// ── 通用响应与分页 ──

// UserBrief 用户简要信息（嵌入考勤/链接响应）
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	CPF  string `json:"cpf"`
}

// ClientBrief 客户简要信息
type ClientBrief struct {
	ID        string `json:"id"`
	TradeName string `json:"trade_name"`
}

// CompanyBrief 企业简要信息
type CompanyBrief struct {
	ID        string `json:"id"`
	TradeName string `json:"trade_name"`
}

// PaginationRequest 通用分页参数
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage 获取页码（含默认值）
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize 获取每页数量（含默认值）
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset 计算偏移量
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
