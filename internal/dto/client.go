package dto

// ── 客户/企业模块 DTO ──

// CreateClientRequest 创建客户请求
type CreateClientRequest struct {
	TradeName string `json:"trade_name" binding:"required,min=2,max=200"`
	LegalName string `json:"legal_name" binding:"omitempty,max=200"`
	CNPJ      string `json:"cnpj"       binding:"omitempty"`
	CEP       string `json:"cep"        binding:"omitempty"`
	Address   string `json:"address"    binding:"omitempty,max=300"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateClientRequest 更新客户请求
type UpdateClientRequest struct {
	TradeName *string `json:"trade_name" binding:"omitempty,min=2,max=200"`
	LegalName *string `json:"legal_name" binding:"omitempty,max=200"`
	CNPJ      *string `json:"cnpj"`
	CEP       *string `json:"cep"`
	Address   *string `json:"address"    binding:"omitempty,max=300"`
	IsActive  *bool   `json:"is_active"`
}

// ClientResponse 客户信息响应
type ClientResponse struct {
	ID        string `json:"id"`
	TradeName string `json:"trade_name"`
	LegalName string `json:"legal_name,omitempty"`
	CNPJ      string `json:"cnpj,omitempty"`
	CEP       string `json:"cep,omitempty"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// CreateCompanyRequest 创建企业请求
type CreateCompanyRequest struct {
	TradeName string `json:"trade_name" binding:"required,min=2,max=200"`
	LegalName string `json:"legal_name" binding:"omitempty,max=200"`
	CNPJ      string `json:"cnpj"       binding:"omitempty"`
	CEP       string `json:"cep"        binding:"omitempty"`
	Address   string `json:"address"    binding:"omitempty,max=300"`
	IsActive  *bool  `json:"is_active"`
}

// UpdateCompanyRequest 更新企业请求
type UpdateCompanyRequest struct {
	TradeName *string `json:"trade_name" binding:"omitempty,min=2,max=200"`
	LegalName *string `json:"legal_name" binding:"omitempty,max=200"`
	CNPJ      *string `json:"cnpj"`
	CEP       *string `json:"cep"`
	Address   *string `json:"address"    binding:"omitempty,max=300"`
	IsActive  *bool   `json:"is_active"`
}

// CompanyResponse 企业信息响应
type CompanyResponse struct {
	ID        string `json:"id"`
	TradeName string `json:"trade_name"`
	LegalName string `json:"legal_name,omitempty"`
	CNPJ      string `json:"cnpj,omitempty"`
	CEP       string `json:"cep,omitempty"`
	Address   string `json:"address,omitempty"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
