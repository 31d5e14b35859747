package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	CPF       string  `json:"cpf"        binding:"required"`
	Email     string  `json:"email"      binding:"required,email"`
	Password  string  `json:"password"   binding:"required,min=8,max=30"`
	Role      string  `json:"role"       binding:"omitempty,oneof=admin gestor colaborador"`
	CompanyID *string `json:"company_id" binding:"omitempty,uuid"`
}

// UpdateUserRequest 更新用户信息请求
type UpdateUserRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Role      *string `json:"role"       binding:"omitempty,oneof=admin gestor colaborador"`
	CompanyID *string `json:"company_id" binding:"omitempty,uuid"`
}

// UpdateUserStatusRequest 更新用户状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending active inactive"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=pending active inactive"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	CPF       string        `json:"cpf"`
	Email     string        `json:"email"`
	Role      string        `json:"role"`
	Status    string        `json:"status"`
	Company   *CompanyBrief `json:"company,omitempty"`
	CreatedAt string        `json:"created_at"`
}
