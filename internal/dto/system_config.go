package dto

// ── 系统配置模块 DTO ──

// UpdateSystemConfigRequest 更新配置项请求
type UpdateSystemConfigRequest struct {
	Value       string  `json:"value"       binding:"required,max=200"`
	Description *string `json:"description" binding:"omitempty,max=300"`
}

// SystemConfigResponse 配置项响应
type SystemConfigResponse struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
	UpdatedAt   string `json:"updated_at"`
}
