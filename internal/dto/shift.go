package dto

// ── 班次模块 DTO ──

// CreateShiftRequest 创建班次请求
type CreateShiftRequest struct {
	UserID    string  `json:"user_id"    binding:"required,uuid"`
	StartTime string  `json:"start_time" binding:"required"` // "08:00"
	EndTime   string  `json:"end_time"   binding:"required"` // 可小于 start_time（跨午夜）
	ClientID  *string `json:"client_id"  binding:"omitempty,uuid"`
}

// ShiftResponse 班次信息响应
type ShiftResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	StartTime string       `json:"start_time"`
	EndTime   string       `json:"end_time"`
	Client    *ClientBrief `json:"client,omitempty"`
}
