package dto

import (
	"time"

	"punchclock/backend/internal/model"
)

// ── 考勤记录模块 DTO ──

// CreateTimeRecordRequest 手工登记考勤记录请求
type CreateTimeRecordRequest struct {
	UserID        string     `json:"user_id"        binding:"required,uuid"`
	EntryAt       time.Time  `json:"entry_at"       binding:"required"`
	ExitAt        *time.Time `json:"exit_at"`
	ReferenceDate *string    `json:"reference_date" binding:"omitempty,datetime=2006-01-02"` // 缺省取入场当日
	EntryNote     string     `json:"entry_note"     binding:"omitempty,max=300"`
	ExitNote      string     `json:"exit_note"      binding:"omitempty,max=300"`
	ClientID      *string    `json:"client_id"      binding:"omitempty,uuid"`
	AllowOverlap  bool       `json:"allow_overlap"` // 管理员回溯修正时跳过重叠硬校验
}

// UpdateTimeRecordRequest 更新考勤记录请求
type UpdateTimeRecordRequest struct {
	EntryAt      *time.Time `json:"entry_at"`
	ExitAt       *time.Time `json:"exit_at"`
	EntryNote    *string    `json:"entry_note" binding:"omitempty,max=300"`
	ExitNote     *string    `json:"exit_note"  binding:"omitempty,max=300"`
	ClientID     *string    `json:"client_id"  binding:"omitempty,uuid"`
	AllowOverlap bool       `json:"allow_overlap"`
}

// TimeRecordListRequest 考勤记录列表查询参数
type TimeRecordListRequest struct {
	PaginationRequest
	UserID   string `form:"user_id"   binding:"omitempty,uuid"`
	DateFrom string `form:"date_from" binding:"omitempty,datetime=2006-01-02"`
	DateTo   string `form:"date_to"   binding:"omitempty,datetime=2006-01-02"`
}

// ToggleRequest 一键打卡请求。
// UserID 由处理器按调用方身份填充，不从请求体读取。
type ToggleRequest struct {
	UserID string `json:"-"`
	Note   string `json:"note" binding:"omitempty,max=300"` // 位置/里程等元数据
}

// ToggleResponse 一键打卡结果
type ToggleResponse struct {
	Action string             `json:"action"` // open | close
	Record TimeRecordResponse `json:"record"`
}

// StartPauseRequest 开始暂离请求
type StartPauseRequest struct {
	RecordID string     `json:"record_id" binding:"required,uuid"`
	StartAt  *time.Time `json:"start_at"` // 缺省取当前时间
	Note     string     `json:"note"      binding:"omitempty,max=300"`
}

// EndPauseRequest 结束暂离请求
type EndPauseRequest struct {
	PauseID string     `json:"pause_id" binding:"required,uuid"`
	EndAt   *time.Time `json:"end_at"` // 缺省取当前时间
	Note    string     `json:"note"    binding:"omitempty,max=300"`
}

// PauseResponse 暂离信息响应
type PauseResponse struct {
	ID       string     `json:"id"`
	RecordID string     `json:"record_id"`
	StartAt  time.Time  `json:"start_at"`
	EndAt    *time.Time `json:"end_at,omitempty"`
}

// TimeRecordResponse 考勤记录响应
type TimeRecordResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	User           *UserBrief       `json:"user,omitempty"`
	ReferenceDate  string           `json:"reference_date"`
	EntryAt        time.Time        `json:"entry_at"`
	ExitAt         *time.Time       `json:"exit_at,omitempty"`
	EntryNote      string           `json:"entry_note,omitempty"`
	ExitNote       string           `json:"exit_note,omitempty"`
	Client         *ClientBrief     `json:"client,omitempty"`
	EntryStatus    string           `json:"entry_status"`
	ExitStatus     string           `json:"exit_status"`
	CalcDetail     model.CalcDetail `json:"calc_detail"`
	BalanceMinutes *int             `json:"balance_minutes,omitempty"`
	Pauses         []PauseResponse  `json:"pauses,omitempty"`
}
