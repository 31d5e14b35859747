package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ── 考勤状态枚举 ──

// 入场状态
const (
	EntryOnTime       = "on_time"      // diff ≤ 绿色容差
	EntryWarning      = "warning"      // 绿色与黄色容差之间
	EntryLate         = "late"         // diff > 黄色容差
	EntryUnclassified = "unclassified" // 无可匹配班次
)

// 离场状态
const (
	ExitOnTime            = "on_time"
	ExitWarning           = "warning"           // 超出离场容差
	ExitEarlyDeparture    = "early_departure"   // 提前离场超过 10 分钟
	ExitExcessiveOvertime = "excessive_overtime" // 超出加班上限
	ExitUnclassified      = "unclassified"
)

// CalcDetail 考勤判定明细 — JSONB 列自定义类型
// 记录分类/结算所用的全部输入，便于事后核对争议打卡。
type CalcDetail struct {
	ShiftID          *string `json:"shift_id,omitempty"`      // 匹配到的班次（无则为空）
	ShiftStart       string  `json:"shift_start,omitempty"`   // "HH:MM"
	ShiftEnd         string  `json:"shift_end,omitempty"`     // "HH:MM"
	EntryDiffMinutes *int    `json:"entry_diff_minutes,omitempty"`
	ExitDiffMinutes  *int    `json:"exit_diff_minutes,omitempty"`
	EntryGreen       int     `json:"entry_green"`
	EntryYellow      int     `json:"entry_yellow"`
	ExitTolerance    int     `json:"exit_tolerance"`
	OvertimeLimit    int     `json:"overtime_limit"`
	PauseMinutes     int     `json:"pause_minutes"`
	WorkedDuration   string  `json:"worked_duration,omitempty"` // "HH:MM"，绝对值
}

// Scan 将 JSONB 文本解析为 CalcDetail。
func (d *CalcDetail) Scan(src interface{}) error {
	if src == nil {
		*d = CalcDetail{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("CalcDetail.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, d)
}

// Value 将 CalcDetail 序列化为 JSONB 文本。
func (d CalcDetail) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// TimeRecord 考勤记录表 — 对应 registros_ponto
// 一条记录代表某用户在某参考日的一次上/下班打卡周期。
type TimeRecord struct {
	RecordID       string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"record_id"`
	UserID         string     `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ReferenceDate  time.Time  `gorm:"type:date;not null;index"                       json:"reference_date"`
	EntryAt        time.Time  `gorm:"not null"                                       json:"entry_at"`
	ExitAt         *time.Time `json:"exit_at,omitempty"` // 为空表示打卡周期未关闭
	EntryNote      string     `gorm:"type:varchar(300)"                              json:"entry_note,omitempty"` // 位置/里程等元数据，引擎不解析
	ExitNote       string     `gorm:"type:varchar(300)"                              json:"exit_note,omitempty"`
	ClientID       *string    `gorm:"type:uuid"                                      json:"client_id,omitempty"` // 站点归属（缺省取匹配班次的客户）
	EntryStatus    string     `gorm:"type:varchar(20);not null;default:'unclassified'" json:"entry_status"`
	ExitStatus     string     `gorm:"type:varchar(20);not null;default:'unclassified'" json:"exit_status"`
	CalcDetail     CalcDetail `gorm:"type:jsonb"                                     json:"calc_detail"`
	BalanceMinutes *int       `json:"balance_minutes,omitempty"` // 离场未知时为空
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"     json:"user,omitempty"`
	Client *Client `gorm:"foreignKey:ClientID;references:ClientID" json:"client,omitempty"`
	Pauses []Pause `gorm:"foreignKey:RecordID"                     json:"pauses,omitempty"`
}

// TableName 指定表名
func (TimeRecord) TableName() string { return "registros_ponto" }

// IsOpen 记录是否仍处于打开状态（未打下班卡）
func (r *TimeRecord) IsOpen() bool { return r.ExitAt == nil }

// Pause 暂离表 — 对应 pausas
// 一条暂离是所属考勤记录内的离岗子区间，结算时从实际工时中扣除。
type Pause struct {
	PauseID   string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"pause_id"`
	RecordID  string     `gorm:"type:uuid;not null;index"                       json:"record_id"`
	StartAt   time.Time  `gorm:"not null"                                       json:"start_at"`
	EndAt     *time.Time `json:"end_at,omitempty"` // 为空表示暂离进行中
	StartNote string     `gorm:"type:varchar(300)"                              json:"start_note,omitempty"`
	EndNote   string     `gorm:"type:varchar(300)"                              json:"end_note,omitempty"`
	BaseModel

	// 关联
	Record *TimeRecord `gorm:"foreignKey:RecordID;references:RecordID" json:"record,omitempty"`
}

// TableName 指定表名
func (Pause) TableName() string { return "pausas" }
