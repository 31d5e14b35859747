package model

// SystemConfig 系统配置表 — 对应 configuracoes_sistema（键值行）
// 考勤容差等阈值存为数字字符串；缺失或非法时引擎回退到内置默认值。
type SystemConfig struct {
	Key         string `gorm:"type:varchar(100);primaryKey" json:"key"`
	Value       string `gorm:"type:varchar(200);not null"   json:"value"`
	Description string `gorm:"type:varchar(300)"            json:"description,omitempty"`
	BaseModel
}

// TableName 指定表名
func (SystemConfig) TableName() string { return "configuracoes_sistema" }

// ── 容差配置键 ──
const (
	ConfigEntryGreenMinutes  = "entry_green_minutes"       // 入场绿色容差，默认 5
	ConfigEntryYellowMinutes = "entry_yellow_minutes"      // 入场黄色容差，默认 15
	ConfigExitTolerance      = "exit_tolerance_minutes"    // 离场容差，默认 10
	ConfigOvertimeLimit      = "excessive_overtime_minutes" // 加班上限，默认 120
	ConfigMinDurationMinutes = "min_duration_minutes"      // 记录最短时长，默认 60
	ConfigMaxDurationHours   = "max_duration_hours"        // 记录最长时长，默认 16
)
