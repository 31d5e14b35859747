package model

// Shift 班次表 — 对应 usuario_turnos
// 开始/结束为墙钟时刻（"HH:MM"），结束可翻越午夜（如 22:00-05:00）。
type Shift struct {
	ShiftID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	UserID    string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	StartTime string  `gorm:"type:time;not null"                             json:"start_time"` // "08:00"
	EndTime   string  `gorm:"type:time;not null"                             json:"end_time"`   // "17:00"，可小于 start_time
	ClientID  *string `gorm:"type:uuid"                                      json:"client_id,omitempty"`
	BaseModel

	// 关联
	User   *User   `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Client *Client `gorm:"foreignKey:ClientID;references:ClientID"   json:"client,omitempty"`
}

// TableName 指定表名
func (Shift) TableName() string { return "usuario_turnos" }

// ClientLink 派驻链接表 — 对应 colaborador_clientes
// 同样携带班次墙钟时段，是班次匹配的第二数据来源（与 Shift 鸭子类型等价）。
type ClientLink struct {
	LinkID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"link_id"`
	UserID        string  `gorm:"type:uuid;not null;index"                       json:"user_id"`
	ClientID      string  `gorm:"type:uuid;not null"                             json:"client_id"`
	CompanyID     *string `gorm:"type:uuid"                                      json:"company_id,omitempty"`
	StartTime     string  `gorm:"type:time;not null"                             json:"start_time"`
	EndTime       string  `gorm:"type:time;not null"                             json:"end_time"`
	ContractValue *string `gorm:"type:numeric(12,2)"                             json:"contract_value,omitempty"`
	RentValue     *string `gorm:"type:numeric(12,2)"                             json:"rent_value,omitempty"`
	BonusValue    *string `gorm:"type:numeric(12,2)"                             json:"bonus_value,omitempty"`
	Allowance     *string `gorm:"type:numeric(12,2)"                             json:"allowance,omitempty"`
	MEI           bool    `gorm:"column:mei;not null;default:false"              json:"mei"`
	BaseModel

	// 关联
	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Client  *Client  `gorm:"foreignKey:ClientID;references:ClientID"   json:"client,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (ClientLink) TableName() string { return "colaborador_clientes" }
