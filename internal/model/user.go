package model

// User 用户表 — 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	CPF          string  `gorm:"type:varchar(11);not null;uniqueIndex"          json:"cpf"` // 纯数字，登录标识
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'colaborador'" json:"role"` // admin | gestor | colaborador
	Status       string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"` // pending | active | inactive
	CompanyID    *string `gorm:"type:uuid"                                      json:"company_id,omitempty"`
	SoftDeleteModel

	// 关联
	Company *Company `gorm:"foreignKey:CompanyID;references:CompanyID" json:"company,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// ── 角色 ──
const (
	RoleAdmin       = "admin"
	RoleGestor      = "gestor"
	RoleColaborador = "colaborador"
)

// ── 账号状态 ──
const (
	UserStatusPending  = "pending"  // 注册后待管理员审核
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)
