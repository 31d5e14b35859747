package model

// Company 用工企业表 — 对应 empresas
type Company struct {
	CompanyID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"company_id"`
	TradeName string `gorm:"type:varchar(200);not null"                     json:"trade_name"`
	LegalName string `gorm:"type:varchar(200)"                              json:"legal_name,omitempty"`
	CNPJ      string `gorm:"type:varchar(14)"                               json:"cnpj,omitempty"` // 纯数字
	CEP       string `gorm:"type:varchar(8)"                                json:"cep,omitempty"`  // 纯数字
	Address   string `gorm:"type:varchar(300)"                              json:"address,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Company) TableName() string { return "empresas" }
