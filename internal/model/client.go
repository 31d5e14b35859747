package model

// Client 客户（派驻站点）表 — 对应 clientes
type Client struct {
	ClientID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"client_id"`
	TradeName string `gorm:"type:varchar(200);not null"                     json:"trade_name"`
	LegalName string `gorm:"type:varchar(200)"                              json:"legal_name,omitempty"`
	CNPJ      string `gorm:"type:varchar(14)"                               json:"cnpj,omitempty"` // 纯数字
	CEP       string `gorm:"type:varchar(8)"                                json:"cep,omitempty"`  // 纯数字
	Address   string `gorm:"type:varchar(300)"                              json:"address,omitempty"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel
}

// TableName 指定表名
func (Client) TableName() string { return "clientes" }
