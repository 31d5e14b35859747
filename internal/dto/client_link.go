package dto

// ── 派驻链接模块 DTO ──

// SyncClientLinksRequest 重建某用户派驻链接集合请求（全删全插）
type SyncClientLinksRequest struct {
	Links []ClientLinkInput `json:"links" binding:"dive"`
}

// ClientLinkInput 单条派驻链接输入
type ClientLinkInput struct {
	ClientID      string  `json:"client_id"      binding:"required,uuid"`
	CompanyID     *string `json:"company_id"     binding:"omitempty,uuid"`
	StartTime     string  `json:"start_time"     binding:"required"`
	EndTime       string  `json:"end_time"       binding:"required"`
	ContractValue *string `json:"contract_value"`
	RentValue     *string `json:"rent_value"`
	BonusValue    *string `json:"bonus_value"`
	Allowance     *string `json:"allowance"`
	MEI           bool    `json:"mei"`
}

// ClientLinkResponse 派驻链接响应
type ClientLinkResponse struct {
	ID            string        `json:"id"`
	UserID        string        `json:"user_id"`
	User          *UserBrief    `json:"user,omitempty"`
	Client        *ClientBrief  `json:"client,omitempty"`
	Company       *CompanyBrief `json:"company,omitempty"`
	StartTime     string        `json:"start_time"`
	EndTime       string        `json:"end_time"`
	ContractValue *string       `json:"contract_value,omitempty"`
	RentValue     *string       `json:"rent_value,omitempty"`
	BonusValue    *string       `json:"bonus_value,omitempty"`
	Allowance     *string       `json:"allowance,omitempty"`
	MEI           bool          `json:"mei"`
}
