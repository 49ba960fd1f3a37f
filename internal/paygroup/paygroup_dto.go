package paygroup

type CreatePayGroupRequest struct {
	CompanyID    string  `json:"company_id" binding:"required,uuid"`
	Name         string  `json:"name" binding:"required"`
	Currency     string  `json:"currency" binding:"required,len=3"`
	Frequency    string  `json:"frequency" binding:"required,oneof=weekly biweekly monthly"`
	ExchangeRate float64 `json:"exchange_rate"`
	IsDefault    bool    `json:"is_default"`
}

type UpdatePayGroupRequest struct {
	Name         string  `json:"name" binding:"required"`
	Currency     string  `json:"currency" binding:"required,len=3"`
	Frequency    string  `json:"frequency" binding:"required,oneof=weekly biweekly monthly"`
	ExchangeRate float64 `json:"exchange_rate"`
	IsDefault    bool    `json:"is_default"`
}

type PayGroupResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	CompanyID      string  `json:"company_id"`
	Name           string  `json:"name"`
	Currency       string  `json:"currency"`
	Frequency      string  `json:"frequency"`
	ExchangeRate   float64 `json:"exchange_rate"`
	IsDefault      bool    `json:"is_default"`
}
