package organization

type UpdateOrganizationRequest struct {
	Name    string `json:"name" binding:"required"`
	Country string `json:"country" binding:"required,len=2"`
}

type OrganizationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type CreateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country" binding:"required,len=2"`
	Currency string `json:"currency" binding:"required,len=3"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name" binding:"required"`
	Country  string `json:"country" binding:"required,len=2"`
	Currency string `json:"currency" binding:"required,len=3"`
}

type CompanyResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	Name           string `json:"name"`
	Country        string `json:"country"`
	Currency       string `json:"currency"`
}
