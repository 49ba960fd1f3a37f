package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	EmployeeNumber string  `json:"employee_number"`
	CompanyID      string  `json:"company_id" binding:"required,uuid"`
	Classification string  `json:"classification" binding:"required,oneof=local expatriate"`
	PayType        string  `json:"pay_type" binding:"required,oneof=hourly piece_rate salary"`
	PayRate        float64 `json:"pay_rate" binding:"required,gt=0"`
	Country        string  `json:"country" binding:"required,len=2"`
}

type UpdateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	EmployeeNumber string  `json:"employee_number" binding:"required"`
	Classification string  `json:"classification" binding:"required,oneof=local expatriate"`
	PayType        string  `json:"pay_type" binding:"required,oneof=hourly piece_rate salary"`
	PayRate        float64 `json:"pay_rate" binding:"required,gt=0"`
	Country        string  `json:"country" binding:"required,len=2"`
	Active         *bool   `json:"active" binding:"required"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	CompanyID      string  `json:"company_id"`
	PayGroupID     string  `json:"pay_group_id,omitempty"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	EmployeeNumber string  `json:"employee_number"`
	Classification string  `json:"classification"`
	PayType        string  `json:"pay_type"`
	PayRate        float64 `json:"pay_rate"`
	Country        string  `json:"country"`
	Active         bool    `json:"active"`
}
