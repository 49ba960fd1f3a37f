package grant

type CreateGrantRequest struct {
	ScopeKey  string  `json:"scope_key" binding:"required"`
	Effect    string  `json:"effect" binding:"required,oneof=allow deny"`
	CompanyID *string `json:"company_id"`
	UserID    *string `json:"user_id"`
	RoleID    *string `json:"role_id"`
}

type UpdateGrantRequest struct {
	ScopeKey  string  `json:"scope_key" binding:"required"`
	Effect    string  `json:"effect" binding:"required,oneof=allow deny"`
	CompanyID *string `json:"company_id"`
	UserID    *string `json:"user_id"`
	RoleID    *string `json:"role_id"`
}

type GrantResponse struct {
	ID             string  `json:"id"`
	OrganizationID string  `json:"organization_id"`
	ScopeType      string  `json:"scope_type"`
	ScopeKey       string  `json:"scope_key"`
	Effect         string  `json:"effect"`
	CompanyID      *string `json:"company_id,omitempty"`
	UserID         *string `json:"user_id,omitempty"`
	RoleID         *string `json:"role_id,omitempty"`
	CreatedBy      string  `json:"created_by"`
}

type CheckRequest struct {
	UserID        string `json:"user_id" binding:"required,uuid"`
	CompanyID     string `json:"company_id"`
	PermissionKey string `json:"permission_key" binding:"required"`
}

type CheckResponse struct {
	Decision string `json:"decision"`
	Allowed  bool   `json:"allowed"`
}
