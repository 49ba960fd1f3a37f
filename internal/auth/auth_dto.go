package auth

type RegisterRequest struct {
	OrganizationID string `json:"organization_id" binding:"required,uuid"`
	CompanyID      string `json:"company_id" binding:"omitempty,uuid"`
	Email          string `json:"email" binding:"required,email"`
	Name           string `json:"name" binding:"required"`
	Password       string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type AuthResponse struct {
	ID             string   `json:"id"`
	OrganizationID string   `json:"organization_id"`
	CompanyID      string   `json:"company_id,omitempty"`
	Email          string   `json:"email"`
	Name           string   `json:"name"`
	Role           string   `json:"role"`
	RoleIDs        []string `json:"role_ids,omitempty"`
}

type TokenPairResponse struct {
	User         AuthResponse `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}
