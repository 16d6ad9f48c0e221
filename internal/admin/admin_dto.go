package admin

import "time"

type LoginRequest struct {
	Username string `json:"username" binding:"required,max=100"`
	Password string `json:"password" binding:"required,max=72"`
}

type AdminSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type AdminResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

type LoginResponse struct {
	Admin       AdminSummary `json:"admin"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

func mapToResponse(a *Admin) AdminResponse {
	return AdminResponse{
		ID:          a.ID.String(),
		Username:    a.Username,
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
	}
}
