package dto

// RegisterRequest represents a new account registration
type RegisterRequest struct {
	Login    string `json:"login" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents login credentials. Login accepts either the
// account login or its email address.
type LoginRequest struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned from register and login. The refresh token is
// delivered separately as an HTTP-only cookie and never appears here.
type AuthResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
	Login       string `json:"login"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}

// RefreshResponse is returned from a successful token refresh
type RefreshResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"accessToken"`
}

// CheckAuthResponse echoes the authenticated identity from the access token
type CheckAuthResponse struct {
	Success bool     `json:"success"`
	User    AuthUser `json:"user"`
}

// AuthUser is the identity block inside CheckAuthResponse
type AuthUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
