package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// AppMetadata é o bloco app_metadata emitido pelo Supabase Auth
type AppMetadata struct {
	Role     string `json:"role,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// Claims são as claims do access token do Supabase
type Claims struct {
	Email       string      `json:"email"`
	Role        string      `json:"role"`
	AppMetadata AppMetadata `json:"app_metadata"`
	jwt.RegisteredClaims
}

// UserID é o sub do token (uuid do usuário em auth.users)
func (c *Claims) UserID() string {
	return c.Subject
}

// AppRole é o papel da aplicação (admin, gestor, vendedor)
func (c *Claims) AppRole() string {
	return c.AppMetadata.Role
}
