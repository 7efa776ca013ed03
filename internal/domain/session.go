package domain

import "github.com/golang-jwt/jwt/v5"

// Perfis de acesso do dashboard
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleChef    = "chef"
)

// SessionContext é o escopo de sessão injetado explicitamente nos componentes
// que precisam dele (canal realtime, workflows), no lugar de estado global
type SessionContext struct {
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
	UserID   int    `json:"user_id"`
}

type Claims struct {
	UserID   int    `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"`
	jwt.RegisteredClaims
}

// Session monta o escopo de sessão a partir das claims do token
func (c *Claims) Session() SessionContext {
	return SessionContext{
		Role:     c.Role,
		BranchID: c.BranchID,
		UserID:   c.UserID,
	}
}
