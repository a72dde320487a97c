package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
)

// Role is the closed permission set attached to every user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleEdit  Role = "edit"
	RoleView  Role = "view"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEdit, RoleView:
		return true
	}
	return false
}

// Identity is the (user id, role) pair extracted from a validated bearer
// token. It is trusted for the remainder of request handling: the token is
// the sole source of truth for its validity window, so a role change or
// account deletion only takes effect once previously issued tokens expire.
type Identity struct {
	UserID int64
	Role   Role
}

// Claims is the signed token payload. The user id travels as a string claim
// and is converted to int64 exactly once, at the gate boundary.
type Claims struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TokenGenerator issues and verifies signed identity assertions.
type TokenGenerator interface {
	GenerateToken(userID int64, role Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type ctxKey string

const contextIdentityKey ctxKey = "identity"

func ContextWithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, contextIdentityKey, ident)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	ident, ok := ctx.Value(contextIdentityKey).(Identity)
	return ident, ok
}

// TokenResponse is the login response body.
type TokenResponse struct {
	Token string `json:"token"`
}
