package auth

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/edurede/school-registry/internal"
)

// TokenValidator is the slice of the token codec the gate depends on.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Gate turns a raw authorization header into a trusted Identity. It never
// consults the credential store: the signed claims are authoritative until
// the token expires.
type Gate struct {
	tokens TokenValidator
	logger *slog.Logger
}

func NewGate(tokens TokenValidator, logger *slog.Logger) *Gate {
	return &Gate{
		tokens: tokens,
		logger: logger,
	}
}

// Authenticate validates the raw authorization header value. The header may
// carry the bare token or use the conventional "Bearer " prefix; both are
// accepted and normalized.
func (g *Gate) Authenticate(rawHeaderValue string) (Identity, error) {
	raw := strings.TrimSpace(rawHeaderValue)
	raw = strings.TrimPrefix(raw, "Bearer ")
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return Identity{}, internal.ErrMissingToken
	}

	claims, err := g.tokens.ValidateToken(raw)
	if err != nil {
		g.logger.Warn("token validation failed", "error", err)
		if appErr, ok := internal.IsAppError(err); ok {
			// the rejected token value travels back to the caller for
			// diagnostics; the logging middleware filters it from logs
			return Identity{}, appErr.WithDetails(map[string]string{"token": raw})
		}
		return Identity{}, internal.ErrInvalidToken
	}

	if claims.UserID == "" {
		return Identity{}, internal.ErrMalformedToken
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		g.logger.Warn("token carries non-numeric user id", "value", claims.UserID)
		return Identity{}, internal.ErrMalformedToken
	}

	return Identity{
		UserID: userID,
		Role:   Role(claims.Role),
	}, nil
}
