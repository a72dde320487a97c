package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/edurede/school-registry/internal/transport"
	"github.com/edurede/school-registry/pkg/logger"
)

type ServiceAPI interface {
	Register(dto RegisterDTO) error
	Authenticate(dto LoginDTO) (TokenResponse, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	Gate    *Gate
}

func NewHandler(svc ServiceAPI, gate *Gate) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
		Gate:        gate,
	}
}

// Register handles POST /register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.Register(dto); err != nil {
		h.Logger.Error("registration failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "user registered successfully",
	})
}

// Login handles POST /login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tokens, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "email", dto.Email, "error", err)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, tokens)
}

// AuthMiddleware runs the gate on the raw authorization header and stores the
// resulting identity in the request context. Handlers behind it can trust
// IdentityFromContext.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := h.Gate.Authenticate(r.Header.Get("Authorization"))
		if err != nil {
			h.WriteAppError(w, err)
			return
		}

		ctx := ContextWithIdentity(r.Context(), ident)
		ctx = logger.With(ctx, "user_id", ident.UserID, "role", string(ident.Role))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
