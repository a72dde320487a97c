package school

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/auth"
	"github.com/edurede/school-registry/internal/transport"
)

type ServiceAPI interface {
	ListSchools() ([]SchoolResponse, error)
	CreateSchool(ident auth.Identity, dto CreateSchoolDTO) (*School, error)
	UpdateSchool(ident auth.Identity, targetID int64, dto UpdateSchoolDTO) error
	DeleteSchool(ident auth.Identity, targetID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// ListSchools handles GET /escolas. Public, no identity required.
func (h *Handler) ListSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := h.Service.ListSchools()
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, schools)
}

// CreateSchool handles POST /escolas/adicionar.
func (h *Handler) CreateSchool(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateSchoolDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateSchool(ident, dto)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, CreateSchoolResponse{
		Message:  "school added successfully",
		SchoolID: created.ID,
	})
}

// UpdateSchool handles PUT /escolas/editar/{id}.
func (h *Handler) UpdateSchool(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	targetID, err := parseID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	var dto UpdateSchoolDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.Service.UpdateSchool(ident, targetID, dto); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "school updated successfully",
	})
}

// DeleteSchool handles DELETE /escolas/eliminar/{id}.
func (h *Handler) DeleteSchool(w http.ResponseWriter, r *http.Request) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	targetID, err := parseID(r)
	if err != nil {
		h.WriteAppError(w, err)
		return
	}

	if err := h.Service.DeleteSchool(ident, targetID); err != nil {
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "school deleted successfully",
	})
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	return id, nil
}
