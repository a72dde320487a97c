package school

import (
	"log/slog"
	"time"

	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/auth"
	schoolDatamodel "github.com/edurede/school-registry/internal/core/datamodel/school"
)

type RepositoryAPI interface {
	GetAll() ([]*schoolDatamodel.School, error)
	GetByID(id int64) (*schoolDatamodel.School, error)
	Create(s *schoolDatamodel.School) error
	Update(s *schoolDatamodel.School) error
	Delete(id int64) error
}

type Service struct {
	repo   RepositoryAPI
	engine *auth.PolicyEngine
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, engine *auth.PolicyEngine, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		logger: logger,
	}
}

// ListSchools is the public read: no identity required.
func (s *Service) ListSchools() ([]SchoolResponse, error) {
	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list schools", err)
	}

	responses := make([]SchoolResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, SchoolResponse{
			ID:          row.ID,
			Name:        row.Name,
			Responsible: row.Responsible,
			Contact:     row.Contact,
			Address:     row.Address,
		})
	}
	return responses, nil
}

// CreateSchool inserts a new school owned by the caller. Admin and edit
// roles only.
func (s *Service) CreateSchool(ident auth.Identity, dto CreateSchoolDTO) (*School, error) {
	if err := s.engine.Authorize(ident, auth.ActionCreateSchool, nil); err != nil {
		return nil, err
	}

	if err := dto.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	row := &schoolDatamodel.School{
		Name:        dto.Name,
		Responsible: dto.Responsible,
		Contact:     dto.Contact,
		Address:     dto.Address,
		UserID:      ident.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(row); err != nil {
		return nil, internal.NewInternalError("failed to create school", err)
	}

	s.logger.Info("school created", "school_id", row.ID, "owner_id", ident.UserID)
	return FromDataModel(row), nil
}

// UpdateSchool applies a partial update to the target school. Existence is
// resolved before the ownership check so probing a nonexistent id reports
// not-found rather than forbidden.
func (s *Service) UpdateSchool(ident auth.Identity, targetID int64, dto UpdateSchoolDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(targetID)
	if err != nil {
		return internal.NewInternalError("failed to fetch school", err)
	}
	if existing == nil {
		return internal.ErrSchoolNotFound
	}

	if err := s.engine.Authorize(ident, auth.ActionUpdateSchool, &auth.Target{ID: existing.ID, OwnerID: existing.UserID}); err != nil {
		return err
	}

	if dto.Name != nil {
		existing.Name = *dto.Name
	}
	if dto.Responsible != nil {
		existing.Responsible = *dto.Responsible
	}
	if dto.Contact != nil {
		existing.Contact = *dto.Contact
	}
	if dto.Address != nil {
		existing.Address = *dto.Address
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		return internal.NewInternalError("failed to update school", err)
	}

	s.logger.Info("school updated", "school_id", targetID, "caller_id", ident.UserID)
	return nil
}

// DeleteSchool removes the target school under the same ownership predicate
// as update. Deleting an already-deleted id reports not-found.
func (s *Service) DeleteSchool(ident auth.Identity, targetID int64) error {
	existing, err := s.repo.GetByID(targetID)
	if err != nil {
		return internal.NewInternalError("failed to fetch school", err)
	}
	if existing == nil {
		return internal.ErrSchoolNotFound
	}

	if err := s.engine.Authorize(ident, auth.ActionDeleteSchool, &auth.Target{ID: existing.ID, OwnerID: existing.UserID}); err != nil {
		return err
	}

	if err := s.repo.Delete(targetID); err != nil {
		return internal.NewInternalError("failed to delete school", err)
	}

	s.logger.Info("school deleted", "school_id", targetID, "caller_id", ident.UserID)
	return nil
}
