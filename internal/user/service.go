package user

import (
	"log/slog"
	"time"

	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/auth"
	userDatamodel "github.com/edurede/school-registry/internal/core/datamodel/user"
)

type RepositoryAPI interface {
	GetAll() ([]*userDatamodel.User, error)
	GetByID(id int64) (*userDatamodel.User, error)
	Update(u *userDatamodel.User) error
	Delete(id int64) error
}

// PasswordHasher is the one-way transform used when a password change comes
// in through an update.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
}

type Service struct {
	repo   RepositoryAPI
	engine *auth.PolicyEngine
	hasher PasswordHasher
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, engine *auth.PolicyEngine, hasher PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		engine: engine,
		hasher: hasher,
		logger: logger,
	}
}

// ListUsers returns the id/name/email projection of every user. Admin only.
func (s *Service) ListUsers(ident auth.Identity) ([]UserResponse, error) {
	if err := s.engine.Authorize(ident, auth.ActionListUsers, nil); err != nil {
		return nil, err
	}

	rows, err := s.repo.GetAll()
	if err != nil {
		return nil, internal.NewInternalError("failed to list users", err)
	}

	responses := make([]UserResponse, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, UserResponse{
			ID:    row.ID,
			Name:  row.Name,
			Email: row.Email,
		})
	}
	return responses, nil
}

// UpdateUser applies a partial update to the target user. Existence is
// resolved before authorization so a denied caller probing a nonexistent id
// still sees not-found. A role field from a non-admin is silently dropped,
// never rejected.
func (s *Service) UpdateUser(ident auth.Identity, targetID int64, dto UpdateUserDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(targetID)
	if err != nil {
		return internal.NewInternalError("failed to fetch user", err)
	}
	if existing == nil {
		return internal.ErrUserNotFound
	}

	if err := s.engine.Authorize(ident, auth.ActionUpdateUser, &auth.Target{ID: existing.ID, OwnerID: existing.ID}); err != nil {
		return err
	}

	role, redacted := s.engine.RedactRoleChange(ident, dto.Role)
	if redacted {
		s.logger.Info("dropped role field from update", "target_id", targetID, "caller_id", ident.UserID)
	}

	if dto.Name != nil {
		existing.Name = *dto.Name
	}
	if dto.Password != nil {
		hash, err := s.hasher.HashPassword(*dto.Password)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		existing.PasswordHash = hash
	}
	if role != nil {
		existing.Role = *role
	}
	existing.UpdatedAt = time.Now()

	if err := s.repo.Update(existing); err != nil {
		return internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "target_id", targetID, "caller_id", ident.UserID)
	return nil
}

// DeleteUser removes the target user. A second delete of the same id reports
// not-found, not success.
func (s *Service) DeleteUser(ident auth.Identity, targetID int64) error {
	existing, err := s.repo.GetByID(targetID)
	if err != nil {
		return internal.NewInternalError("failed to fetch user", err)
	}
	if existing == nil {
		return internal.ErrUserNotFound
	}

	if err := s.engine.Authorize(ident, auth.ActionDeleteUser, &auth.Target{ID: existing.ID, OwnerID: existing.ID}); err != nil {
		return err
	}

	if err := s.repo.Delete(targetID); err != nil {
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "target_id", targetID, "caller_id", ident.UserID)
	return nil
}
