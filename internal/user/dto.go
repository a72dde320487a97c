package user

import (
	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/core/common/validation"
)

// UpdateUserDTO carries a partial update: only non-nil fields change the
// stored record. Email has no update path and is absent here.
type UpdateUserDTO struct {
	Name     *string `json:"user"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func (d UpdateUserDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("user", *d.Name).Required().MaxLength(120)
	}
	if d.Password != nil {
		v.Field("password", *d.Password).Required().PasswordPolicy()
	}
	if d.Role != nil && !isValidRole(*d.Role) {
		return internal.NewValidationError("role must be one of admin, edit, view", internal.ErrCodeInvalidRole)
	}
	return v.Validate()
}

func isValidRole(role string) bool {
	switch role {
	case "admin", "edit", "view":
		return true
	}
	return false
}

// UserResponse is the listing projection: never exposes the password hash.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"user"`
	Email string `json:"email"`
}
