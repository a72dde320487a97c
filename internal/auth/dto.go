package auth

import (
	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/core/common/validation"
)

// RegisterDTO is the transport shape for account registration.
type RegisterDTO struct {
	Name     string `json:"user"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO is the transport shape for credential login.
type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (d RegisterDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("user", d.Name).Required().MaxLength(120)
	v.Field("email", d.Email).Required().MaxLength(254).Email()
	v.Field("password", d.Password).Required().PasswordPolicy()
	return v.Validate()
}

func (d LoginDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("email", d.Email).Required()
	v.Field("password", d.Password).Required()
	return v.Validate()
}
