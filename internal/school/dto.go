package school

import (
	"github.com/edurede/school-registry/internal"
	"github.com/edurede/school-registry/internal/core/common/validation"
)

// CreateSchoolDTO carries the attributes of a new school. The owner is taken
// from the authenticated identity, never from the payload.
type CreateSchoolDTO struct {
	Name        string `json:"nome"`
	Responsible string `json:"responsavel"`
	Contact     string `json:"contacto"`
	Address     string `json:"morada"`
}

// UpdateSchoolDTO carries a partial update: only non-nil fields change the
// stored record.
type UpdateSchoolDTO struct {
	Name        *string `json:"nome"`
	Responsible *string `json:"responsavel"`
	Contact     *string `json:"contacto"`
	Address     *string `json:"morada"`
}

func (d CreateSchoolDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("nome", d.Name).Required().MaxLength(200)
	v.Field("responsavel", d.Responsible).MaxLength(120)
	v.Field("contacto", d.Contact).MaxLength(40)
	v.Field("morada", d.Address).MaxLength(300)
	return v.Validate()
}

func (d UpdateSchoolDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	if d.Name != nil {
		v.Field("nome", *d.Name).Required().MaxLength(200)
	}
	if d.Responsible != nil {
		v.Field("responsavel", *d.Responsible).MaxLength(120)
	}
	if d.Contact != nil {
		v.Field("contacto", *d.Contact).MaxLength(40)
	}
	if d.Address != nil {
		v.Field("morada", *d.Address).MaxLength(300)
	}
	return v.Validate()
}

// SchoolResponse is the public listing projection.
type SchoolResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"nome"`
	Responsible string `json:"responsavel"`
	Contact     string `json:"contacto"`
	Address     string `json:"morada"`
}

// CreateSchoolResponse confirms a creation with the new record's id.
type CreateSchoolResponse struct {
	Message  string `json:"message"`
	SchoolID int64  `json:"escola_id"`
}
