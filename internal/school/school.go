package school

import (
	"time"

	schoolDatamodel "github.com/edurede/school-registry/internal/core/datamodel/school"
)

// School is the domain model for a school record. OwnerUserID is fixed at
// creation to the creating user and has no update path.
type School struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nome"`
	Responsible string    `json:"responsavel"`
	Contact     string    `json:"contacto"`
	Address     string    `json:"morada"`
	OwnerUserID int64     `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToDataModel(s *School) *schoolDatamodel.School {
	return &schoolDatamodel.School{
		ID:          s.ID,
		Name:        s.Name,
		Responsible: s.Responsible,
		Contact:     s.Contact,
		Address:     s.Address,
		UserID:      s.OwnerUserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func FromDataModel(s *schoolDatamodel.School) *School {
	return &School{
		ID:          s.ID,
		Name:        s.Name,
		Responsible: s.Responsible,
		Contact:     s.Contact,
		Address:     s.Address,
		OwnerUserID: s.UserID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
