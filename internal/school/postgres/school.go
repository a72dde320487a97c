package postgres

import (
	"errors"

	"gorm.io/gorm"

	schoolDatamodel "github.com/edurede/school-registry/internal/core/datamodel/school"
	"github.com/edurede/school-registry/internal/school"
)

type SchoolRepository struct {
	db *gorm.DB
}

func NewSchoolRepository(db *gorm.DB) school.RepositoryAPI {
	return &SchoolRepository{db: db}
}

func (r *SchoolRepository) GetAll() ([]*schoolDatamodel.School, error) {
	var schools []*schoolDatamodel.School
	err := r.db.Order("id ASC").Find(&schools).Error
	return schools, err
}

func (r *SchoolRepository) GetByID(id int64) (*schoolDatamodel.School, error) {
	var row schoolDatamodel.School
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *SchoolRepository) Create(row *schoolDatamodel.School) error {
	return r.db.Create(row).Error
}

func (r *SchoolRepository) Update(row *schoolDatamodel.School) error {
	return r.db.Save(row).Error
}

func (r *SchoolRepository) Delete(id int64) error {
	return r.db.Where("id = ?", id).Delete(&schoolDatamodel.School{}).Error
}
