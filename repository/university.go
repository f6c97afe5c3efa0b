package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// UniversityRepository adds hierarchy lookups on top of the generic base.
type UniversityRepository struct {
	Repository[model.University]
}

func NewUniversityRepository(uow *UnitOfWork) *UniversityRepository {
	return &UniversityRepository{Repository[model.University]{uow: uow}}
}

// GetWithFaculties loads a university with its faculties.
func (r *UniversityRepository) GetWithFaculties(ctx context.Context, universityID uint) (*model.University, error) {
	var university model.University
	err := r.db(ctx).Preload("Faculties").First(&university, universityID).Error
	if err != nil {
		return nil, err
	}
	return &university, nil
}
