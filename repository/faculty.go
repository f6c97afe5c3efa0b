package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// FacultyRepository adds hierarchy lookups on top of the generic base.
type FacultyRepository struct {
	Repository[model.Faculty]
}

func NewFacultyRepository(uow *UnitOfWork) *FacultyRepository {
	return &FacultyRepository{Repository[model.Faculty]{uow: uow}}
}

// GetByUniversity returns the faculties of a university.
func (r *FacultyRepository) GetByUniversity(ctx context.Context, universityID uint) ([]model.Faculty, error) {
	return r.Find(ctx, "university_id = ?", universityID)
}
