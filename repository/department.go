package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// DepartmentRepository adds hierarchy lookups on top of the generic base.
type DepartmentRepository struct {
	Repository[model.Department]
}

func NewDepartmentRepository(uow *UnitOfWork) *DepartmentRepository {
	return &DepartmentRepository{Repository[model.Department]{uow: uow}}
}

// GetByFaculty returns the departments of a faculty.
func (r *DepartmentRepository) GetByFaculty(ctx context.Context, facultyID uint) ([]model.Department, error) {
	return r.Find(ctx, "faculty_id = ?", facultyID)
}
