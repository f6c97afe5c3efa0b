package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// CategoryRepository adds category lookups on top of the generic base.
type CategoryRepository struct {
	Repository[model.Category]
}

func NewCategoryRepository(uow *UnitOfWork) *CategoryRepository {
	return &CategoryRepository{Repository[model.Category]{uow: uow}}
}

// GetByName loads a category by its unique name.
func (r *CategoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	return r.FindFirst(ctx, "name = ?", name)
}

// HasEvents reports whether any event still references the category. A
// referenced category cannot be deleted.
func (r *CategoryRepository) HasEvents(ctx context.Context, categoryID uint) (bool, error) {
	var count int64
	err := r.db(ctx).Model(&model.Event{}).Where("category_id = ?", categoryID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
