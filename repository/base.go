package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidPage is returned by GetPaged for a non-positive page or page size.
var ErrInvalidPage = errors.New("page and page size must be positive")

// QueryOption customizes a paged query (filter, ordering, preloads).
type QueryOption func(*gorm.DB) *gorm.DB

// WithFilter adds a WHERE condition to a paged query.
func WithFilter(query interface{}, args ...interface{}) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

// WithOrder adds an ORDER BY expression to a paged query.
func WithOrder(order string) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(order)
	}
}

// WithPreload eagerly loads the named associations on the returned items.
func WithPreload(associations ...string) QueryOption {
	return func(db *gorm.DB) *gorm.DB {
		for _, association := range associations {
			db = db.Preload(association)
		}
		return db
	}
}

// Repository is the generic capability shared by every entity repository:
// typed reads over the owning unit of work's session and staged writes that
// stay in memory until the unit of work saves. Entity repositories embed it
// and add their relationship-aware queries.
type Repository[T any] struct {
	uow *UnitOfWork
}

func (r *Repository[T]) db(ctx context.Context) *gorm.DB {
	return r.uow.session().WithContext(ctx)
}

// GetByID loads the entity with the given primary key. Returns
// gorm.ErrRecordNotFound when it does not exist.
func (r *Repository[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var entity T
	if err := r.db(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// GetAll loads every entity of this type. Options can add ordering or
// preloads.
func (r *Repository[T]) GetAll(ctx context.Context, opts ...QueryOption) ([]T, error) {
	db := r.db(ctx)
	for _, opt := range opts {
		db = opt(db)
	}
	var entities []T
	if err := db.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Find loads all entities matching the condition.
func (r *Repository[T]) Find(ctx context.Context, query interface{}, args ...interface{}) ([]T, error) {
	var entities []T
	if err := r.db(ctx).Where(query, args...).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindFirst loads the first entity matching the condition. Returns
// gorm.ErrRecordNotFound when nothing matches.
func (r *Repository[T]) FindFirst(ctx context.Context, query interface{}, args ...interface{}) (*T, error) {
	var entity T
	if err := r.db(ctx).Where(query, args...).First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Add stages an insert on the unit of work and returns the entity. The
// primary key is populated once SaveChanges runs.
func (r *Repository[T]) Add(entity *T) *T {
	r.uow.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Create(entity)
		return res.RowsAffected, res.Error
	})
	return entity
}

// AddRange stages inserts for all entities.
func (r *Repository[T]) AddRange(entities []*T) []*T {
	for _, entity := range entities {
		r.Add(entity)
	}
	return entities
}

// Update stages a full save of the entity.
func (r *Repository[T]) Update(entity *T) {
	r.uow.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Save(entity)
		return res.RowsAffected, res.Error
	})
}

// UpdateRange stages saves for all entities.
func (r *Repository[T]) UpdateRange(entities []*T) {
	for _, entity := range entities {
		r.Update(entity)
	}
}

// Remove stages a delete of the entity.
func (r *Repository[T]) Remove(entity *T) {
	r.uow.stage(func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(entity)
		return res.RowsAffected, res.Error
	})
}

// RemoveRange stages deletes for all entities.
func (r *Repository[T]) RemoveRange(entities []*T) {
	for _, entity := range entities {
		r.Remove(entity)
	}
}

// Exists reports whether any entity matches the condition.
func (r *Repository[T]) Exists(ctx context.Context, query interface{}, args ...interface{}) (bool, error) {
	count, err := r.Count(ctx, query, args...)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count returns the number of entities matching the condition; a nil query
// counts everything.
func (r *Repository[T]) Count(ctx context.Context, query interface{}, args ...interface{}) (int64, error) {
	db := r.db(ctx).Model(new(T))
	if query != nil {
		db = db.Where(query, args...)
	}
	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetPaged returns one page of entities plus the total count across all
// pages. Page numbering is 1-based; a non-positive page or page size is a
// caller contract violation. Paged reads query storage directly and do not
// see writes staged earlier on the same unit of work.
func (r *Repository[T]) GetPaged(ctx context.Context, page, pageSize int, opts ...QueryOption) ([]T, int64, error) {
	if page < 1 || pageSize < 1 {
		return nil, 0, ErrInvalidPage
	}

	build := func() *gorm.DB {
		db := r.db(ctx).Model(new(T))
		for _, opt := range opts {
			db = opt(db)
		}
		return db
	}

	var total int64
	if err := build().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []T
	if err := build().Offset((page - 1) * pageSize).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
