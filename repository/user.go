package repository

import (
	"context"

	"github.com/mrzkhrmn/EventCampusWebAPI/model"
)

// UserRepository adds user lookups on top of the generic base.
type UserRepository struct {
	Repository[model.User]
}

func NewUserRepository(uow *UnitOfWork) *UserRepository {
	return &UserRepository{Repository[model.User]{uow: uow}}
}

// GetByEmail loads a user by email. Returns gorm.ErrRecordNotFound when the
// email is unregistered.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.FindFirst(ctx, "email = ?", email)
}

// EmailExists reports whether the email is already registered.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	return r.Exists(ctx, "email = ?", email)
}

// GetUserWithAffiliations loads a user with their university, faculty and
// department resolved.
func (r *UserRepository) GetUserWithAffiliations(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := r.db(ctx).
		Preload("University").
		Preload("Faculty").
		Preload("Department").
		First(&user, userID).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
