// Package repository contains the store adapters translating domain
// operations into database queries, plus the blog filter builder.
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blogpost/internal/models"
)

// UserStore defines the identity store adapter.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, user *models.User) error
	// FindByEmailAndDigest returns the single user matching both email and
	// password digest, or (nil, nil) when there is no match.
	FindByEmailAndDigest(ctx context.Context, email, digest string) (*models.User, error)
}

type userStore struct {
	db *gorm.DB
}

// NewUserStore creates a new identity store adapter.
func NewUserStore(db *gorm.DB) UserStore {
	return &userStore{db: db}
}

func (r *userStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *userStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *userStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *userStore) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *userStore) FindByEmailAndDigest(ctx context.Context, email, digest string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ? AND password_digest = ?", email, digest).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewStoreError(err)
	}
	return &user, nil
}
