package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"blogpost/internal/models"
)

// CommentStore defines the content store adapter for comments.
type CommentStore interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
	// OwnedBy reports whether the comment exists and its author matches.
	OwnedBy(ctx context.Context, id, authorID string) (bool, error)
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id string) (*models.Comment, error)
	ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

type commentStore struct {
	db *gorm.DB
}

// NewCommentStore creates a new comment store adapter.
func NewCommentStore(db *gorm.DB) CommentStore {
	return &commentStore{db: db}
}

func (r *commentStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *commentStore) OwnedBy(ctx context.Context, id, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *commentStore) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentStore) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &comment, nil
}

func (r *commentStore) ListByBlog(ctx context.Context, blogID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Order("created_date ASC").
		Find(&comments).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return comments, nil
}

// UpdateContent replaces the comment body and stamps the updated timestamp
// server-side.
func (r *commentStore) UpdateContent(ctx context.Context, id, content string) error {
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"content":      content,
			"updated_date": time.Now(),
		}).Error
	if err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *commentStore) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Comment{}).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
