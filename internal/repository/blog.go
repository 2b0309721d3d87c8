package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"blogpost/internal/models"
)

// BlogUpdate carries a partial blog mutation. Nil fields are left untouched;
// supplied tag/category sets replace the existing ones.
type BlogUpdate struct {
	Title      *string
	Content    *string
	Tags       *[]string
	Categories *[]string
}

// BlogStore defines the content store adapter for blogs.
type BlogStore interface {
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	// OwnedBy reports whether the blog exists and its author matches.
	OwnedBy(ctx context.Context, id, authorID string) (bool, error)
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]models.Blog, error)
	UpdateFields(ctx context.Context, id string, upd BlogUpdate) error
	Delete(ctx context.Context, id string) error
}

type blogStore struct {
	db *gorm.DB
}

// NewBlogStore creates a new blog store adapter.
func NewBlogStore(db *gorm.DB) BlogStore {
	return &blogStore{db: db}
}

func (r *blogStore) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Where("title = ?", title).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *blogStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *blogStore) OwnedBy(ctx context.Context, id, authorID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Blog{}).
		Where("id = ? AND author_id = ?", id, authorID).
		Count(&count).Error; err != nil {
		return false, models.NewStoreError(err)
	}
	return count > 0, nil
}

func (r *blogStore) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Create(blog).Error; err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

func (r *blogStore) GetByID(ctx context.Context, id string) (*models.Blog, error) {
	var blog models.Blog
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Categories").
		Where("id = ?", id).
		First(&blog).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Blog", id)
		}
		return nil, models.NewStoreError(err)
	}
	return &blog, nil
}

func (r *blogStore) List(ctx context.Context, filter BlogFilter) ([]models.Blog, error) {
	var blogs []models.Blog
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Categories").
		Scopes(filter.Scope()).
		Order("created_date DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, models.NewStoreError(err)
	}
	return blogs, nil
}

// UpdateFields applies a partial merge: only supplied fields change, and the
// updated timestamp is always stamped server-side as part of this call.
func (r *blogStore) UpdateFields(ctx context.Context, id string, upd BlogUpdate) error {
	fields := map[string]interface{}{"updated_date": time.Now()}
	if upd.Title != nil {
		fields["title"] = *upd.Title
	}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Blog{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return err
		}
		if upd.Tags != nil {
			if err := tx.Where("blog_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
				return err
			}
			if rows := models.NewTagRows(id, *upd.Tags); len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}
		if upd.Categories != nil {
			if err := tx.Where("blog_id = ?", id).Delete(&models.BlogCategory{}).Error; err != nil {
				return err
			}
			if rows := models.NewCategoryRows(id, *upd.Categories); len(rows) > 0 {
				if err := tx.Create(&rows).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	return nil
}

// Delete removes the blog row and its tag/category children. Comments on the
// blog are deliberately left in place.
func (r *blogStore) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("blog_id = ?", id).Delete(&models.BlogCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Blog{}).Error
	})
	if err != nil {
		return models.NewStoreError(err)
	}
	return nil
}
