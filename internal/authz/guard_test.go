package authz

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"blogpost/internal/models"
	"blogpost/internal/repository"
)

func newGuard(t *testing.T) (*Guard, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.BlogTag{},
		&models.BlogCategory{},
		&models.Comment{},
	))

	g := NewGuard(
		repository.NewUserStore(db),
		repository.NewBlogStore(db),
		repository.NewCommentStore(db),
	)
	return g, db
}

func TestGuardExistenceChecks(t *testing.T) {
	g, db := newGuard(t)
	ctx := context.Background()

	user := models.User{ID: uuid.NewString(), Username: "u", Email: "u@example.com", PasswordDigest: "d", RegisteredDate: time.Now()}
	require.NoError(t, db.Create(&user).Error)

	ok, err := g.UserExists(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.UserExists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.BlogExists(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGuardOwnership(t *testing.T) {
	g, db := newGuard(t)
	ctx := context.Background()

	author := uuid.NewString()
	blog := models.Blog{ID: uuid.NewString(), Title: "t", Content: "c", AuthorID: author, CreatedDate: time.Now()}
	require.NoError(t, db.Create(&blog).Error)

	comment := models.Comment{ID: uuid.NewString(), BlogID: blog.ID, AuthorID: author, Content: "c", CreatedDate: time.Now()}
	require.NoError(t, db.Create(&comment).Error)

	ok, err := g.BlogOwnedBy(ctx, blog.ID, author)
	require.NoError(t, err)
	assert.True(t, ok)

	// Ownership is false for a non-author even though the blog exists.
	ok, err = g.BlogOwnedBy(ctx, blog.ID, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)

	// And false for a missing entity regardless of the caller.
	ok, err = g.BlogOwnedBy(ctx, uuid.NewString(), author)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = g.CommentOwnedBy(ctx, comment.ID, author)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = g.CommentOwnedBy(ctx, comment.ID, uuid.NewString())
	require.NoError(t, err)
	assert.False(t, ok)
}
