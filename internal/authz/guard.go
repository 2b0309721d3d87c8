// Package authz computes permission decisions from store lookups.
package authz

import (
	"context"

	"blogpost/internal/repository"
)

// Guard answers existence and ownership questions for request handlers.
// Handlers compose its checks into short-circuit chains: referenced-entity
// existence first, ownership second, first failing check wins. No check is
// retried.
type Guard struct {
	users    repository.UserStore
	blogs    repository.BlogStore
	comments repository.CommentStore
}

// NewGuard creates a Guard over the given stores.
func NewGuard(users repository.UserStore, blogs repository.BlogStore, comments repository.CommentStore) *Guard {
	return &Guard{users: users, blogs: blogs, comments: comments}
}

// UserExists reports whether a user with the given id exists.
func (g *Guard) UserExists(ctx context.Context, id string) (bool, error) {
	return g.users.ExistsByID(ctx, id)
}

// BlogExists reports whether a blog with the given id exists.
func (g *Guard) BlogExists(ctx context.Context, id string) (bool, error) {
	return g.blogs.ExistsByID(ctx, id)
}

// CommentExists reports whether a comment with the given id exists.
func (g *Guard) CommentExists(ctx context.Context, id string) (bool, error) {
	return g.comments.ExistsByID(ctx, id)
}

// BlogOwnedBy reports whether the blog exists and authorID is its author.
func (g *Guard) BlogOwnedBy(ctx context.Context, blogID, authorID string) (bool, error) {
	return g.blogs.OwnedBy(ctx, blogID, authorID)
}

// CommentOwnedBy reports whether the comment exists and authorID is its author.
func (g *Guard) CommentOwnedBy(ctx context.Context, commentID, authorID string) (bool, error) {
	return g.comments.OwnedBy(ctx, commentID, authorID)
}
