package repository

import (
	"strings"

	"gorm.io/gorm"
)

// BlogFilter composes a blog filter from optional criteria. Search matches
// title or content case-insensitively. Tags and categories form one OR-group:
// a blog matches when it carries any requested tag OR any requested category.
// The search constraint is ANDed with that group. An empty filter matches
// every blog.
type BlogFilter struct {
	Search     string
	Tags       []string
	Categories []string
}

// IsZero reports whether no criteria were supplied.
func (f BlogFilter) IsZero() bool {
	return f.Search == "" && len(f.Tags) == 0 && len(f.Categories) == 0
}

// Scope returns a GORM scope applying the filter.
func (f BlogFilter) Scope() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.Search != "" {
			pattern := "%" + strings.ToLower(f.Search) + "%"
			db = db.Where("lower(title) LIKE ? OR lower(content) LIKE ?", pattern, pattern)
		}

		var conds []string
		var args []interface{}
		if len(f.Tags) > 0 {
			conds = append(conds, "EXISTS (SELECT 1 FROM blog_tags WHERE blog_tags.blog_id = blogs.id AND blog_tags.value IN ?)")
			args = append(args, f.Tags)
		}
		if len(f.Categories) > 0 {
			conds = append(conds, "EXISTS (SELECT 1 FROM blog_categories WHERE blog_categories.blog_id = blogs.id AND blog_categories.value IN ?)")
			args = append(args, f.Categories)
		}
		if len(conds) > 0 {
			db = db.Where(strings.Join(conds, " OR "), args...)
		}

		return db
	}
}
