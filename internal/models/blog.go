package models

import "time"

// Blog represents a blog post. Tags and categories live in child tables so
// set-membership filters stay in SQL. AuthorID is immutable after creation.
type Blog struct {
	ID          string         `gorm:"primaryKey;size:36" json:"blog_id"`
	Title       string         `gorm:"uniqueIndex;not null" json:"title"`
	Content     string         `gorm:"not null" json:"content"`
	AuthorID    string         `gorm:"index;size:36;not null" json:"author_id"`
	Tags        []BlogTag      `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"-"`
	Categories  []BlogCategory `gorm:"foreignKey:BlogID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedDate time.Time      `json:"created_date"`
	UpdatedDate *time.Time     `json:"updated_date,omitempty"`
}

// BlogTag is a single tag value attached to a blog.
type BlogTag struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	BlogID string `gorm:"size:36;not null;uniqueIndex:idx_blog_tag" json:"-"`
	Value  string `gorm:"not null;uniqueIndex:idx_blog_tag" json:"-"`
}

// BlogCategory is a single category value attached to a blog.
type BlogCategory struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	BlogID string `gorm:"size:36;not null;uniqueIndex:idx_blog_category" json:"-"`
	Value  string `gorm:"not null;uniqueIndex:idx_blog_category" json:"-"`
}

// TagValues flattens the tag rows to their string values.
func (b Blog) TagValues() []string {
	vals := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		vals = append(vals, t.Value)
	}
	return vals
}

// CategoryValues flattens the category rows to their string values.
func (b Blog) CategoryValues() []string {
	vals := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		vals = append(vals, c.Value)
	}
	return vals
}

// NewTagRows builds tag rows for a blog from plain values.
func NewTagRows(blogID string, values []string) []BlogTag {
	rows := make([]BlogTag, 0, len(values))
	for _, v := range values {
		rows = append(rows, BlogTag{BlogID: blogID, Value: v})
	}
	return rows
}

// NewCategoryRows builds category rows for a blog from plain values.
func NewCategoryRows(blogID string, values []string) []BlogCategory {
	rows := make([]BlogCategory, 0, len(values))
	for _, v := range values {
		rows = append(rows, BlogCategory{BlogID: blogID, Value: v})
	}
	return rows
}

// BlogView is the response shape for a blog. Tags and categories flatten to
// plain string slices; no row ids leak.
type BlogView struct {
	BlogID      string     `json:"blog_id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    string     `json:"author_id"`
	Tags        []string   `json:"tags,omitempty"`
	Categories  []string   `json:"categories,omitempty"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

// NewBlogView shapes a Blog for API responses.
func NewBlogView(b Blog) BlogView {
	return BlogView{
		BlogID:      b.ID,
		Title:       b.Title,
		Content:     b.Content,
		AuthorID:    b.AuthorID,
		Tags:        b.TagValues(),
		Categories:  b.CategoryValues(),
		CreatedDate: b.CreatedDate,
		UpdatedDate: b.UpdatedDate,
	}
}

// NewBlogViews shapes a slice of blogs.
func NewBlogViews(blogs []Blog) []BlogView {
	views := make([]BlogView, 0, len(blogs))
	for _, b := range blogs {
		views = append(views, NewBlogView(b))
	}
	return views
}

// BlogDetail is a blog joined with every comment whose parent is that blog.
type BlogDetail struct {
	BlogView
	Comments []CommentView `json:"comments"`
}
