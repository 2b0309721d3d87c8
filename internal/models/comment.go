package models

import "time"

// Comment represents a comment on a blog. BlogID is a plain indexed column
// with no foreign-key constraint: deleting a blog must neither cascade into
// its comments nor be refused because comments exist.
type Comment struct {
	ID          string     `gorm:"primaryKey;size:36" json:"comment_id"`
	BlogID      string     `gorm:"index;size:36;not null" json:"blog_id"`
	AuthorID    string     `gorm:"size:36;not null" json:"author_id"`
	Content     string     `gorm:"not null" json:"content"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

// CommentView is the response shape for a comment. The parent blog id is
// omitted from listings, where it is implied by the request.
type CommentView struct {
	CommentID   string     `json:"comment_id"`
	AuthorID    string     `json:"author_id"`
	Content     string     `json:"content"`
	CreatedDate time.Time  `json:"created_date"`
	UpdatedDate *time.Time `json:"updated_date,omitempty"`
}

// NewCommentView shapes a Comment for API responses.
func NewCommentView(c Comment) CommentView {
	return CommentView{
		CommentID:   c.ID,
		AuthorID:    c.AuthorID,
		Content:     c.Content,
		CreatedDate: c.CreatedDate,
		UpdatedDate: c.UpdatedDate,
	}
}

// NewCommentViews shapes a slice of comments.
func NewCommentViews(comments []Comment) []CommentView {
	views := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, NewCommentView(c))
	}
	return views
}
