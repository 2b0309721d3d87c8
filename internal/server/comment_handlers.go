package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogpost/internal/models"
)

// CreateComment handles PUT /comment/create
func (s *Server) CreateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		BlogID   string `json:"blog_id"`
		Content  string `json:"content"`
		AuthorID string `json:"author_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.BlogID == "" || req.Content == "" || req.AuthorID == "" {
		return respondValidation(c, "Blog ID, content, and author ID are required")
	}

	ok, err := s.guard.BlogExists(ctx, req.BlogID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Blog does not exist")
	}

	ok, err = s.guard.UserExists(ctx, req.AuthorID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Author does not exist")
	}

	comment := models.Comment{
		ID:          uuid.NewString(),
		BlogID:      req.BlogID,
		AuthorID:    req.AuthorID,
		Content:     req.Content,
		CreatedDate: time.Now(),
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return models.RespondInternalError(c)
	}

	s.invalidateBlog(ctx, req.BlogID)
	return models.RespondResult(c, fiber.StatusCreated, "OK", models.NewCommentView(comment))
}

// ListComments handles GET /comment/list
func (s *Server) ListComments(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID string `json:"user_id"`
		BlogID string `json:"blog_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.UserID == "" || req.BlogID == "" {
		return respondValidation(c, "User ID and blog ID are required")
	}

	ok, err := s.guard.UserExists(ctx, req.UserID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Unauthenticated user")
	}

	comments, err := s.comments.ListByBlog(ctx, req.BlogID)
	if err != nil {
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusOK, "OK", models.NewCommentViews(comments))
}

// UpdateComment handles POST /comment/update
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		CommentID string `json:"comment_id"`
		AuthorID  string `json:"author_id"`
		Content   string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.CommentID == "" || req.AuthorID == "" || req.Content == "" {
		return respondValidation(c, "Comment ID, author ID, and content are required")
	}

	ok, err := s.guard.CommentOwnedBy(ctx, req.CommentID, req.AuthorID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "User does not have privilege to update the comment")
	}

	comment, err := s.comments.GetByID(ctx, req.CommentID)
	if err != nil {
		return models.RespondInternalError(c)
	}

	if err := s.comments.UpdateContent(ctx, req.CommentID, req.Content); err != nil {
		return models.RespondInternalError(c)
	}

	s.invalidateBlog(ctx, comment.BlogID)
	return models.Respond(c, fiber.StatusNoContent, "OK")
}

// DeleteComment handles DELETE /comment/delete
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		CommentID string `json:"comment_id"`
		UserID    string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.CommentID == "" || req.UserID == "" {
		return respondValidation(c, "Comment ID and user ID are required")
	}

	ok, err := s.guard.CommentOwnedBy(ctx, req.CommentID, req.UserID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "User does not have privilege to delete the comment")
	}

	comment, err := s.comments.GetByID(ctx, req.CommentID)
	if err != nil {
		return models.RespondInternalError(c)
	}

	if err := s.comments.Delete(ctx, req.CommentID); err != nil {
		return models.RespondInternalError(c)
	}

	s.invalidateBlog(ctx, comment.BlogID)
	return models.Respond(c, fiber.StatusNoContent, "OK")
}
