package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogpost/internal/cache"
	"blogpost/internal/models"
	"blogpost/internal/repository"
)

// ListBlogs handles GET /blog/list
func (s *Server) ListBlogs(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		UserID       string   `json:"user_id"`
		SearchString string   `json:"search_string"`
		Tags         []string `json:"tags"`
		Categories   []string `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.UserID == "" {
		return respondValidation(c, "User ID is required")
	}

	ok, err := s.guard.UserExists(ctx, req.UserID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Author does not exist")
	}

	filter := repository.BlogFilter{
		Search:     req.SearchString,
		Tags:       req.Tags,
		Categories: req.Categories,
	}
	blogs, err := s.blogs.List(ctx, filter)
	if err != nil {
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusOK, "OK", models.NewBlogViews(blogs))
}

// CreateBlog handles PUT /blog/create
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Title      string   `json:"title"`
		Content    string   `json:"content"`
		AuthorID   string   `json:"author_id"`
		Tags       []string `json:"tags"`
		Categories []string `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.Title == "" || req.Content == "" || req.AuthorID == "" {
		return respondValidation(c, "Title, content, and author ID are required")
	}

	ok, err := s.guard.UserExists(ctx, req.AuthorID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Author does not exist")
	}

	taken, err := s.blogs.ExistsByTitle(ctx, req.Title)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if taken {
		return models.Respond(c, fiber.StatusUnauthorized, "Blog title exists")
	}

	blog := models.Blog{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    req.AuthorID,
		CreatedDate: time.Now(),
	}
	blog.Tags = models.NewTagRows(blog.ID, req.Tags)
	blog.Categories = models.NewCategoryRows(blog.ID, req.Categories)

	if err := s.blogs.Create(ctx, &blog); err != nil {
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusCreated, "OK", models.NewBlogView(blog))
}

// FetchBlog handles GET /blog/fetch: a blog joined with all comments whose
// parent blog identifier matches.
func (s *Server) FetchBlog(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		BlogID string `json:"blog_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.BlogID == "" {
		return respondValidation(c, "Blog ID is required")
	}

	ok, err := s.guard.BlogExists(ctx, req.BlogID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "Blog does not exist")
	}

	var detail models.BlogDetail
	err = cache.CacheAside(ctx, s.redis, blogCacheKey(req.BlogID), &detail, blogCacheTTL, func() error {
		blog, err := s.blogs.GetByID(ctx, req.BlogID)
		if err != nil {
			return err
		}
		comments, err := s.comments.ListByBlog(ctx, req.BlogID)
		if err != nil {
			return err
		}
		detail = models.BlogDetail{
			BlogView: models.NewBlogView(*blog),
			Comments: models.NewCommentViews(comments),
		}
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return models.Respond(c, fiber.StatusUnauthorized, "Blog does not exist")
		}
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusOK, "OK", detail)
}

// UpdateBlog handles POST /blog/update. Only supplied fields change; the
// updated timestamp is stamped server-side.
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		BlogID     string    `json:"blog_id"`
		AuthorID   string    `json:"author_id"`
		Title      *string   `json:"title"`
		Content    *string   `json:"content"`
		Tags       *[]string `json:"tags"`
		Categories *[]string `json:"categories"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.BlogID == "" || req.AuthorID == "" {
		return respondValidation(c, "Blog ID and author ID are required")
	}

	ok, err := s.guard.BlogOwnedBy(ctx, req.BlogID, req.AuthorID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "User does not have privilege to update the blog")
	}

	upd := repository.BlogUpdate{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Categories: req.Categories,
	}
	if err := s.blogs.UpdateFields(ctx, req.BlogID, upd); err != nil {
		return models.RespondInternalError(c)
	}

	s.invalidateBlog(ctx, req.BlogID)
	return models.Respond(c, fiber.StatusNoContent, "OK")
}

// DeleteBlog handles DELETE /blog/delete. Comments on the blog are left in
// place.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		BlogID string `json:"blog_id"`
		UserID string `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.BlogID == "" || req.UserID == "" {
		return respondValidation(c, "Blog ID and user ID are required")
	}

	ok, err := s.guard.BlogOwnedBy(ctx, req.BlogID, req.UserID)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if !ok {
		return models.Respond(c, fiber.StatusUnauthorized, "User does not have privilege to delete the blog")
	}

	if err := s.blogs.Delete(ctx, req.BlogID); err != nil {
		return models.RespondInternalError(c)
	}

	s.invalidateBlog(ctx, req.BlogID)
	return models.Respond(c, fiber.StatusNoContent, "OK")
}
