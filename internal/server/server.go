// Package server contains the HTTP server and request handlers for the
// blogging API.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"blogpost/internal/authz"
	"blogpost/internal/cache"
	"blogpost/internal/config"
	"blogpost/internal/database"
	"blogpost/internal/middleware"
	"blogpost/internal/models"
	"blogpost/internal/password"
	"blogpost/internal/repository"
)

const blogCacheTTL = 5 * time.Minute

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	hasher   *password.Hasher
	users    repository.UserStore
	blogs    repository.BlogStore
	comments repository.CommentStore
	guard    *authz.Guard
}

// New creates a server instance with production dependencies.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithDB(cfg, db, cache.NewClient(cfg.RedisURL)), nil
}

// NewWithDB creates a server instance over an existing database handle and
// Redis client. Tests use it to substitute an in-memory store.
func NewWithDB(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	users := repository.NewUserStore(db)
	blogs := repository.NewBlogStore(db)
	comments := repository.NewCommentStore(db)

	return &Server{
		config:   cfg,
		db:       db,
		redis:    rdb,
		hasher:   password.NewHasher(cfg.PasswordSalt),
		users:    users,
		blogs:    blogs,
		comments: comments,
		guard:    authz.NewGuard(users, blogs, comments),
	}
}

// route binds one (method, path) pair to a handler, optionally behind
// additional middleware.
type route struct {
	method  string
	path    string
	handler fiber.Handler
	pre     []fiber.Handler
}

// routes is the explicit operation table. It is validated for duplicate
// registrations at setup time.
func (s *Server) routes() []route {
	return []route{
		{fiber.MethodPut, "/user/register", s.RegisterUser,
			[]fiber.Handler{middleware.RateLimit(s.redis, 3, 10*time.Minute, "register")}},
		{fiber.MethodGet, "/user/authenticate", s.AuthenticateUser,
			[]fiber.Handler{middleware.RateLimit(s.redis, 10, 5*time.Minute, "authenticate")}},

		{fiber.MethodGet, "/blog/list", s.ListBlogs, nil},
		{fiber.MethodPut, "/blog/create", s.CreateBlog, nil},
		{fiber.MethodGet, "/blog/fetch", s.FetchBlog, nil},
		{fiber.MethodPost, "/blog/update", s.UpdateBlog, nil},
		{fiber.MethodDelete, "/blog/delete", s.DeleteBlog, nil},

		{fiber.MethodPut, "/comment/create", s.CreateComment, nil},
		{fiber.MethodGet, "/comment/list", s.ListComments, nil},
		{fiber.MethodPost, "/comment/update", s.UpdateComment, nil},
		{fiber.MethodDelete, "/comment/delete", s.DeleteComment, nil},
	}
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes registers the operation table on the app, refusing duplicate
// (method, path) bindings.
func (s *Server) SetupRoutes(app *fiber.App) error {
	seen := make(map[string]bool)
	for _, r := range s.routes() {
		key := r.method + " " + r.path
		if seen[key] {
			return fmt.Errorf("duplicate route registration: %s", key)
		}
		seen[key] = true
		app.Add(r.method, r.path, append(r.pre, r.handler)...)
	}
	return nil
}

// NewApp builds a configured Fiber app with middleware and routes.
func (s *Server) NewApp() (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName: "Blogpost API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondInternalError(c)
		},
	})

	s.SetupMiddleware(app)
	if err := s.SetupRoutes(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Start starts the server
func (s *Server) Start() error {
	app, err := s.NewApp()
	if err != nil {
		return err
	}
	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}
	log.Println("Server shutdown complete")
	return nil
}

func blogCacheKey(id string) string {
	return "blog:" + id
}

// invalidateBlog drops the cached detail for a blog after any mutation that
// touches the blog or its comments.
func (s *Server) invalidateBlog(ctx context.Context, blogID string) {
	cache.Delete(ctx, s.redis, blogCacheKey(blogID))
}
