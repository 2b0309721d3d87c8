package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"blogpost/internal/models"
	"blogpost/internal/validation"
)

// RegisterUser handles PUT /user/register
func (s *Server) RegisterUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respondValidation(c, "Username, email, and password are required")
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return respondValidation(c, err.Error())
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return respondValidation(c, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return respondValidation(c, err.Error())
	}

	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if exists {
		return models.Respond(c, fiber.StatusBadRequest, "Email already exists")
	}

	exists, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if exists {
		return models.Respond(c, fiber.StatusBadRequest, "Username already exists")
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return respondValidation(c, err.Error())
	}

	user := models.User{
		ID:             uuid.NewString(),
		Username:       req.Username,
		Email:          req.Email,
		PasswordDigest: digest,
		RegisteredDate: time.Now(),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusCreated, "OK", models.NewUserView(user))
}

// AuthenticateUser handles GET /user/authenticate
func (s *Server) AuthenticateUser(c *fiber.Ctx) error {
	ctx := c.Context()

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondValidation(c, "Invalid request body")
	}
	if req.Email == "" || req.Password == "" {
		return respondValidation(c, "Email and password are required")
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		return respondValidation(c, err.Error())
	}

	user, err := s.users.FindByEmailAndDigest(ctx, req.Email, digest)
	if err != nil {
		return models.RespondInternalError(c)
	}
	if user == nil {
		return models.Respond(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondInternalError(c)
	}

	return models.RespondResult(c, fiber.StatusOK, "User authenticated", fiber.Map{
		"user_id": user.ID,
		"token":   token,
	})
}

// respondValidation writes the envelope for malformed input that must never
// reach the handler body.
func respondValidation(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.Envelope{
		Status:  models.StatusError,
		Message: message,
		Code:    fiber.StatusBadRequest,
	})
}
