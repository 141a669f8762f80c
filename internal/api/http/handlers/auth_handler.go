package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/trackswift/internal/api/dto"
	"github.com/spec-kit/trackswift/internal/auth"
	"github.com/spec-kit/trackswift/internal/service"
	util "github.com/spec-kit/trackswift/pkg/util"
)

// AuthHandler exposes registration, login and logout.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	account, err := h.auth.Register(c.UserContext(), req.Username, req.Secret, req.Role)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"account": fiber.Map{
				"id":       account.ID,
				"username": account.Username,
				"role":     account.Role,
			},
		},
	})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Secret == "" {
		return util.NewValidationError("username and secret required", nil)
	}

	sess, token, err := h.auth.Login(c.UserContext(), req.Username, req.Secret)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"username": sess.Username,
			"auth": dto.AuthResponse{
				Token:     token,
				ExpiresAt: sess.ExpiresAt,
				Role:      string(sess.Role),
			},
		},
	})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, ok := auth.SessionFromContext(c)
	if !ok {
		return util.NewUnauthorized("authentication required")
	}
	if err := h.auth.Logout(c.UserContext(), sess.ID); err != nil {
		return util.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"logged_out": true}})
}
