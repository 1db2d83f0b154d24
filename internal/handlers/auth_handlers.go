package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"starburger/internal/common"
	"starburger/internal/models"
	"starburger/internal/services"
)

type AuthHandlers struct {
	authService services.AuthServiceInterface
}

func NewAuthHandlers(authService services.AuthServiceInterface) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
	}
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if err := common.ValidateRequiredString(req.Password, "password"); err != nil {
		return common.SendValidationError(c, "password", err.Error())
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return common.SendUnauthorizedError(c)
		}
		return common.SendServerError(c, "Failed to log in")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// CreateUser handles POST /users (admin only)
func (h *AuthHandlers) CreateUser(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	if err := common.ValidateRequiredString(req.Username, "username"); err != nil {
		return common.SendValidationError(c, "username", err.Error())
	}
	if len(req.Password) < 8 {
		return common.SendValidationError(c, "password", "password must be at least 8 characters")
	}
	if !models.ValidRole(req.Role) {
		return common.SendValidationError(c, "role", "role must be one of: manager, admin")
	}

	user, err := h.authService.CreateUser(ctx, req.Username, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return common.SendClientError(c, "Username already taken")
		}
		return common.SendServerError(c, "Failed to create user")
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}
