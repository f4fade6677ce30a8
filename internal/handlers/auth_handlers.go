package handlers

import (
	"net/http"
	"time"

	"catalogapi/internal/services"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AuthHandlers handles admin authentication
type AuthHandlers struct {
	authService services.AuthService
	timeout     time.Duration
	log         *zap.SugaredLogger
}

func NewAuthHandlers(authService services.AuthService, timeout time.Duration, log *zap.SugaredLogger) *AuthHandlers {
	return &AuthHandlers{authService: authService, timeout: timeout, log: log}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /admin/login
func (h *AuthHandlers) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	ctx, cancel := storeContext(c, h.timeout)
	defer cancel()

	result, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		h.log.Infow("admin login rejected", "username", req.Username, "error", err)
		return handleError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, result)
}
