package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// handleError maps a service error onto the HTTP response. Anything that is
// not a known client-facing condition is logged and reported as a bare 500.
func handleError(c echo.Context, log *zap.SugaredLogger, err error) error {
	var (
		nf    *common.NotFoundError
		inv   *common.InvalidIdentifierError
		verrs validator.ValidationErrors
	)
	switch {
	case errors.As(err, &nf):
		return echo.NewHTTPError(http.StatusNotFound, nf.Error())
	case errors.As(err, &inv):
		return echo.NewHTTPError(http.StatusBadRequest, inv.Error())
	case errors.As(err, &verrs):
		return common.SendValidationError(c, models.ValidationDetails(err))
	case errors.Is(err, common.ErrInvalidImage):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrCategoryDeletionDisabled):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, common.ErrCategoryInUse), errors.Is(err, common.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}

	log.Errorw("request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// storeContext bounds the store calls of one request.
func storeContext(c echo.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), timeout)
}

// baseURL prefers the base_url query parameter over the configured default.
func baseURL(c echo.Context, fallback string) string {
	if v := c.QueryParam("base_url"); v != "" {
		return common.TrimBaseURL(v)
	}
	return common.TrimBaseURL(fallback)
}
