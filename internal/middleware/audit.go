package middleware

import (
	"net/http"

	"catalogapi/internal/common"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AdminAudit records every mutating admin request with the acting admin and
// the final status. Reads are not audited.
func AdminAudit(log *zap.SugaredLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			if method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions {
				return next(c)
			}

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			adminID, _ := common.GetAdminIDFromContext(c.Request().Context())
			log.Infow("admin action",
				"admin_id", adminID.String(),
				"method", method,
				"route", c.Path(),
				"resource_id", c.Param("id"),
				"status", status,
			)
			return err
		}
	}
}
