package middleware

import (
	"context"
	"net/http"

	"catalogapi/internal/common"
	"catalogapi/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const tokenContextKey = "admin_token"

// AdminLookup is the slice of the admin repository the guard needs.
type AdminLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
}

// AdminJWT validates the bearer token of an admin request. It only accepts
// HS256 tokens signed with secret.
func AdminJWT(secret string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(jwt.RegisteredClaims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
		},
	})
}

// RequireAdmin must run after AdminJWT. It resolves the token subject to a
// stored admin and puts the admin id on the request context.
func RequireAdmin(admins AdminLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}
			claims, ok := token.Claims.(*jwt.RegisteredClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid claims")
			}

			adminID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid admin id in token")
			}

			ctx := c.Request().Context()
			if _, err := admins.GetByID(ctx, adminID); err != nil {
				if common.IsNotFound(err, "admin") {
					return echo.NewHTTPError(http.StatusUnauthorized, "Admin not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}

			c.SetRequest(c.Request().WithContext(common.WithAdminID(ctx, adminID)))
			return next(c)
		}
	}
}
