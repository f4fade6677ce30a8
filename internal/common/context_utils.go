package common

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey string

const (
	AdminIDKey contextKey = "admin_id"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, details map[string]string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// ParseObjectID validates a hex document identifier.
func ParseObjectID(idStr, fieldName string) (primitive.ObjectID, error) {
	idStr = strings.TrimSpace(idStr)
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		return primitive.NilObjectID, InvalidIdentifier(fieldName, idStr)
	}
	return id, nil
}

// WithAdminID stores the authenticated admin id on ctx.
func WithAdminID(ctx context.Context, adminID uuid.UUID) context.Context {
	return context.WithValue(ctx, AdminIDKey, adminID)
}

// GetAdminIDFromContext extracts the admin ID from the request context
func GetAdminIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	adminID, ok := ctx.Value(AdminIDKey).(uuid.UUID)
	return adminID, ok
}

// TrimBaseURL strips trailing slashes so image URLs never contain "//images".
func TrimBaseURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/")
}

// ImageURL renders the public URL of a blob.
func ImageURL(baseURL string, blobID primitive.ObjectID) string {
	return fmt.Sprintf("%s/images/%s", TrimBaseURL(baseURL), blobID.Hex())
}
