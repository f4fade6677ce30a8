package handlers

import (
	"net/http"
	"strconv"

	"catalogapi/internal/storage"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ImageHandlers struct {
	blobs storage.BlobStore
	log   *zap.SugaredLogger
}

func NewImageHandlers(blobs storage.BlobStore, log *zap.SugaredLogger) *ImageHandlers {
	return &ImageHandlers{blobs: blobs, log: log}
}

// GetImage handles GET /images/:image_id. A malformed id is a 400; every
// other failure, a missing blob included, is a 500.
func (h *ImageHandlers) GetImage(c echo.Context) error {
	id, err := storage.ParseBlobID(c.Param("image_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	// bounded by the request, not the store timeout, so large streams finish
	blob, err := h.blobs.Get(c.Request().Context(), id)
	if err != nil {
		h.log.Errorw("image fetch failed", "image_id", id.Hex(), "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
	defer blob.Body.Close()

	if blob.Size > 0 {
		c.Response().Header().Set(echo.HeaderContentLength, strconv.FormatInt(blob.Size, 10))
	}
	return c.Stream(http.StatusOK, blob.ContentType, blob.Body)
}
