package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"catalogapi/internal/services"

	"github.com/labstack/echo/v4"
)

const imagesField = "images"

// bindDocument decodes the JSON document of an admin write. Multipart requests
// carry it in the form field named field, next to repeated "images" parts;
// plain JSON requests carry no uploads. The returned release func closes the
// opened parts and must always be called.
func bindDocument(c echo.Context, field string, dst any) ([]services.ImageUpload, func(), error) {
	release := func() {}
	ct := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(ct, echo.MIMEMultipartForm) {
		if err := json.NewDecoder(c.Request().Body).Decode(dst); err != nil {
			return nil, release, echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
		}
		return nil, release, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, release, echo.NewHTTPError(http.StatusBadRequest, "Invalid multipart form")
	}
	raw := form.Value[field]
	if len(raw) == 0 {
		return nil, release, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Missing %q field", field))
	}
	if err := json.Unmarshal([]byte(raw[0]), dst); err != nil {
		return nil, release, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid %s document", field))
	}

	files := form.File[imagesField]
	opened := make([]multipart.File, 0, len(files))
	release = func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	uploads := make([]services.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			release()
			return nil, func() {}, echo.NewHTTPError(http.StatusBadRequest, "Unreadable image upload")
		}
		opened = append(opened, f)
		uploads = append(uploads, services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Body:        f,
		})
	}
	return uploads, release, nil
}
