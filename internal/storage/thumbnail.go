package storage

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"catalogapi/internal/common"

	"github.com/disintegration/imaging"
)

const (
	ThumbnailSize = 128
	MaxImageBytes = 16 << 20
)

// PreparedImage is a decoded upload plus its encoded thumbnail.
type PreparedImage struct {
	Data                 []byte
	ContentType          string
	Filename             string
	Thumbnail            []byte
	ThumbnailContentType string
}

// PrepareImage reads an upload, checks it decodes as an image and derives a
// thumbnail fitting inside ThumbnailSize x ThumbnailSize.
func PrepareImage(r io.Reader, opts PutOptions) (*PreparedImage, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty upload", common.ErrInvalidImage)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", common.ErrInvalidImage, MaxImageBytes)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImage, err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidImage, err)
	}

	thumbFormat, thumbContentType := imaging.PNG, "image/png"
	if f, err := imaging.FormatFromExtension(format); err == nil {
		thumbFormat, thumbContentType = f, "image/"+format
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Fit(img, ThumbnailSize, ThumbnailSize, imaging.Lanczos), thumbFormat); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}

	contentType := opts.ContentType
	if contentType == "" || contentType == DefaultContentType {
		contentType = "image/" + format
	}
	filename := opts.Filename
	if filename == "" {
		filename = "image." + format
	}

	return &PreparedImage{
		Data:                 data,
		ContentType:          contentType,
		Filename:             filename,
		Thumbnail:            buf.Bytes(),
		ThumbnailContentType: thumbContentType,
	}, nil
}
