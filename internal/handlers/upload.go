package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
)

// formUpload opens an optional multipart file field. The returned closer
// must be called once the upload has been consumed.
func formUpload(c *gin.Context, field string) (*storage.Upload, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, func() {}, nil
		}
		return nil, func() {}, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}

	upload := &storage.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}
	return upload, func() { file.Close() }, nil
}

// optionalDate parses an optional YYYY-MM-DD value.
func optionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := utils.ParseDate(value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
