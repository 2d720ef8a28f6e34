package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nimbushr/hrms/internal/files"
	"github.com/nimbushr/hrms/internal/utils"
)

type APIError struct {
	Code    utils.Code `json:"code"`
	Message string     `json:"message"`
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)

	var ae *utils.AppError
	if errors.As(err, &ae) {
		c.JSON(status, APIError{
			Code:    ae.Code,
			Message: ae.Message,
		})
		return
	}

	c.JSON(status, APIError{
		Code:    utils.CodeInternal,
		Message: http.StatusText(status),
	})
}

func requireUserID(c *gin.Context) (string, bool) {
	if v, ok := c.Get("user_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			return s, true
		}
	}

	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return "", false
}

// formUpload extracts the named multipart file. ok is false when the field
// is absent, which callers treat as "no file attached". The returned closer
// must be closed by the caller.
func formUpload(c *gin.Context, field string) (*files.Upload, func(), bool, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, false, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, false, err
	}

	up := &files.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}
	return up, func() { _ = f.Close() }, true, nil
}

// serveContent streams an opened file as an attachment download. Headers go
// out before the first byte, so a mid-stream failure reaches the client as
// a truncated body rather than an error status.
func serveContent(c *gin.Context, content *files.Content) {
	defer content.Body.Close()

	disposition := fmt.Sprintf("attachment; filename=%q", content.Filename)
	c.DataFromReader(http.StatusOK, content.Size, content.ContentType, content.Body,
		map[string]string{"Content-Disposition": disposition})
}

// parseDate accepts the date shapes the front end sends.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
