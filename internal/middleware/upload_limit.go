// internal/middleware/upload_limit.go
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/provenance-backend/internal/utils"
)

const (
	// multipartOverhead is the allowance for form fields and part headers on
	// top of the attachment itself.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

// UploadSizeLimit rejects multipart requests whose "file" part exceeds
// maxSize bytes with 413. The form is parsed here so handlers can read it
// through gin as usual.
func UploadSizeLimit(field string, maxSize int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

		if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
			if isBodyTooLarge(err) {
				utils.PayloadTooLargeResponse(c)
				c.Abort()
				return
			}
			// Malformed or non-multipart bodies are reported by the handler.
			c.Next()
			return
		}

		if form := c.Request.MultipartForm; form != nil {
			for _, header := range form.File[field] {
				if header.Size > maxSize {
					utils.PayloadTooLargeResponse(c)
					c.Abort()
					return
				}
			}
		}

		c.Next()
	}
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
