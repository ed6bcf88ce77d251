package middleware

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/eventhub-id/eventhub-api/utils"
	"github.com/gin-gonic/gin"
)

// UploadKey is the context key holding the uploaded *multipart.FileHeader
const UploadKey = "upload"

// SingleImageUpload reads an optional image from the multipart field and
// validates its size and extension
func SingleImageUpload(field string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, utils.MaxImageSize+1<<20)

		file, err := c.FormFile(field)
		if err != nil {
			if errors.Is(err, http.ErrMissingFile) {
				c.Next()
				return
			}
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				utils.BadRequest(c, "Image too large", "file size exceeds 5MB limit")
				c.Abort()
				return
			}
			if errors.Is(err, http.ErrNotMultipart) {
				utils.BadRequest(c, "Request must be multipart/form-data", nil)
				c.Abort()
				return
			}
			utils.BadRequest(c, "Invalid upload", err.Error())
			c.Abort()
			return
		}

		if err := utils.ValidateImageFile(file); err != nil {
			utils.BadRequest(c, "Invalid image", err.Error())
			c.Abort()
			return
		}

		c.Set(UploadKey, file)
		c.Next()
	}
}

// UploadedFile returns the file stored by SingleImageUpload, if any
func UploadedFile(c *gin.Context) *multipart.FileHeader {
	v, ok := c.Get(UploadKey)
	if !ok {
		return nil
	}
	file, _ := v.(*multipart.FileHeader)
	return file
}
