package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

const maxUploadMemory = 32 << 20

// parseUpload reads a multipart submission. A plain urlencoded post (no
// files chosen in a browser that skipped the enctype) yields a form with
// values only.
func parseUpload(c *gin.Context) (*multipart.Form, error) {
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, err
		}
		if err := c.Request.ParseForm(); err != nil {
			return nil, err
		}
		return &multipart.Form{Value: c.Request.PostForm, File: map[string][]*multipart.FileHeader{}}, nil
	}
	return c.Request.MultipartForm, nil
}
