package forms

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	maxImageSize    = 5 << 20
	maxModelSize    = 50 << 20
	maxDocumentSize = 20 << 20
)

var (
	imageExtensions    = []string{".jpg", ".jpeg", ".png", ".webp"}
	modelExtensions    = []string{".glb"}
	documentExtensions = []string{".pdf", ".doc", ".docx", ".jpg", ".jpeg", ".png"}
)

const (
	AcceptImages    = ".jpg,.jpeg,.png,.webp"
	AcceptModel     = ".glb"
	AcceptDocuments = ".pdf,.doc,.docx,.jpg,.jpeg,.png"
)

// files returns the uploads posted under name, ignoring empty file inputs.
func files(form *multipart.Form, name string) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	out := make([]*multipart.FileHeader, 0, len(form.File[name]))
	for _, fh := range form.File[name] {
		if fh == nil || fh.Filename == "" {
			continue
		}
		out = append(out, fh)
	}
	return out
}

func file(form *multipart.Form, name string) *multipart.FileHeader {
	if list := files(form, name); len(list) > 0 {
		return list[0]
	}
	return nil
}

// checkFiles validates extension and size of every upload under field.
func checkFiles(errs Errors, field string, uploads []*multipart.FileHeader, allowed []string, maxSize int64) {
	for _, fh := range uploads {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if ext == "" || !contains(allowed, ext) {
			errs.Add(field, fmt.Sprintf("%s: unsupported file type (allowed: %s)", fh.Filename, strings.Join(allowed, ", ")))
			return
		}
		if fh.Size > maxSize {
			errs.Add(field, fmt.Sprintf("%s: file too large (max %dMB)", fh.Filename, maxSize>>20))
			return
		}
	}
}

func multipartValues(form *multipart.Form) map[string][]string {
	if form == nil {
		return map[string][]string{}
	}
	return form.Value
}
