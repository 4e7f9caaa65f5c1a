// Package views holds the console's embedded templates and the models they
// render.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
	"time"

	"lenzooadmin/internal/richtext"
)

//go:embed templates/*.html static
var files embed.FS

// Static is the stylesheet directory served under /static.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Templates parses every embedded template with the console's funcs.
func Templates(fileBaseURL string) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(fileBaseURL)).ParseFS(files, "templates/*.html")
}

func FuncMap(fileBaseURL string) template.FuncMap {
	return template.FuncMap{
		"fileURL":    func(path string) string { return FileURL(fileBaseURL, path) },
		"safeHTML":   safeHTML,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"join":       strings.Join,
		"formatDate": formatDate,
		"money":      func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"navItem": func(p Page, key, url, label string) NavLink {
			return NavLink{URL: url, Label: label, Active: p.Active == key}
		},
	}
}

// FileURL resolves a stored file name against the file host. Absolute URLs
// pass through.
func FileURL(base, path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// safeHTML marks stored rich text as trusted after sanitizing it again.
func safeHTML(s string) template.HTML {
	return template.HTML(richtext.Sanitize(s))
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02 Jan 2006")
}
