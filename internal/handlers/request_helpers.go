package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"

	"lenzooadmin/internal/audit"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/middleware"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/richtext"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/supersede"
	"lenzooadmin/internal/views"
)

// Deps is what every screen needs.
type Deps struct {
	API      *lenzoo.Client
	Audit    audit.Recorder
	Editor   richtext.Editor
	Searches *supersede.Group
	Log      *zap.Logger
	PageSize int
	// Ping checks optional backing stores for the health endpoint.
	Ping func(ctx context.Context) error
}

func (d *Deps) session(c *gin.Context) *session.Session {
	return middleware.CurrentSession(c)
}

// api returns the client authenticated as the current admin.
func (d *Deps) api(c *gin.Context) *lenzoo.Client {
	if s := d.session(c); s != nil {
		return d.API.WithToken(s.Token())
	}
	return d.API
}

// render fills the chrome (admin name, flashes, CSRF field) and writes the
// page. Drained flashes are saved before the body is written.
func (d *Deps) render(c *gin.Context, status int, name string, page views.Page) {
	if s := d.session(c); s != nil {
		if s.Token() != "" {
			page.AdminName = s.DisplayName()
			if page.AdminName == "" {
				page.AdminName = "Admin"
			}
		}
		page.Flashes = s.Flashes()
		if len(page.Flashes) > 0 {
			if err := s.Save(c.Request, c.Writer); err != nil {
				d.Log.Warn("[RENDER] session save failed", zap.Error(err))
			}
		}
	}
	c.HTML(status, name, page.WithCSRF(csrf.TemplateField(c.Request)))
}

// redirect flashes message (when set) and sends the browser to target.
func (d *Deps) redirect(c *gin.Context, target, kind, message string) {
	if s := d.session(c); s != nil && message != "" {
		s.AddFlash(kind, message)
		if err := s.Save(c.Request, c.Writer); err != nil {
			d.Log.Warn("[REDIRECT] session save failed", zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, target)
}

// failed logs an upstream failure and returns the text to show for it.
func (d *Deps) failed(c *gin.Context, route string, err error, fallback string) string {
	d.Log.Warn("upstream call failed",
		zap.String("route", route),
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Error(err),
	)
	return lenzoo.Message(err, fallback)
}

// record appends a successful mutation to the audit trail.
func (d *Deps) record(c *gin.Context, action, resource, id string) {
	actor := "admin"
	if s := d.session(c); s != nil && s.DisplayName() != "" {
		actor = s.DisplayName()
	}
	d.Audit.Record(c.Request.Context(), models.AuditEntry{
		Actor:      actor,
		Action:     action,
		Resource:   resource,
		ResourceID: id,
		RequestID:  middleware.GetRequestID(c),
	})
}

// successMessage prefers the server's own wording.
func successMessage(res lenzoo.Result, fallback string) string {
	if msg := strings.TrimSpace(res.Message); msg != "" {
		return msg
	}
	return fallback
}

// normalizeRichText runs stored or posted HTML through the editor.
func (d *Deps) normalizeRichText(html string) string {
	out, err := richtext.Normalize(d.Editor, html)
	if err != nil {
		d.Log.Warn("[RICHTEXT] normalize failed, falling back to sanitize", zap.Error(err))
		return richtext.Sanitize(html)
	}
	return out
}

func wantsPreview(c *gin.Context) bool {
	return c.PostForm("preview") != ""
}

// notFound is failed for list lookups, where a missing record is not an
// upstream error.
func (d *Deps) notFound(c *gin.Context, route string, err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return d.failed(c, route, err, fallback)
}

// plainText flattens stored rich text for table cells.
func (d *Deps) plainText(html string) string {
	doc, err := d.Editor.Load(html)
	if err != nil {
		return ""
	}
	return doc.PlainText()
}
