package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

// formScreen is one add/edit screen.
type formScreen struct {
	title   string
	active  string
	action  string
	cancel  string
	upload  bool
	submit  string
	preview string
	err     string
}

func (d *Deps) renderForm(c *gin.Context, status int, fs formScreen, fields []forms.Field) {
	d.render(c, status, "form.html", views.Page{
		Title:  fs.title,
		Active: fs.active,
		Error:  fs.err,
		Body: views.FormView{
			Form: forms.Form{
				Title:     fs.title,
				Action:    fs.action,
				Cancel:    fs.cancel,
				Submit:    fs.submit,
				Multipart: fs.upload,
				Fields:    fields,
			},
			Preview: fs.preview,
		},
	})
}

// invalid re-renders a rejected submission with inline errors. Rejected
// uploads also raise a warning toast.
func (d *Deps) invalid(c *gin.Context, fs formScreen, errs forms.Errors, fields []forms.Field) {
	if s := d.session(c); s != nil {
		for _, field := range []string{forms.FieldImages, forms.FieldModel, "documents", "image", "profileImage"} {
			if msg, ok := errs[field]; ok {
				s.AddFlash(session.FlashWarning, msg)
			}
		}
	}
	d.renderForm(c, http.StatusUnprocessableEntity, fs, fields)
}
