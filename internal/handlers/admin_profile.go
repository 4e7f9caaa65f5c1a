package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

// profilePage holds the profile card with its two forms. Errors and posted
// values belong to whichever form was submitted.
type profilePage struct {
	admin         models.Admin
	profileValues url.Values
	profileErrs   forms.Errors
	passwordErrs  forms.Errors
}

func (p profilePage) detail() views.Detail {
	values := p.profileValues
	if values == nil {
		values = forms.ProfileValues(p.admin)
	}
	return views.Detail{
		Heading: "My profile",
		Sections: []views.Section{{Items: []views.Item{
			{Label: "Photo", Image: p.admin.ProfileImage},
			{Label: "Name", Value: p.admin.Name},
			{Label: "Email", Value: p.admin.Email},
			{Label: "Phone", Value: p.admin.Phone},
		}}},
		Forms: []views.FormView{
			{Form: forms.Form{
				Title:     "Edit profile",
				Action:    "/profile",
				Multipart: true,
				Fields:    forms.ProfileLayout(values, p.profileErrs),
			}},
			{Form: forms.Form{
				Title:  "Change password",
				Action: "/password",
				Submit: "Change password",
				Fields: forms.PasswordLayout(p.passwordErrs),
			}},
		},
	}
}

func (d *Deps) renderProfile(c *gin.Context, status int, p profilePage, banner string) {
	d.render(c, status, "detail.html", views.Page{Title: "My profile", Active: "profile", Error: banner, Body: p.detail()})
}

// loadAdmin fetches the profile; on failure the page still renders with a
// banner so the password form stays reachable.
func (d *Deps) loadAdmin(c *gin.Context) (models.Admin, string) {
	admin, err := d.api(c).GetAdminDetail(c.Request.Context())
	if err != nil {
		return models.Admin{}, d.failed(c, "ADMIN_DETAIL", err, "Unable to load your profile.")
	}
	return admin, ""
}

func Profile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		admin, banner := d.loadAdmin(c)
		d.renderProfile(c, http.StatusOK, profilePage{admin: admin}, banner)
	}
}

func UpdateProfile(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, "/profile", session.FlashError, "The upload could not be read.")
			return
		}
		in, errs := forms.DecodeProfile(form)
		if errs.Any() {
			admin, banner := d.loadAdmin(c)
			if s := d.session(c); s != nil && errs["profileImage"] != "" {
				s.AddFlash(session.FlashWarning, errs["profileImage"])
			}
			d.renderProfile(c, http.StatusUnprocessableEntity, profilePage{admin: admin, profileValues: form.Value, profileErrs: errs}, banner)
			return
		}
		res, err := d.api(c).UpdateAdminDetail(c.Request.Context(), in.Input())
		if err != nil {
			admin, _ := d.loadAdmin(c)
			msg := d.failed(c, "UPDATE_PROFILE", err, "Unable to update your profile.")
			d.renderProfile(c, http.StatusOK, profilePage{admin: admin, profileValues: form.Value}, msg)
			return
		}
		if s := d.session(c); s != nil {
			s.SetDisplayName(in.Name)
		}
		d.record(c, "update", "admin-profile", "")
		d.redirect(c, "/profile", session.FlashSuccess, successMessage(res, "Profile updated."))
	}
}

// ChangePassword checks the confirmation locally; the API verifies the old
// password.
func ChangePassword(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, "/profile", session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodePassword(c.Request.PostForm)
		if errs.Any() {
			admin, banner := d.loadAdmin(c)
			d.renderProfile(c, http.StatusUnprocessableEntity, profilePage{admin: admin, passwordErrs: errs}, banner)
			return
		}
		res, err := d.api(c).ResetAdminPassword(c.Request.Context(), in.OldPassword, in.NewPassword)
		if err != nil {
			d.redirect(c, "/profile", session.FlashError, d.failed(c, "RESET_PASSWORD", err, "Unable to change your password."))
			return
		}
		d.record(c, "reset-password", "admin-profile", "")
		d.redirect(c, "/profile", session.FlashSuccess, successMessage(res, "Password changed."))
	}
}
