package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

func LoginPage(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := d.session(c); s != nil && s.Token() != "" {
			c.Redirect(http.StatusFound, "/")
			return
		}
		d.render(c, http.StatusOK, "login.html", views.Page{Title: "Log in", Body: views.Login{}})
	}
}

// Login exchanges credentials for the API token. Nothing is stored unless
// the API issues a token.
func Login(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, "/login", session.FlashError, "Invalid login form.")
			return
		}
		in, errs := forms.DecodeLogin(c.Request.PostForm)
		if errs.Any() {
			d.render(c, http.StatusUnprocessableEntity, "login.html", views.Page{
				Title: "Log in",
				Body: views.Login{
					Email:         in.Email,
					EmailError:    errs["email"],
					PasswordError: errs["password"],
				},
			})
			return
		}

		res, err := d.API.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			msg := d.failed(c, "LOGIN", err, "Unable to log in. Please try again.")
			d.redirect(c, "/login", session.FlashError, msg)
			return
		}

		s := d.session(c)
		s.SetToken(res.Token, res.Name)
		d.Log.Info("[LOGIN] admin logged in", zap.String("sid", s.ID()))
		d.redirect(c, "/", session.FlashSuccess, successMessage(lenzoo.Result{Message: res.Message}, "Welcome back."))
	}
}

// Logout drops the token and display name.
func Logout(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s := d.session(c); s != nil {
			s.Clear()
		}
		d.redirect(c, "/login", session.FlashSuccess, "You have been logged out.")
	}
}
