package lenzoo

import (
	"context"
	"net/http"
	"strings"

	"lenzooadmin/internal/models"
)

type LoginResult struct {
	Token   string `json:"token"`
	Message string `json:"message"`
	Name    string `json:"name,omitempty"`
}

// Login exchanges admin credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return LoginResult{}, ValidationError("email and password are required")
	}

	var res LoginResult
	err := c.call(ctx, request{
		method:   http.MethodPost,
		endpoint: "loginAdmin",
		json:     map[string]string{"email": email, "password": password},
	}, &res)
	if err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, &APIError{Endpoint: "loginAdmin", StatusCode: http.StatusOK, Message: firstNonEmpty(res.Message, "login response carried no token")}
	}
	return res, nil
}

func (c *Client) GetAdminDetail(ctx context.Context) (models.Admin, error) {
	return getOne[models.Admin](ctx, c, "getAdminDetail", nil, "admin")
}

type AdminUpdate struct {
	Name  string
	Email string
	Phone string
	Image *Upload
}

func (c *Client) UpdateAdminDetail(ctx context.Context, in AdminUpdate) (Result, error) {
	form := NewMultipart().
		Field("name", in.Name).
		Field("email", in.Email).
		Field("phone", in.Phone)
	if in.Image != nil {
		form.File("profileImage", *in.Image)
	}
	return c.writeForm(ctx, "updateAdminDetail", form)
}

func (c *Client) ResetAdminPassword(ctx context.Context, oldPassword, newPassword string) (Result, error) {
	return c.write(ctx, http.MethodPost, "resetAdminPassword", map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
