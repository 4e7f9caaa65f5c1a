package forms

import (
	"mime/multipart"
	"net/url"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
)

type Login struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

func DecodeLogin(values url.Values) (Login, Errors) {
	l := Login{Email: text(values, "email"), Password: values.Get("password")}
	return l, check(l)
}

type Profile struct {
	Name  string                `form:"name" validate:"required,max=100"`
	Email string                `form:"email" validate:"required,email"`
	Phone string                `form:"phone" validate:"max=20"`
	Image *multipart.FileHeader `form:"-"`
}

func DecodeProfile(form *multipart.Form) (Profile, Errors) {
	values := multipartValues(form)
	p := Profile{
		Name:  text(values, "name"),
		Email: text(values, "email"),
		Phone: text(values, "phone"),
		Image: file(form, "profileImage"),
	}
	errs := check(p)
	if p.Image != nil {
		checkFiles(errs, "profileImage", []*multipart.FileHeader{p.Image}, imageExtensions, maxImageSize)
	}
	return p, errs
}

func (p Profile) Input() lenzoo.AdminUpdate {
	in := lenzoo.AdminUpdate{Name: p.Name, Email: p.Email, Phone: p.Phone}
	if p.Image != nil {
		up := lenzoo.FileHeaderUpload(p.Image)
		in.Image = &up
	}
	return in
}

func ProfileValues(a models.Admin) url.Values {
	return url.Values{"name": {a.Name}, "email": {a.Email}, "phone": {a.Phone}}
}

func ProfileLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
		{Name: "phone", Label: "Phone", Kind: KindText},
		{Name: "profileImage", Label: "Profile image", Kind: KindFile, Accept: AcceptImages},
	})
}

type Password struct {
	OldPassword     string `form:"oldPassword" validate:"required"`
	NewPassword     string `form:"newPassword" validate:"required,min=6,nefield=OldPassword"`
	ConfirmPassword string `form:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

func DecodePassword(values url.Values) (Password, Errors) {
	p := Password{
		OldPassword:     values.Get("oldPassword"),
		NewPassword:     values.Get("newPassword"),
		ConfirmPassword: values.Get("confirmPassword"),
	}
	return p, check(p)
}

func PasswordLayout(errs Errors) []Field {
	return fill(nil, errs, []Field{
		{Name: "oldPassword", Label: "Current password", Kind: KindPassword, Required: true},
		{Name: "newPassword", Label: "New password", Kind: KindPassword, Required: true},
		{Name: "confirmPassword", Label: "Confirm new password", Kind: KindPassword, Required: true},
	})
}

type Reply struct {
	Reply string `form:"reply" validate:"required,max=5000"`
}

func DecodeReply(values url.Values) (Reply, Errors) {
	r := Reply{Reply: text(values, "reply")}
	return r, check(r)
}

type OrderStatus struct {
	OrderID string `form:"orderId" validate:"required"`
	Status  string `form:"status" validate:"required,option=orderStatus"`
}

func DecodeOrderStatus(values url.Values) (OrderStatus, Errors) {
	o := OrderStatus{OrderID: text(values, "orderId"), Status: text(values, "status")}
	return o, check(o)
}

func ReplyLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "reply", Label: "Reply", Kind: KindTextarea, Required: true},
	})
}
