package forms

import (
	"mime/multipart"
	"net/url"
	"strconv"
	"strings"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
)

type Testimonial struct {
	Name    string                `form:"name" validate:"required,max=100"`
	Role    string                `form:"role" validate:"max=100"`
	Message string                `form:"message" validate:"required"`
	Image   *multipart.FileHeader `form:"-"`
}

func DecodeTestimonial(form *multipart.Form) (Testimonial, Errors) {
	values := multipartValues(form)
	t := Testimonial{
		Name:    text(values, "name"),
		Role:    text(values, "role"),
		Message: text(values, "message"),
		Image:   file(form, "image"),
	}
	errs := check(t)
	if t.Image != nil {
		checkFiles(errs, "image", []*multipart.FileHeader{t.Image}, imageExtensions, maxImageSize)
	}
	return t, errs
}

func (t Testimonial) Input(id string) lenzoo.TestimonialInput {
	in := lenzoo.TestimonialInput{ID: id, Name: t.Name, Role: t.Role, Message: t.Message}
	if t.Image != nil {
		up := lenzoo.FileHeaderUpload(t.Image)
		in.Image = &up
	}
	return in
}

func TestimonialValues(t models.Testimonial) url.Values {
	return url.Values{"name": {t.Name}, "role": {t.Role}, "message": {t.Message}}
}

func TestimonialLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "name", Label: "Name", Kind: KindText, Required: true},
		{Name: "role", Label: "Role", Kind: KindText},
		{Name: "message", Label: "Message", Kind: KindTextarea, Required: true},
		{Name: "image", Label: "Photo", Kind: KindFile, Accept: AcceptImages},
	})
}

// ParseIndex reads a testimonial display position.
func ParseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, Errors{"newIndex": "must be a whole number, 0 or more"}
	}
	return n, nil
}

// Research descriptions are rich text; sanitizing is left to the caller.
type Research struct {
	Title         string                  `form:"title" validate:"required,max=200"`
	Description   string                  `form:"description" validate:"required"`
	ServiceChoice string                  `form:"serviceChoice"`
	Documents     []*multipart.FileHeader `form:"-"`
}

func DecodeResearch(form *multipart.Form) (Research, Errors) {
	values := multipartValues(form)
	r := Research{
		Title:         text(values, "title"),
		Description:   text(values, "description"),
		ServiceChoice: text(values, "serviceChoice"),
		Documents:     files(form, "documents"),
	}
	errs := check(r)
	checkFiles(errs, "documents", r.Documents, documentExtensions, maxDocumentSize)
	return r, errs
}

func (r Research) Input(id string) lenzoo.ResearchInput {
	in := lenzoo.ResearchInput{ID: id, Title: r.Title, Description: r.Description, ServiceChoice: r.ServiceChoice}
	for _, fh := range r.Documents {
		in.Documents = append(in.Documents, lenzoo.FileHeaderUpload(fh))
	}
	return in
}

func ResearchValues(r models.ResearchAnalysis) url.Values {
	return url.Values{"title": {r.Title}, "description": {r.Description}, "serviceChoice": {r.ServiceChoice}}
}

func ResearchLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "title", Label: "Title", Kind: KindText, Required: true},
		{Name: "serviceChoice", Label: "Service", Kind: KindText},
		{Name: "description", Label: "Description", Kind: KindRichText, Required: true},
		{Name: "documents", Label: "Documents", Kind: KindFile, Multiple: true, Accept: AcceptDocuments},
	})
}

type Policy struct {
	Type    string                `form:"type" validate:"required,option=policyType"`
	Content string                `form:"content" validate:"required"`
	Image   *multipart.FileHeader `form:"-"`
}

func DecodePolicy(policyType string, form *multipart.Form) (Policy, Errors) {
	values := multipartValues(form)
	p := Policy{Type: policyType, Content: text(values, "content"), Image: file(form, "image")}
	errs := check(p)
	if p.Image != nil {
		checkFiles(errs, "image", []*multipart.FileHeader{p.Image}, imageExtensions, maxImageSize)
	}
	return p, errs
}

func (p Policy) Upload() *lenzoo.Upload {
	if p.Image == nil {
		return nil
	}
	up := lenzoo.FileHeaderUpload(p.Image)
	return &up
}

func PolicyLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "content", Label: "Content", Kind: KindRichText, Required: true},
		{Name: "image", Label: "Image", Kind: KindFile, Accept: AcceptImages},
	})
}

type FAQ struct {
	Question string `form:"question" validate:"required,max=500"`
	Answer   string `form:"answer" validate:"required"`
	IsActive bool   `form:"isActive"`
}

func DecodeFAQ(values url.Values) (FAQ, Errors) {
	f := FAQ{
		Question: text(values, "question"),
		Answer:   text(values, "answer"),
		IsActive: isTruthy(text(values, "isActive")),
	}
	return f, check(f)
}

func (f FAQ) Input(id string) lenzoo.FAQInput {
	return lenzoo.FAQInput{ID: id, Question: f.Question, Answer: f.Answer, IsActive: f.IsActive}
}

func FAQValues(f models.FAQ) url.Values {
	return url.Values{"question": {f.Question}, "answer": {f.Answer}, "isActive": {strconv.FormatBool(f.IsActive)}}
}

func FAQLayout(values url.Values, errs Errors) []Field {
	return fill(values, errs, []Field{
		{Name: "question", Label: "Question", Kind: KindText, Required: true},
		{Name: "answer", Label: "Answer", Kind: KindRichText, Required: true},
		{Name: "isActive", Label: "Active", Kind: KindCheckbox},
	})
}
