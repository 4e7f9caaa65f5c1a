package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

func ListTestimonials(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "testimonials", (*lenzoo.Client).ListTestimonials)
		if d.superseded(c, "testimonials", err) {
			return
		}
		table := views.Table{
			Heading:  "Testimonials",
			Columns:  []string{"", "Name", "Role", "Message", "Position", ""},
			BaseURL:  "/testimonials",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/testimonials/new",
			NewLabel: "Add testimonial",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_TESTIMONIALS", err, "Unable to load testimonials.")
		} else {
			table.Pager = pager(res, params)
			for _, t := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Image: t.Image},
						{Text: t.Name},
						{Text: t.Role},
						{Text: excerpt(t.Message, 80)},
						{Text: strconv.Itoa(t.Index)},
					},
					Actions: []views.Action{
						{
							Label:  "Move",
							URL:    "/testimonials/" + t.ID + "/index",
							Method: http.MethodPost,
							Hidden: map[string]string{"currentIndex": strconv.Itoa(t.Index)},
							Input:  &views.Input{Name: "newIndex", Type: "number", Value: strconv.Itoa(t.Index)},
						},
						{Label: "Edit", URL: "/testimonials/" + t.ID + "/edit"},
						deleteAction(deleteTestimonial, t.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Testimonials", "testimonials", table))
	}
}

// ReorderTestimonial moves a testimonial. The list is refetched afterwards
// either way, so a rejected move shows the server's position again.
// An unchanged position makes no call.
func ReorderTestimonial(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		index, err := forms.ParseIndex(c.PostForm("newIndex"))
		if err != nil {
			d.redirect(c, "/testimonials", session.FlashError, "Position must be a whole number, 0 or more.")
			return
		}
		if current, err := forms.ParseIndex(c.PostForm("currentIndex")); err == nil && current == index {
			c.Redirect(http.StatusSeeOther, "/testimonials")
			return
		}
		res, err := d.api(c).UpdateTestimonialIndex(c.Request.Context(), id, index)
		if err != nil {
			d.redirect(c, "/testimonials", session.FlashError, d.failed(c, "TESTIMONIAL_INDEX", err, "Unable to move the testimonial."))
			return
		}
		d.record(c, "reorder", "testimonial", id)
		d.redirect(c, "/testimonials", session.FlashSuccess, successMessage(res, "Testimonial moved."))
	}
}

func testimonialScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add testimonial", active: "testimonials", action: "/testimonials", cancel: "/testimonials", upload: true}
	}
	return formScreen{title: "Edit testimonial", active: "testimonials", action: "/testimonials/" + id, cancel: "/testimonials", upload: true}
}

func NewTestimonialForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, testimonialScreen(""), forms.TestimonialLayout(url.Values{}, nil))
	}
}

func EditTestimonialForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		t, found, err := findInList(c.Request.Context(), d.api(c).ListTestimonials, func(t models.Testimonial) bool { return t.ID == id })
		if err != nil || !found {
			d.redirect(c, "/testimonials", session.FlashError, d.notFound(c, "EDIT_TESTIMONIAL", err, "Testimonial not found."))
			return
		}
		d.renderForm(c, http.StatusOK, testimonialScreen(id), forms.TestimonialLayout(forms.TestimonialValues(t), nil))
	}
}

func SaveTestimonial(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := testimonialScreen(id)
		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, "/testimonials", session.FlashError, "The upload could not be read.")
			return
		}
		in, errs := forms.DecodeTestimonial(form)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.TestimonialLayout(form.Value, errs))
			return
		}
		var res lenzoo.Result
		if id == "" {
			res, err = d.api(c).AddTestimonial(c.Request.Context(), in.Input(""))
		} else {
			res, err = d.api(c).UpdateTestimonial(c.Request.Context(), in.Input(id))
		}
		if err != nil {
			fs.err = d.failed(c, "SAVE_TESTIMONIAL", err, "Unable to save the testimonial.")
			d.renderForm(c, http.StatusOK, fs, forms.TestimonialLayout(form.Value, nil))
			return
		}
		d.record(c, saveAction(id), "testimonial", id)
		d.redirect(c, "/testimonials", session.FlashSuccess, successMessage(res, "Testimonial saved."))
	}
}

func ListResearch(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "research", (*lenzoo.Client).ListResearch)
		if d.superseded(c, "research", err) {
			return
		}
		table := views.Table{
			Heading:  "Research analysis",
			Columns:  []string{"Title", "Service", "Documents", "Published", ""},
			BaseURL:  "/research",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/research/new",
			NewLabel: "Add article",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_RESEARCH", err, "Unable to load research articles.")
		} else {
			table.Pager = pager(res, params)
			for _, r := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: r.Title, Link: "/research/" + r.ID},
						{Text: r.ServiceChoice},
						{Text: strconv.Itoa(len(r.Documents))},
						{Text: r.CreatedAt.Format("02 Jan 2006")},
					},
					Actions: []views.Action{
						{Label: "View", URL: "/research/" + r.ID},
						{Label: "Edit", URL: "/research/" + r.ID + "/edit"},
						deleteAction(deleteResearch, r.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Research analysis", "research", table))
	}
}

func ResearchDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		r, err := d.api(c).GetResearch(c.Request.Context(), c.Param("id"))
		if err != nil {
			d.redirect(c, "/research", session.FlashError, d.failed(c, "RESEARCH_DETAIL", err, "Unable to load the article."))
			return
		}
		docs := views.Table{Heading: "Documents", Columns: []string{"File", ""}, Empty: "No documents attached"}
		for _, name := range r.Documents {
			docs.Rows = append(docs.Rows, views.Row{
				Cells: []views.Cell{{Text: documentName(name), File: name}},
				Actions: []views.Action{{
					Label: "Remove",
					URL:   "/research/" + r.ID + "/documents/delete?" + url.Values{"fileName": {name}}.Encode(),
					Style: "danger",
				}},
			})
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{
			Title:  r.Title,
			Active: "research",
			Body: views.Detail{
				Heading: r.Title,
				BackURL: "/research",
				Actions: []views.Action{
					{Label: "Edit", URL: "/research/" + r.ID + "/edit"},
					deleteAction(deleteResearch, r.ID),
				},
				Sections: []views.Section{{Items: []views.Item{
					{Label: "Service", Value: r.ServiceChoice},
					{Label: "Published", Value: r.CreatedAt.Format("02 Jan 2006")},
					{Label: "Description", HTML: d.normalizeRichText(r.Description)},
				}}},
				Tables: []views.Table{docs},
			},
		})
	}
}

// ConfirmResearchDocument asks before a file is detached; it never calls the API.
func ConfirmResearchDocument(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		back := "/research/" + id
		fileName := strings.TrimSpace(c.Query("fileName"))
		if fileName == "" {
			d.redirect(c, back, session.FlashError, "No document selected.")
			return
		}
		d.render(c, http.StatusOK, "confirm.html", views.Page{
			Title:  "Remove document",
			Active: "research",
			Body: views.Confirm{
				Heading: "Remove document",
				Message: documentName(fileName) + " will be detached from the article. Continue?",
				Action:  back + "/documents/delete",
				Cancel:  back,
				Hidden:  map[string]string{"fileName": fileName},
			},
		})
	}
}

// DeleteResearchDocument detaches one file and returns to the article,
// which is fetched again.
func DeleteResearchDocument(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		back := "/research/" + id
		fileName := strings.TrimSpace(c.PostForm("fileName"))
		if fileName == "" {
			d.redirect(c, back, session.FlashError, "No document selected.")
			return
		}
		res, err := d.api(c).DeleteResearchDocument(c.Request.Context(), id, fileName)
		if err != nil {
			d.redirect(c, back, session.FlashError, d.failed(c, "DELETE_RESEARCH_DOCUMENT", err, "Unable to remove the document."))
			return
		}
		d.record(c, "delete-document", "research", id)
		d.redirect(c, back, session.FlashSuccess, successMessage(res, "Document removed."))
	}
}

func researchScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add article", active: "research", action: "/research", cancel: "/research", upload: true}
	}
	return formScreen{title: "Edit article", active: "research", action: "/research/" + id, cancel: "/research/" + id, upload: true}
}

func NewResearchForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, researchScreen(""), forms.ResearchLayout(url.Values{}, nil))
	}
}

func EditResearchForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		r, err := d.api(c).GetResearch(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/research", session.FlashError, d.failed(c, "EDIT_RESEARCH", err, "Unable to load the article."))
			return
		}
		r.Description = d.normalizeRichText(r.Description)
		d.renderForm(c, http.StatusOK, researchScreen(id), forms.ResearchLayout(forms.ResearchValues(r), nil))
	}
}

func SaveResearch(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := researchScreen(id)
		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, "/research", session.FlashError, "The upload could not be read.")
			return
		}
		if wantsPreview(c) {
			fs.preview = d.normalizeRichText(url.Values(form.Value).Get("description"))
			d.renderForm(c, http.StatusOK, fs, forms.ResearchLayout(form.Value, nil))
			return
		}
		in, errs := forms.DecodeResearch(form)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.ResearchLayout(form.Value, errs))
			return
		}
		in.Description = d.normalizeRichText(in.Description)
		var res lenzoo.Result
		if id == "" {
			res, err = d.api(c).AddResearch(c.Request.Context(), in.Input(""))
		} else {
			res, err = d.api(c).UpdateResearch(c.Request.Context(), in.Input(id))
		}
		if err != nil {
			fs.err = d.failed(c, "SAVE_RESEARCH", err, "Unable to save the article.")
			d.renderForm(c, http.StatusOK, fs, forms.ResearchLayout(form.Value, nil))
			return
		}
		d.record(c, saveAction(id), "research", id)
		d.redirect(c, "/research", session.FlashSuccess, successMessage(res, "Article saved."))
	}
}

var policyTitles = map[string]string{
	models.PolicyAbout: "About us",
	models.PolicyTerms: "Terms & conditions",
}

func policyScreen(policyType string) formScreen {
	return formScreen{
		title:  policyTitles[policyType],
		active: policyType,
		action: "/policies/" + policyType,
		cancel: "/",
		upload: true,
	}
}

// EditPolicy loads the singleton content. A policy that was never written
// opens an empty editor; saving creates it.
func EditPolicy(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		policyType := c.Param("type")
		if !models.IsPolicyType(policyType) {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		fs := policyScreen(policyType)
		values := url.Values{}
		p, err := d.api(c).GetPolicy(c.Request.Context(), policyType)
		switch {
		case err == nil:
			values.Set("content", d.normalizeRichText(p.Content))
			if p.Image != "" {
				fs.title += " (image attached)"
			}
		case lenzoo.IsNotFound(err):
		default:
			fs.err = d.failed(c, "GET_POLICY", err, "Unable to load the current content.")
		}
		d.renderForm(c, http.StatusOK, fs, forms.PolicyLayout(values, nil))
	}
}

func SavePolicy(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		policyType := c.Param("type")
		if !models.IsPolicyType(policyType) {
			c.String(http.StatusNotFound, "404 page not found")
			return
		}
		fs := policyScreen(policyType)
		form, err := parseUpload(c)
		if err != nil {
			d.redirect(c, fs.action, session.FlashError, "The upload could not be read.")
			return
		}
		if wantsPreview(c) {
			fs.preview = d.normalizeRichText(url.Values(form.Value).Get("content"))
			d.renderForm(c, http.StatusOK, fs, forms.PolicyLayout(form.Value, nil))
			return
		}
		in, errs := forms.DecodePolicy(policyType, form)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.PolicyLayout(form.Value, errs))
			return
		}
		res, err := d.api(c).UpdatePolicy(c.Request.Context(), policyType, d.normalizeRichText(in.Content), in.Upload())
		if err != nil {
			fs.err = d.failed(c, "UPDATE_POLICY", err, "Unable to save the content.")
			d.renderForm(c, http.StatusOK, fs, forms.PolicyLayout(form.Value, nil))
			return
		}
		d.record(c, "update", "policy", policyType)
		d.redirect(c, fs.action, session.FlashSuccess, successMessage(res, policyTitles[policyType]+" saved."))
	}
}

func ListFAQs(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "faqs", (*lenzoo.Client).ListFAQs)
		if d.superseded(c, "faqs", err) {
			return
		}
		table := views.Table{
			Heading:  "FAQs",
			Columns:  []string{"Question", "Answer", "Status", ""},
			BaseURL:  "/faqs",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/faqs/new",
			NewLabel: "Add FAQ",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_FAQS", err, "Unable to load FAQs.")
		} else {
			table.Pager = pager(res, params)
			for _, f := range res.Items {
				status, toggle := "Inactive", "Activate"
				if f.IsActive {
					status, toggle = "Active", "Deactivate"
				}
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: f.Question},
						{Text: excerpt(d.plainText(f.Answer), 80)},
						{Text: status, Badge: strings.ToLower(status)},
					},
					Actions: []views.Action{
						{
							Label:  toggle,
							URL:    "/faqs/" + f.ID + "/active",
							Method: http.MethodPost,
							Hidden: map[string]string{"active": strconv.FormatBool(!f.IsActive)},
						},
						{Label: "Edit", URL: "/faqs/" + f.ID + "/edit"},
						deleteAction(deleteFAQ, f.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("FAQs", "faqs", table))
	}
}

// ToggleFAQ flips isActive without touching the question or answer.
func ToggleFAQ(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		active, err := strconv.ParseBool(c.PostForm("active"))
		if err != nil {
			d.redirect(c, "/faqs", session.FlashError, "Invalid status.")
			return
		}
		client := d.api(c)
		faq, err := client.GetFAQ(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/faqs", session.FlashError, d.failed(c, "TOGGLE_FAQ", err, "Unable to load the FAQ."))
			return
		}
		res, err := client.SetFAQActive(c.Request.Context(), faq, active)
		if err != nil {
			d.redirect(c, "/faqs", session.FlashError, d.failed(c, "TOGGLE_FAQ", err, "Unable to change the FAQ status."))
			return
		}
		d.record(c, "toggle-active", "faq", id)
		d.redirect(c, "/faqs", session.FlashSuccess, successMessage(res, "FAQ status updated."))
	}
}

func faqScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add FAQ", active: "faqs", action: "/faqs", cancel: "/faqs"}
	}
	return formScreen{title: "Edit FAQ", active: "faqs", action: "/faqs/" + id, cancel: "/faqs"}
}

func NewFAQForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, faqScreen(""), forms.FAQLayout(url.Values{"isActive": {"true"}}, nil))
	}
}

func EditFAQForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		f, err := d.api(c).GetFAQ(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/faqs", session.FlashError, d.failed(c, "EDIT_FAQ", err, "Unable to load the FAQ."))
			return
		}
		f.Answer = d.normalizeRichText(f.Answer)
		d.renderForm(c, http.StatusOK, faqScreen(id), forms.FAQLayout(forms.FAQValues(f), nil))
	}
}

func SaveFAQ(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := faqScreen(id)
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, "/faqs", session.FlashError, "Invalid form.")
			return
		}
		values := c.Request.PostForm
		if wantsPreview(c) {
			fs.preview = d.normalizeRichText(values.Get("answer"))
			d.renderForm(c, http.StatusOK, fs, forms.FAQLayout(values, nil))
			return
		}
		in, errs := forms.DecodeFAQ(values)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.FAQLayout(values, errs))
			return
		}
		in.Answer = d.normalizeRichText(in.Answer)
		var (
			res lenzoo.Result
			err error
		)
		if id == "" {
			res, err = d.api(c).AddFAQ(c.Request.Context(), in.Input(""))
		} else {
			res, err = d.api(c).UpdateFAQ(c.Request.Context(), in.Input(id))
		}
		if err != nil {
			fs.err = d.failed(c, "SAVE_FAQ", err, "Unable to save the FAQ.")
			d.renderForm(c, http.StatusOK, fs, forms.FAQLayout(values, nil))
			return
		}
		d.record(c, saveAction(id), "faq", id)
		d.redirect(c, "/faqs", session.FlashSuccess, successMessage(res, "FAQ saved."))
	}
}

func documentName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

func excerpt(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
