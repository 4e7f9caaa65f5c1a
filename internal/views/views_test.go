package views

import (
	"bytes"
	"html/template"
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/pagination"
	"lenzooadmin/internal/session"
)

const csrfField = template.HTML(`<input type="hidden" name="csrf_token" value="tok">`)

func render(t *testing.T, name string, page Page) string {
	t.Helper()
	tmpl, err := Templates("https://files.example.com/uploads/")
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, page.WithCSRF(csrfField)))
	return buf.String()
}

func TestFileURL(t *testing.T) {
	assert.Equal(t, "https://f.example/a/b.png", FileURL("https://f.example/", "/a/b.png"))
	assert.Equal(t, "https://cdn.example/x.png", FileURL("https://f.example", "https://cdn.example/x.png"))
	assert.Equal(t, "", FileURL("https://f.example", " "))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "-", formatDate(time.Time{}))
	assert.Equal(t, "05 Mar 2026", formatDate(time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestSafeHTMLSanitizes(t *testing.T) {
	assert.Equal(t, template.HTML("<p>hi</p>"), safeHTML(`<p>hi<script>x()</script></p>`))
}

func TestListRendersRowsAndPager(t *testing.T) {
	out := render(t, "list.html", Page{
		Title:     "Products",
		Active:    "products",
		AdminName: "Ada",
		Flashes:   []session.Flash{{Type: session.FlashSuccess, Message: "Product deleted"}},
		Body: Table{
			Heading: "Products",
			Columns: []string{"Image", "Name", ""},
			BaseURL: "/products",
			Search:  true,
			Query:   "ray",
			Pager:   pagination.NewView(2, 7, 65, "ray"),
			Rows: []Row{{
				Cells: []Cell{{Image: "p1.png"}, {Text: "Aviator", Link: "/products/p1"}},
				Actions: []Action{
					{Label: "Edit", URL: "/products/p1/edit"},
					{Label: "Delete", URL: "/products/p1/delete"},
					{Label: "Move", URL: "/testimonials/t1/index", Method: "POST", Input: &Input{Name: "newIndex", Type: "number", Value: "3"}},
				},
			}},
		},
	})

	assert.Contains(t, out, "Product deleted")
	assert.Contains(t, out, `src="https://files.example.com/uploads/p1.png"`)
	assert.Contains(t, out, `href="/products/p1"`)
	assert.Contains(t, out, `name="newIndex"`)
	assert.Contains(t, out, `value="tok"`)
	assert.Contains(t, out, `class="active"`)
	assert.Contains(t, out, "65 total")
	assert.NotContains(t, out, "No records found")
}

func TestListEmptyAndError(t *testing.T) {
	out := render(t, "list.html", Page{Title: "FAQs", AdminName: "Ada", Body: Table{Heading: "FAQs", BaseURL: "/faqs"}})
	assert.Contains(t, out, "No records found")

	out = render(t, "list.html", Page{Title: "FAQs", AdminName: "Ada", Body: Table{Heading: "FAQs", Error: "Unable to load FAQs"}})
	assert.Contains(t, out, "Unable to load FAQs")
	assert.NotContains(t, out, "No records found")
}

func TestFormRendersFieldsAndPreview(t *testing.T) {
	fields := forms.MembershipLayout(map[string][]string{"planType": {"monthly"}}, forms.Errors{"price": "must be greater than 0"})
	out := render(t, "form.html", Page{Title: "Membership", AdminName: "Ada", Body: FormView{
		Form:    forms.Form{Title: "Add membership", Action: "/memberships", Fields: fields},
		Preview: "<p>shown</p>",
	}})

	assert.Contains(t, out, `name="durationInDays" value="30" disabled`)
	assert.Contains(t, out, "must be greater than 0")
	assert.Contains(t, out, "<p>shown</p>")
	assert.Contains(t, out, `value="tok"`)
}

func TestDetailConfirmLoginDashboard(t *testing.T) {
	out := render(t, "detail.html", Page{Title: "User", AdminName: "Ada", Body: Detail{
		Heading:  "Jane Doe",
		BackURL:  "/users",
		Sections: []Section{{Title: "Profile", Items: []Item{{Label: "Email", Value: "jane@example.com"}, {Label: "About", HTML: "<b>hi</b>"}}}},
	}})
	assert.Contains(t, out, "jane@example.com")
	assert.Contains(t, out, "<b>hi</b>")

	out = render(t, "confirm.html", Page{Title: "Delete", AdminName: "Ada", Body: Confirm{Heading: "Delete FAQ", Message: "Sure?", Action: "/faqs/f1/delete", Cancel: "/faqs"}})
	assert.Contains(t, out, `action="/faqs/f1/delete"`)
	assert.Contains(t, out, `value="tok"`)

	out = render(t, "confirm.html", Page{Title: "Remove", AdminName: "Ada", Body: Confirm{Action: "/research/r1/documents/delete", Cancel: "/research/r1", Hidden: map[string]string{"fileName": "uploads/a.pdf"}}})
	assert.Contains(t, out, `name="fileName" value="uploads/a.pdf"`)

	out = render(t, "login.html", Page{Title: "Login", Body: Login{Email: "a@b.c"}})
	assert.Contains(t, out, `value="a@b.c"`)
	assert.NotContains(t, out, "Log out")

	out = render(t, "dashboard.html", Page{Title: "Dashboard", AdminName: "Ada", Body: Dashboard{
		Filter:  "monthly",
		Filters: []string{"weekly", "monthly"},
		Cards:   []Card{{Title: "Counts", Error: "Unable to load counts"}, {Title: "Users", Stats: []Stat{{Label: "Total", Value: "12"}}}},
	}})
	assert.Contains(t, out, "Unable to load counts")
	assert.Contains(t, out, "<strong>12</strong>")
}

func TestStaticServesStylesheet(t *testing.T) {
	b, err := fs.ReadFile(Static(), "admin.css")
	require.NoError(t, err)
	assert.Contains(t, string(b), ".sidebar")
}
