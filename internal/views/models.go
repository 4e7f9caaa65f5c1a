package views

import (
	"html/template"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/pagination"
	"lenzooadmin/internal/session"
)

// Page is the data every screen receives.
type Page struct {
	Title     string
	Active    string
	AdminName string
	Flashes   []session.Flash
	CSRFField template.HTML
	Error     string
	Body      any
}

// WithCSRF stamps the request's CSRF field onto every form the body renders.
func (p Page) WithCSRF(field template.HTML) Page {
	p.CSRFField = field
	switch b := p.Body.(type) {
	case Table:
		p.Body = b.withCSRF(field)
	case Detail:
		b.CSRF = field
		b.Actions = stampActions(b.Actions, field)
		tables := make([]Table, len(b.Tables))
		for i, t := range b.Tables {
			tables[i] = t.withCSRF(field)
		}
		b.Tables = tables
		formViews := make([]FormView, len(b.Forms))
		for i, f := range b.Forms {
			f.CSRF = field
			formViews[i] = f
		}
		b.Forms = formViews
		p.Body = b
	case FormView:
		b.CSRF = field
		p.Body = b
	case Confirm:
		b.CSRF = field
		p.Body = b
	}
	return p
}

func (t Table) withCSRF(field template.HTML) Table {
	t.CSRF = field
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		r.Actions = stampActions(r.Actions, field)
		rows[i] = r
	}
	t.Rows = rows
	return t
}

func stampActions(actions []Action, field template.HTML) []Action {
	out := make([]Action, len(actions))
	for i, a := range actions {
		a.CSRF = field
		out[i] = a
	}
	return out
}

// NavLink is one sidebar entry.
type NavLink struct {
	URL    string
	Label  string
	Active bool
}

// Table is a list screen.
type Table struct {
	Heading  string
	Columns  []string
	Rows     []Row
	NewURL   string
	NewLabel string
	Search   bool
	Query    string
	View     string
	BaseURL  string
	Pager    pagination.View
	Empty    string
	Error    string
	CSRF     template.HTML
}

type Row struct {
	Cells   []Cell
	Actions []Action
}

// Cell is one table cell. Only one of the display fields is normally set.
type Cell struct {
	Text  string
	Link  string
	File  string
	Image string
	Badge string
	HTML  string
}

// Action is a row or page button. GET actions render as links; POST actions
// render as a small form carrying Hidden values and an optional Input.
type Action struct {
	Label  string
	URL    string
	Method string
	Style  string
	Hidden map[string]string
	Input  *Input
	CSRF   template.HTML
}

func (a Action) IsPost() bool {
	return a.Method == "POST"
}

type Input struct {
	Name    string
	Type    string
	Value   string
	Options []string
}

// Detail is a read-only record screen.
type Detail struct {
	Heading  string
	BackURL  string
	Actions  []Action
	Sections []Section
	Tables   []Table
	Forms    []FormView
	CSRF     template.HTML
}

type Section struct {
	Title string
	Items []Item
}

type Item struct {
	Label string
	Value string
	Link  string
	File  string
	Image string
	HTML  string
	List  []string
}

// FormView is an edit screen; Preview holds sanitized rich text when the
// admin asked for a preview instead of saving.
type FormView struct {
	forms.Form
	Preview string
	CSRF    template.HTML
}

type Confirm struct {
	Heading string
	Message string
	Action  string
	Cancel  string
	Hidden  map[string]string
	CSRF    template.HTML
}

type Login struct {
	Email         string
	EmailError    string
	PasswordError string
}

// Dashboard cards fail independently.
type Dashboard struct {
	Filter  string
	Filters []string
	Cards   []Card
}

type Card struct {
	Title  string
	Error  string
	Stats  []Stat
	Series []Bar
}

type Stat struct {
	Label string
	Value string
}

type Bar struct {
	Label   string
	Value   string
	Percent int
}
