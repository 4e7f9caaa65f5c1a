package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/pagination"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/supersede"
	"lenzooadmin/internal/views"
)

// ListServiceTypes fetches every service type and filters and pages them
// here; the API returns the whole set.
func ListServiceTypes(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := d.listParams(c)
		client := d.api(c)
		all, err := supersede.Do(c.Request.Context(), d.Searches, d.searchKey(c, "service-types", params), func(ctx context.Context) ([]models.ServiceType, error) {
			return collectAll(ctx, client.ListServiceTypes)
		})
		if d.superseded(c, "service-types", err) {
			return
		}
		table := views.Table{
			Heading:  "Service types",
			Columns:  []string{"Name", "Added", ""},
			BaseURL:  "/service-types",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/service-types/new",
			NewLabel: "Add service type",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_SERVICE_TYPES", err, "Unable to load service types.")
		} else {
			matched := pagination.Filter(all, params.Search, func(s models.ServiceType) []string { return []string{s.Name} })
			rows, totalPages := pagination.Slice(matched, params.Page, params.Limit)
			current := params.Page
			if current > totalPages {
				current = totalPages
			}
			table.Pager = pagination.NewView(current, totalPages, len(matched), params.Search)
			for _, s := range rows {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{{Text: s.Name}, {Text: s.CreatedAt.Format("02 Jan 2006")}},
					Actions: []views.Action{
						{Label: "Edit", URL: "/service-types/" + s.ID + "/edit"},
						deleteAction(deleteServiceType, s.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Service types", "service-types", table))
	}
}

func serviceTypeScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add service type", active: "service-types", action: "/service-types", cancel: "/service-types"}
	}
	return formScreen{title: "Edit service type", active: "service-types", action: "/service-types/" + id, cancel: "/service-types"}
}

func NewServiceTypeForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, serviceTypeScreen(""), forms.ServiceTypeLayout(url.Values{}, nil))
	}
}

func EditServiceTypeForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		st, found, err := findInList(c.Request.Context(), d.api(c).ListServiceTypes, func(s models.ServiceType) bool { return s.ID == id })
		if err != nil || !found {
			d.redirect(c, "/service-types", session.FlashError, d.notFound(c, "EDIT_SERVICE_TYPE", err, "Service type not found."))
			return
		}
		d.renderForm(c, http.StatusOK, serviceTypeScreen(id), forms.ServiceTypeLayout(url.Values{"name": {st.Name}}, nil))
	}
}

// SaveServiceType creates when the route has no id, updates otherwise.
func SaveServiceType(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := serviceTypeScreen(id)
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, fs.action, session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodeServiceType(c.Request.PostForm)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.ServiceTypeLayout(c.Request.PostForm, errs))
			return
		}
		var (
			res lenzoo.Result
			err error
		)
		if id == "" {
			res, err = d.api(c).AddServiceType(c.Request.Context(), in.Name)
		} else {
			res, err = d.api(c).UpdateServiceType(c.Request.Context(), id, in.Name)
		}
		if err != nil {
			fs.err = d.failed(c, "SAVE_SERVICE_TYPE", err, "Unable to save the service type.")
			d.renderForm(c, http.StatusOK, fs, forms.ServiceTypeLayout(c.Request.PostForm, nil))
			return
		}
		d.record(c, saveAction(id), "service-type", id)
		d.redirect(c, "/service-types", session.FlashSuccess, successMessage(res, "Service type saved."))
	}
}

func ListPlans(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "plans", (*lenzoo.Client).ListPlans)
		if d.superseded(c, "plans", err) {
			return
		}
		table := views.Table{
			Heading:  "Plans",
			Columns:  []string{"Title", "Service type", "Amount", "Discount", "Duration", "Key features", ""},
			BaseURL:  "/plans",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/plans/new",
			NewLabel: "Add plan",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_PLANS", err, "Unable to load plans.")
		} else {
			table.Pager = pager(res, params)
			for _, p := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: p.Title},
						{Text: p.ServiceTypeID.Display()},
						{Text: fmt.Sprintf("%.2f", p.Amount)},
						{Text: fmt.Sprintf("%g%%", p.Discount)},
						{Text: p.Duration, Badge: p.Duration},
						{Text: p.KeyFeatures.Join()},
					},
					Actions: []views.Action{
						{Label: "Edit", URL: "/plans/" + p.ID + "/edit"},
						deleteAction(deletePlan, p.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Plans", "plans", table))
	}
}

func planScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add plan", active: "plans", action: "/plans", cancel: "/plans"}
	}
	return formScreen{title: "Edit plan", active: "plans", action: "/plans/" + id, cancel: "/plans"}
}

// planChoices loads the service type picker. A failure leaves the picker
// empty and shows a banner; the form stays usable for correcting input.
func (d *Deps) planChoices(c *gin.Context, fs *formScreen) []models.ServiceType {
	types, err := d.api(c).ServiceTypesForPlans(c.Request.Context())
	if err != nil {
		fs.err = d.failed(c, "PLAN_SERVICE_TYPES", err, "Unable to load service types.")
	}
	return types
}

func NewPlanForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		fs := planScreen("")
		types := d.planChoices(c, &fs)
		d.renderForm(c, http.StatusOK, fs, forms.PlanLayout(url.Values{}, nil, types))
	}
}

func EditPlanForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		plan, found, err := findInList(c.Request.Context(), d.api(c).ListPlans, func(p models.Plan) bool { return p.ID == id })
		if err != nil || !found {
			d.redirect(c, "/plans", session.FlashError, d.notFound(c, "EDIT_PLAN", err, "Plan not found."))
			return
		}
		fs := planScreen(id)
		types := d.planChoices(c, &fs)
		d.renderForm(c, http.StatusOK, fs, forms.PlanLayout(forms.PlanValues(plan), nil, types))
	}
}

func SavePlan(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := planScreen(id)
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, "/plans", session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodePlan(c.Request.PostForm)
		if errs.Any() {
			types := d.planChoices(c, &fs)
			d.invalid(c, fs, errs, forms.PlanLayout(c.Request.PostForm, errs, types))
			return
		}
		var (
			res lenzoo.Result
			err error
		)
		if id == "" {
			res, err = d.api(c).AddPlan(c.Request.Context(), in.Input(""))
		} else {
			res, err = d.api(c).UpdatePlan(c.Request.Context(), in.Input(id))
		}
		if err != nil {
			msg := d.failed(c, "SAVE_PLAN", err, "Unable to save the plan.")
			types := d.planChoices(c, &fs)
			fs.err = msg
			d.renderForm(c, http.StatusOK, fs, forms.PlanLayout(c.Request.PostForm, nil, types))
			return
		}
		d.record(c, saveAction(id), "plan", id)
		d.redirect(c, "/plans", session.FlashSuccess, successMessage(res, "Plan saved."))
	}
}

func ListMemberships(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "memberships", (*lenzoo.Client).ListMemberships)
		if d.superseded(c, "memberships", err) {
			return
		}
		table := views.Table{
			Heading:  "Memberships",
			Columns:  []string{"Title", "Plan", "Price", "Days", "Recurring", "Status", ""},
			BaseURL:  "/memberships",
			Search:   true,
			Query:    params.Search,
			View:     params.View,
			NewURL:   "/memberships/new",
			NewLabel: "Add membership",
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_MEMBERSHIPS", err, "Unable to load memberships.")
		} else {
			table.Pager = pager(res, params)
			for _, m := range res.Items {
				recurring := "No"
				if m.IsRecurring {
					recurring = "Yes"
				}
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: m.Title},
						{Text: m.PlanType},
						{Text: fmt.Sprintf("%.2f", m.Price)},
						{Text: strconv.Itoa(m.DurationInDays)},
						{Text: recurring},
						{Text: m.Status, Badge: m.Status},
					},
					Actions: []views.Action{
						{Label: "Edit", URL: "/memberships/" + m.ID + "/edit"},
						deleteAction(deleteMembership, m.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Memberships", "memberships", table))
	}
}

func membershipScreen(id string) formScreen {
	if id == "" {
		return formScreen{title: "Add membership", active: "memberships", action: "/memberships", cancel: "/memberships"}
	}
	return formScreen{title: "Edit membership", active: "memberships", action: "/memberships/" + id, cancel: "/memberships"}
}

func NewMembershipForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		d.renderForm(c, http.StatusOK, membershipScreen(""), forms.MembershipLayout(url.Values{}, nil))
	}
}

func EditMembershipForm(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		m, err := d.api(c).GetMembership(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/memberships", session.FlashError, d.failed(c, "EDIT_MEMBERSHIP", err, "Unable to load the membership."))
			return
		}
		d.renderForm(c, http.StatusOK, membershipScreen(id), forms.MembershipLayout(forms.MembershipValues(m), nil))
	}
}

// SaveMembership upserts; the posted durationInDays is ignored in favour of
// the value derived from planType.
func SaveMembership(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		fs := membershipScreen(id)
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, "/memberships", session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodeMembership(c.Request.PostForm)
		if errs.Any() {
			d.invalid(c, fs, errs, forms.MembershipLayout(c.Request.PostForm, errs))
			return
		}
		res, err := d.api(c).SaveMembership(c.Request.Context(), in.Input(id))
		if err != nil {
			fs.err = d.failed(c, "SAVE_MEMBERSHIP", err, "Unable to save the membership.")
			d.renderForm(c, http.StatusOK, fs, forms.MembershipLayout(c.Request.PostForm, nil))
			return
		}
		d.record(c, saveAction(id), "membership", id)
		d.redirect(c, "/memberships", session.FlashSuccess, successMessage(res, "Membership saved."))
	}
}

func saveAction(id string) string {
	if id == "" {
		return "create"
	}
	return "update"
}
