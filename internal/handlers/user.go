package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

func ListUsers(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "users", (*lenzoo.Client).ListUsers)
		if d.superseded(c, "users", err) {
			return
		}
		table := views.Table{
			Heading: "Users",
			Columns: []string{"", "Name", "Email", "Phone", "Joined", ""},
			BaseURL: "/users",
			Search:  true,
			Query:   params.Search,
			View:    params.View,
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_USERS", err, "Unable to load users.")
		} else {
			table.Pager = pager(res, params)
			for _, u := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Image: u.ProfileImage},
						{Text: u.FullName(), Link: "/users/" + u.ID},
						{Text: u.Email},
						{Text: u.Phone},
						{Text: u.CreatedAt.Format("02 Jan 2006")},
					},
					Actions: []views.Action{{Label: "View", URL: "/users/" + u.ID}},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Users", "users", table))
	}
}

func UserDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		u, err := d.api(c).GetUser(c.Request.Context(), id)
		if err != nil {
			d.redirect(c, "/users", session.FlashError, d.failed(c, "USER_DETAIL", err, "Unable to load the user."))
			return
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{
			Title:  u.FullName(),
			Active: "users",
			Body:   userDetail(u),
		})
	}
}

func userDetail(u models.User) views.Detail {
	detail := views.Detail{
		Heading: u.FullName(),
		BackURL: "/users",
		Sections: []views.Section{{
			Title: "Profile",
			Items: []views.Item{
				{Label: "Photo", Image: u.ProfileImage},
				{Label: "Email", Value: u.Email},
				{Label: "Phone", Value: u.Phone},
				{Label: "Address", Value: u.Address},
				{Label: "Joined", Value: u.CreatedAt.Format("02 Jan 2006")},
			},
		}},
	}

	orders := views.Table{Heading: "Orders", Columns: []string{"Order", "Items", "Total", "Placed", "Status", ""}, Empty: "No orders yet"}
	for _, o := range u.Orders {
		ref := o.OrderID
		if ref == "" {
			ref = o.ID
		}
		orders.Rows = append(orders.Rows, views.Row{
			Cells: []views.Cell{
				{Text: ref},
				{Text: fmt.Sprint(len(o.Items))},
				{Text: fmt.Sprintf("%.2f", o.TotalAmount)},
				{Text: o.CreatedAt.Format("02 Jan 2006")},
				{Text: o.Status, Badge: o.Status},
			},
			Actions: []views.Action{{
				Label:  "Update",
				URL:    "/users/" + u.ID + "/orders",
				Method: http.MethodPost,
				Hidden: map[string]string{"orderId": o.ID},
				Input:  &views.Input{Name: "status", Value: o.Status, Options: models.OrderStatuses},
			}},
		})
	}

	appointments := views.Table{Heading: "Appointments", Columns: []string{"Service", "Date", "Slot", "Status"}, Empty: "No appointments"}
	for _, a := range u.Appointments {
		appointments.Rows = append(appointments.Rows, views.Row{Cells: []views.Cell{
			{Text: a.ServiceType},
			{Text: a.Date.Format("02 Jan 2006")},
			{Text: a.Slot},
			{Text: a.Status, Badge: a.Status},
		}})
	}

	prescriptions := views.Table{Heading: "Prescriptions", Columns: []string{"File", "Notes", "Uploaded"}, Empty: "No prescriptions"}
	for _, p := range u.Prescriptions {
		prescriptions.Rows = append(prescriptions.Rows, views.Row{Cells: []views.Cell{
			{Text: "Open", File: p.PrescriptionFile},
			{Text: p.Notes},
			{Text: p.UploadedAt.Format("02 Jan 2006")},
		}})
	}

	favorites := views.Table{Heading: "Favorites", Columns: []string{"Product", "Price"}, Empty: "No favorites"}
	for _, p := range u.Favorites {
		favorites.Rows = append(favorites.Rows, views.Row{Cells: []views.Cell{
			{Text: p.Name, Link: "/products/" + p.ID},
			{Text: fmt.Sprintf("%.2f", p.SellingPrice)},
		}})
	}

	eyeTests := views.Table{Heading: "Eye tests", Columns: []string{"Date", "Result", "Notes"}, Empty: "No eye tests"}
	for _, e := range u.EyeTests {
		eyeTests.Rows = append(eyeTests.Rows, views.Row{Cells: []views.Cell{
			{Text: e.CreatedAt.Format("02 Jan 2006")},
			{Text: e.Result},
			{Text: e.Notes},
		}})
	}

	detail.Tables = []views.Table{orders, appointments, prescriptions, favorites, eyeTests}
	return detail
}

// UpdateOrderStatus changes one order's status from the user detail screen.
func UpdateOrderStatus(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		back := "/users/" + c.Param("id")
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, back, session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodeOrderStatus(c.Request.PostForm)
		if errs.Any() {
			d.redirect(c, back, session.FlashError, "Choose a valid order status.")
			return
		}
		res, err := d.api(c).UpdateOrderStatus(c.Request.Context(), in.OrderID, in.Status)
		if err != nil {
			d.redirect(c, back, session.FlashError, d.failed(c, "ORDER_STATUS", err, "Unable to update the order status."))
			return
		}
		d.record(c, "update-status", "order", in.OrderID)
		d.redirect(c, back, session.FlashSuccess, successMessage(res, "Order status updated."))
	}
}
