package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/forms"
	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

func ListContacts(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "contacts", (*lenzoo.Client).ListContacts)
		if d.superseded(c, "contacts", err) {
			return
		}
		table := views.Table{
			Heading: "Contact requests",
			Columns: []string{"Name", "Email", "Phone", "Message", "Received", "Status", ""},
			BaseURL: "/contacts",
			Search:  true,
			Query:   params.Search,
			View:    params.View,
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_CONTACTS", err, "Unable to load contact requests.")
		} else {
			table.Pager = pager(res, params)
			for _, ct := range res.Items {
				status := contactStatus(ct)
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: ct.Name, Link: "/contacts/" + ct.ID},
						{Text: ct.Email},
						{Text: ct.Phone},
						{Text: excerpt(ct.Message, 60)},
						{Text: ct.CreatedAt.Format("02 Jan 2006")},
						{Text: status, Badge: strings.ToLower(status)},
					},
					Actions: []views.Action{
						{Label: "View", URL: "/contacts/" + ct.ID},
						deleteAction(deleteContact, ct.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Contact requests", "contacts", table))
	}
}

func contactStatus(ct models.Contact) string {
	if ct.IsReplied() {
		return models.ContactReplied
	}
	return models.ContactPending
}

func (d *Deps) findContact(c *gin.Context, id string) (models.Contact, bool, error) {
	return findInList(c.Request.Context(), d.api(c).ListContacts, func(ct models.Contact) bool { return ct.ID == id })
}

func ContactDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		ct, found, err := d.findContact(c, c.Param("id"))
		if err != nil || !found {
			d.redirect(c, "/contacts", session.FlashError, d.notFound(c, "CONTACT_DETAIL", err, "Contact request not found."))
			return
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{
			Title:  ct.Name,
			Active: "contacts",
			Body:   contactDetail(ct, url.Values{}, nil),
		})
	}
}

// contactDetail shows the reply once sent; until then it carries the reply
// form.
func contactDetail(ct models.Contact, values url.Values, errs forms.Errors) views.Detail {
	detail := views.Detail{
		Heading: ct.Name,
		BackURL: "/contacts",
		Actions: []views.Action{deleteAction(deleteContact, ct.ID)},
		Sections: []views.Section{{
			Title: "Request",
			Items: []views.Item{
				{Label: "Email", Value: ct.Email},
				{Label: "Phone", Value: ct.Phone},
				{Label: "Received", Value: ct.CreatedAt.Format("02 Jan 2006 15:04")},
				{Label: "Message", Value: ct.Message},
				{Label: "Status", Value: contactStatus(ct)},
			},
		}},
	}
	if ct.IsReplied() {
		reply := views.Section{Title: "Reply", Items: []views.Item{
			{Label: "Reply", Value: ct.Reply},
			{Label: "Replied by", Value: ct.RepliedBy},
		}}
		if ct.RepliedAt != nil {
			reply.Items = append(reply.Items, views.Item{Label: "Replied at", Value: ct.RepliedAt.Format("02 Jan 2006 15:04")})
		}
		detail.Sections = append(detail.Sections, reply)
		return detail
	}
	detail.Forms = []views.FormView{{Form: forms.Form{
		Title:  "Reply",
		Action: "/contacts/" + ct.ID + "/reply",
		Submit: "Send reply",
		Fields: forms.ReplyLayout(values, errs),
	}}}
	return detail
}

// ReplyToContact sends the one-time reply. A request that already has a
// reply is refused without calling the API.
func ReplyToContact(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		back := "/contacts/" + id
		ct, found, err := d.findContact(c, id)
		if err != nil || !found {
			d.redirect(c, "/contacts", session.FlashError, d.notFound(c, "CONTACT_REPLY", err, "Contact request not found."))
			return
		}
		if ct.IsReplied() {
			d.redirect(c, back, session.FlashWarning, "This request has already been answered.")
			return
		}
		if err := c.Request.ParseForm(); err != nil {
			d.redirect(c, back, session.FlashError, "Invalid form.")
			return
		}
		in, errs := forms.DecodeReply(c.Request.PostForm)
		if errs.Any() {
			d.render(c, http.StatusUnprocessableEntity, "detail.html", views.Page{
				Title:  ct.Name,
				Active: "contacts",
				Body:   contactDetail(ct, c.Request.PostForm, errs),
			})
			return
		}
		res, err := d.api(c).ReplyToContact(c.Request.Context(), id, in.Reply)
		if err != nil {
			d.render(c, http.StatusOK, "detail.html", views.Page{
				Title:  ct.Name,
				Active: "contacts",
				Error:  d.failed(c, "CONTACT_REPLY", err, "Unable to send the reply."),
				Body:   contactDetail(ct, c.Request.PostForm, nil),
			})
			return
		}
		d.record(c, "reply", "contact", id)
		d.redirect(c, back, session.FlashSuccess, successMessage(res, "Reply sent."))
	}
}

func ListSubscribers(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "subscribers", (*lenzoo.Client).ListSubscribers)
		if d.superseded(c, "subscribers", err) {
			return
		}
		table := views.Table{
			Heading: "Newsletter subscribers",
			Columns: []string{"Email", "Since", "Status", ""},
			BaseURL: "/subscribers",
			Search:  true,
			Query:   params.Search,
			View:    params.View,
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_SUBSCRIBERS", err, "Unable to load subscribers.")
		} else {
			table.Pager = pager(res, params)
			for _, s := range res.Items {
				next := s.ToggledStatus()
				label := "Unsubscribe"
				if next == models.SubscriberSubscribed {
					label = "Resubscribe"
				}
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: s.Email},
						{Text: s.CreatedAt.Format("02 Jan 2006")},
						{Text: s.Status, Badge: strings.ToLower(s.Status)},
					},
					Actions: []views.Action{
						{
							Label:  label,
							URL:    "/subscribers/status",
							Method: http.MethodPost,
							Hidden: map[string]string{"email": s.Email, "status": next},
						},
						deleteAction(deleteSubscriber, s.ID),
					},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Newsletter subscribers", "subscribers", table))
	}
}

// SubscriberStatus is keyed by email.
func SubscriberStatus(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, status := c.PostForm("email"), c.PostForm("status")
		res, err := d.api(c).UpdateNewsletterStatus(c.Request.Context(), email, status)
		if err != nil {
			d.redirect(c, "/subscribers", session.FlashError, d.failed(c, "SUBSCRIBER_STATUS", err, "Unable to update the subscription."))
			return
		}
		d.record(c, "update-status", "subscriber", email)
		d.redirect(c, "/subscribers", session.FlashSuccess, successMessage(res, "Subscription updated."))
	}
}

func ListPrescriptions(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "prescriptions", (*lenzoo.Client).ListPrescriptions)
		if d.superseded(c, "prescriptions", err) {
			return
		}
		table := views.Table{
			Heading: "Prescriptions",
			Columns: []string{"User", "File", "Notes", "Uploaded", ""},
			BaseURL: "/prescriptions",
			Search:  true,
			Query:   params.Search,
			View:    params.View,
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_PRESCRIPTIONS", err, "Unable to load prescriptions.")
		} else {
			table.Pager = pager(res, params)
			for _, p := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						userCell(p.UserID),
						{Text: "Open", File: p.PrescriptionFile},
						{Text: excerpt(p.Notes, 60)},
						{Text: p.UploadedAt.Format("02 Jan 2006")},
					},
					Actions: []views.Action{{Label: "View", URL: "/prescriptions/" + p.ID}},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Prescriptions", "prescriptions", table))
	}
}

func PrescriptionDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		p, found, err := findInList(c.Request.Context(), d.api(c).ListPrescriptions, func(p models.Prescription) bool { return p.ID == id })
		if err != nil || !found {
			d.redirect(c, "/prescriptions", session.FlashError, d.notFound(c, "PRESCRIPTION_DETAIL", err, "Prescription not found."))
			return
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{
			Title:  "Prescription",
			Active: "prescriptions",
			Body: views.Detail{
				Heading: "Prescription",
				BackURL: "/prescriptions",
				Sections: []views.Section{{Items: []views.Item{
					userItem(p.UserID),
					{Label: "File", Value: documentName(p.PrescriptionFile), File: p.PrescriptionFile},
					{Label: "Notes", Value: p.Notes},
					{Label: "Uploaded", Value: p.UploadedAt.Format("02 Jan 2006 15:04")},
				}}},
			},
		})
	}
}

func ListTransactions(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, params, err := fetchPage(c, d, "transactions", (*lenzoo.Client).ListTransactions)
		if d.superseded(c, "transactions", err) {
			return
		}
		table := views.Table{
			Heading: "Transactions",
			Columns: []string{"Reference", "User", "Type", "Amount", "Date", "Status", ""},
			BaseURL: "/transactions",
			Search:  true,
			Query:   params.Search,
			View:    params.View,
		}
		if err != nil {
			table.Error = d.failed(c, "LIST_TRANSACTIONS", err, "Unable to load transactions.")
		} else {
			table.Pager = pager(res, params)
			for _, t := range res.Items {
				table.Rows = append(table.Rows, views.Row{
					Cells: []views.Cell{
						{Text: t.TransactionID, Link: "/transactions/" + t.ID},
						userCell(t.UserID),
						{Text: t.Type},
						{Text: fmt.Sprintf("%.2f", t.Amount)},
						{Text: t.CreatedAt.Format("02 Jan 2006")},
						{Text: t.Status, Badge: strings.ToLower(t.Status)},
					},
					Actions: []views.Action{{Label: "View", URL: "/transactions/" + t.ID}},
				})
			}
		}
		d.render(c, http.StatusOK, "list.html", listPage("Transactions", "transactions", table))
	}
}

func TransactionDetail(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		t, found, err := findInList(c.Request.Context(), d.api(c).ListTransactions, func(t models.Transaction) bool { return t.ID == id })
		if err != nil || !found {
			d.redirect(c, "/transactions", session.FlashError, d.notFound(c, "TRANSACTION_DETAIL", err, "Transaction not found."))
			return
		}
		d.render(c, http.StatusOK, "detail.html", views.Page{
			Title:  "Transaction " + t.TransactionID,
			Active: "transactions",
			Body: views.Detail{
				Heading: "Transaction " + t.TransactionID,
				BackURL: "/transactions",
				Sections: []views.Section{{Items: []views.Item{
					userItem(t.UserID),
					{Label: "Type", Value: t.Type},
					{Label: "Amount", Value: fmt.Sprintf("%.2f", t.Amount)},
					{Label: "Status", Value: t.Status},
					{Label: "Description", Value: t.Description},
					{Label: "Date", Value: t.CreatedAt.Format("02 Jan 2006 15:04")},
				}}},
			},
		})
	}
}

func userCell(ref models.UserRef) views.Cell {
	if ref.ID == "" {
		return views.Cell{Text: ref.Display()}
	}
	return views.Cell{Text: ref.Display(), Link: "/users/" + ref.ID}
}

func userItem(ref models.UserRef) views.Item {
	return views.Item{Label: "User", Value: ref.Display()}
}
