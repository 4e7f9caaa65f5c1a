package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/session"
	"lenzooadmin/internal/views"
)

// deletion describes a destructive action behind a confirmation screen.
type deletion struct {
	resource string
	label    string
	active   string
	listURL  string
	call     func(cl *lenzoo.Client, ctx context.Context, id string) (lenzoo.Result, error)
}

func (del deletion) actionURL(id string) string {
	return del.listURL + "/" + id + "/delete"
}

// ConfirmDelete renders the confirmation; it never calls the API.
func ConfirmDelete(d *Deps, del deletion) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		d.render(c, http.StatusOK, "confirm.html", views.Page{
			Title:  "Delete " + del.label,
			Active: del.active,
			Body: views.Confirm{
				Heading: "Delete " + del.label,
				Message: "This " + del.label + " will be removed permanently. Continue?",
				Action:  del.actionURL(id),
				Cancel:  del.listURL,
			},
		})
	}
}

// PerformDelete calls the delete endpoint once and sends the admin back to
// the list, which refetches from the API.
func PerformDelete(d *Deps, del deletion) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		res, err := del.call(d.api(c), c.Request.Context(), id)
		if err != nil {
			d.redirect(c, del.listURL, session.FlashError, d.failed(c, "DELETE_"+del.resource, err, "Unable to delete the "+del.label+"."))
			return
		}
		d.record(c, "delete", del.resource, id)
		d.redirect(c, del.listURL, session.FlashSuccess, successMessage(res, "The "+del.label+" was deleted."))
	}
}

var (
	deleteProduct     = deletion{"product", "product", "products", "/products", (*lenzoo.Client).DeleteProduct}
	deleteServiceType = deletion{"service-type", "service type", "service-types", "/service-types", (*lenzoo.Client).DeleteServiceType}
	deletePlan        = deletion{"plan", "plan", "plans", "/plans", (*lenzoo.Client).DeletePlan}
	deleteMembership  = deletion{"membership", "membership", "memberships", "/memberships", (*lenzoo.Client).DeleteMembership}
	deleteTestimonial = deletion{"testimonial", "testimonial", "testimonials", "/testimonials", (*lenzoo.Client).DeleteTestimonial}
	deleteResearch    = deletion{"research", "research article", "research", "/research", (*lenzoo.Client).DeleteResearch}
	deleteContact     = deletion{"contact", "contact request", "contacts", "/contacts", (*lenzoo.Client).DeleteContact}
	deleteSubscriber  = deletion{"subscriber", "subscriber", "subscribers", "/subscribers", (*lenzoo.Client).DeleteSubscriber}
	deleteFAQ         = deletion{"faq", "FAQ", "faqs", "/faqs", (*lenzoo.Client).DeleteFAQ}
)

// deleteAction is the row button leading to the confirmation screen.
func deleteAction(del deletion, id string) views.Action {
	return views.Action{Label: "Delete", URL: del.actionURL(id), Style: "danger"}
}
