package handlers

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/models"
	"lenzooadmin/internal/views"
)

var dashboardFilters = []string{"weekly", "monthly", "yearly"}

// Dashboard fetches its three cards concurrently; a failing card shows its
// own error and never blocks the others.
func Dashboard(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := c.DefaultQuery("filter", "monthly")
		client := d.api(c)
		ctx := c.Request.Context()

		cards := make([]views.Card, 3)
		var g errgroup.Group
		g.Go(func() error {
			cards[0] = countsCard(ctx, d, c, client, filter)
			return nil
		})
		g.Go(func() error {
			cards[1] = revenueCard(ctx, d, c, client, filter)
			return nil
		})
		g.Go(func() error {
			cards[2] = usersCard(ctx, d, c, client, filter)
			return nil
		})
		_ = g.Wait()

		d.render(c, http.StatusOK, "dashboard.html", views.Page{
			Title:  "Dashboard",
			Active: "dashboard",
			Body: views.Dashboard{
				Filter:  filter,
				Filters: dashboardFilters,
				Cards:   cards,
			},
		})
	}
}

func countsCard(ctx context.Context, d *Deps, c *gin.Context, client *lenzoo.Client, filter string) views.Card {
	card := views.Card{Title: "Overview"}
	res, err := client.GetDashboardCount(ctx, filter)
	if err != nil {
		card.Error = d.failed(c, "DASHBOARD_COUNTS", err, "Unable to load summary counts.")
		return card
	}
	card.Stats = []views.Stat{
		{Label: "Users", Value: strconv.Itoa(res.TotalUsers)},
		{Label: "Products", Value: strconv.Itoa(res.TotalProducts)},
		{Label: "Orders", Value: strconv.Itoa(res.TotalOrders)},
		{Label: "Appointments", Value: strconv.Itoa(res.TotalAppointments)},
		{Label: "Memberships", Value: strconv.Itoa(res.TotalMemberships)},
	}
	return card
}

func revenueCard(ctx context.Context, d *Deps, c *gin.Context, client *lenzoo.Client, filter string) views.Card {
	card := views.Card{Title: "Revenue"}
	res, err := client.GetGraphStats(ctx, filter)
	if err != nil {
		card.Error = d.failed(c, "DASHBOARD_GRAPH", err, "Unable to load revenue.")
		return card
	}
	card.Stats = []views.Stat{{Label: "Total", Value: fmt.Sprintf("%.2f", res.Total())}}
	card.Series = bars(res.Revenue)
	return card
}

func usersCard(ctx context.Context, d *Deps, c *gin.Context, client *lenzoo.Client, filter string) views.Card {
	card := views.Card{Title: "Users"}
	res, err := client.GetUsersCounts(ctx, filter)
	if err != nil {
		card.Error = d.failed(c, "DASHBOARD_USERS", err, "Unable to load user counts.")
		return card
	}
	card.Stats = []views.Stat{
		{Label: "Total", Value: strconv.Itoa(res.Total)},
		{Label: "Active", Value: strconv.Itoa(res.Active)},
		{Label: "Inactive", Value: strconv.Itoa(res.Inactive)},
		{Label: "New", Value: strconv.Itoa(res.NewUsers)},
	}
	return card
}

// bars scales a series against its largest point.
func bars(points []models.GraphPoint) []views.Bar {
	peak := 0.0
	for _, p := range points {
		peak = math.Max(peak, p.Value)
	}
	out := make([]views.Bar, 0, len(points))
	for _, p := range points {
		percent := 0
		if peak > 0 {
			percent = int(math.Round(p.Value / peak * 100))
		}
		out = append(out, views.Bar{Label: p.Label, Value: fmt.Sprintf("%.2f", p.Value), Percent: percent})
	}
	return out
}

// Health reports in-flight upstream calls per endpoint and pending searches.
func Health(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		body := gin.H{
			"status":   "ok",
			"inflight": d.API.Tracker().Snapshot(),
			"searches": d.Searches.Pending(),
			"audit":    d.Audit.Enabled(),
		}
		if d.Ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := d.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				body["status"] = "degraded"
				body["error"] = err.Error()
			}
		}
		c.JSON(status, body)
	}
}

// AuditLog lists the newest recorded mutations.
func AuditLog(d *Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		table := views.Table{
			Heading: "Audit log",
			Columns: []string{"When", "Who", "Action", "Resource", "ID"},
			BaseURL: "/audit",
		}
		if !d.Audit.Enabled() {
			table.Empty = "The audit trail is not enabled."
			d.render(c, http.StatusOK, "list.html", listPage("Audit log", "audit", table))
			return
		}
		entries, err := d.Audit.Recent(c.Request.Context(), 50)
		if err != nil {
			table.Error = "Unable to load the audit trail."
			d.Log.Sugar().Warnw("[AUDIT] recent failed", "error", err)
		}
		for _, e := range entries {
			table.Rows = append(table.Rows, views.Row{Cells: []views.Cell{
				{Text: e.CreatedAt.Local().Format("02 Jan 2006 15:04")},
				{Text: e.Actor},
				{Text: e.Action, Badge: e.Action},
				{Text: e.Resource},
				{Text: e.ResourceID},
			}})
		}
		d.render(c, http.StatusOK, "list.html", listPage("Audit log", "audit", table))
	}
}
