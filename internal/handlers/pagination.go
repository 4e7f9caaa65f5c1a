package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lenzooadmin/internal/lenzoo"
	"lenzooadmin/internal/pagination"
	"lenzooadmin/internal/supersede"
	"lenzooadmin/internal/views"
)

const (
	lookupPageSize = 100
	lookupMaxPages = 20
)

type lister[T any] func(ctx context.Context, p lenzoo.ListParams) (lenzoo.Page[T], error)

// endpoint is a list method expression such as (*lenzoo.Client).ListProducts.
type endpoint[T any] func(cl *lenzoo.Client, ctx context.Context, p lenzoo.ListParams) (lenzoo.Page[T], error)

// listQuery is a list screen's request. View names one open copy of the
// screen; the search form and pager carry it, so only requests from the same
// copy supersede each other.
type listQuery struct {
	pagination.Params
	View string
}

func (d *Deps) listParams(c *gin.Context) listQuery {
	view := c.Query("view")
	if view == "" {
		view = uuid.NewString()
	}
	return listQuery{
		Params: pagination.Parse(c.Query("page"), c.Query("search"), d.PageSize),
		View:   view,
	}
}

func (d *Deps) searchKey(c *gin.Context, screen string, q listQuery) string {
	key := screen + ":" + q.View
	if s := d.session(c); s != nil {
		key = s.ID() + ":" + key
	}
	return key
}

// fetchPage loads one page of a list screen. A newer request from the same
// view of the screen cancels this one; the stale result is reported as
// supersede.ErrSuperseded and must not be rendered.
func fetchPage[T any](c *gin.Context, d *Deps, screen string, list endpoint[T]) (lenzoo.Page[T], listQuery, error) {
	params := d.listParams(c)
	client := d.api(c)
	page, err := supersede.Do(c.Request.Context(), d.Searches, d.searchKey(c, screen, params), func(ctx context.Context) (lenzoo.Page[T], error) {
		return list(client, ctx, lenzoo.ListParams{Page: params.Page, Limit: params.Limit, Search: params.Search})
	})
	return page, params, err
}

// superseded answers a discarded list request.
func (d *Deps) superseded(c *gin.Context, screen string, err error) bool {
	if !errors.Is(err, supersede.ErrSuperseded) {
		return false
	}
	d.Log.Debug("list request superseded", zap.String("screen", screen))
	c.Status(http.StatusNoContent)
	return true
}

// findInList pages through a list endpoint for screens whose records have no
// fetch-by-id endpoint.
func findInList[T any](ctx context.Context, list lister[T], match func(T) bool) (T, bool, error) {
	var zero T
	for page := 1; page <= lookupMaxPages; page++ {
		res, err := list(ctx, lenzoo.ListParams{Page: page, Limit: lookupPageSize})
		if err != nil {
			return zero, false, err
		}
		for _, item := range res.Items {
			if match(item) {
				return item, true, nil
			}
		}
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return zero, false, nil
}

// collectAll gathers every row of a list endpoint, for screens that filter
// client-side.
func collectAll[T any](ctx context.Context, list lister[T]) ([]T, error) {
	var out []T
	for page := 1; page <= lookupMaxPages; page++ {
		res, err := list(ctx, lenzoo.ListParams{Page: page, Limit: lookupPageSize})
		if err != nil {
			return nil, err
		}
		out = append(out, res.Items...)
		if len(res.Items) == 0 || page >= res.TotalPages {
			break
		}
	}
	return out, nil
}

// pager builds the pagination model for a fetched page.
func pager[T any](res lenzoo.Page[T], params listQuery) pagination.View {
	current := res.Page
	if current <= 0 {
		current = params.Page
	}
	return pagination.NewView(current, res.TotalPages, res.TotalCount, params.Search)
}

func listPage(title, active string, table views.Table) views.Page {
	return views.Page{Title: title, Active: active, Body: table}
}
