package lenzoo

import (
	"context"
	"net/url"

	"lenzooadmin/internal/models"
)

func filterQuery(filter string) url.Values {
	if filter == "" {
		return nil
	}
	return url.Values{"filter": []string{filter}}
}

func (c *Client) GetDashboardCount(ctx context.Context, filter string) (models.DashboardCount, error) {
	return getOne[models.DashboardCount](ctx, c, "getDashboardCount", filterQuery(filter), "counts", "stats")
}

func (c *Client) GetGraphStats(ctx context.Context, filter string) (models.GraphStats, error) {
	return getOne[models.GraphStats](ctx, c, "getGraphStats", filterQuery(filter), "stats", "graph")
}

func (c *Client) GetUsersCounts(ctx context.Context, filter string) (models.UsersCounts, error) {
	return getOne[models.UsersCounts](ctx, c, "getUsersCounts", filterQuery(filter), "counts", "stats")
}
