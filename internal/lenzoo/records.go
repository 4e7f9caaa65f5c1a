package lenzoo

import (
	"context"

	"lenzooadmin/internal/models"
)

func (c *Client) ListPrescriptions(ctx context.Context, p ListParams) (Page[models.Prescription], error) {
	return getPage[models.Prescription](ctx, c, "getAllPrescription", p)
}

func (c *Client) ListTransactions(ctx context.Context, p ListParams) (Page[models.Transaction], error) {
	return getPage[models.Transaction](ctx, c, "getAllTransaction", p)
}
