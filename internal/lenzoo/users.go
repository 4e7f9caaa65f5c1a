package lenzoo

import (
	"context"
	"net/http"

	"lenzooadmin/internal/models"
)

func (c *Client) ListUsers(ctx context.Context, p ListParams) (Page[models.User], error) {
	return getPage[models.User](ctx, c, "getAllUsers", p)
}

func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	if err := requireID(id); err != nil {
		return models.User{}, err
	}
	return getOne[models.User](ctx, c, "getUserDetailsById", idQuery(id), "user")
}

func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (Result, error) {
	if err := requireID(orderID); err != nil {
		return Result{}, err
	}
	if !models.IsOrderStatus(status) {
		return Result{}, ValidationError("unknown order status: " + status)
	}
	return c.write(ctx, http.MethodPost, "updateOrderStatus", map[string]string{
		"orderId": orderID,
		"status":  status,
	})
}
