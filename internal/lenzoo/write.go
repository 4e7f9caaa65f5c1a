package lenzoo

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) write(ctx context.Context, method, endpoint string, body any) (Result, error) {
	var res Result
	err := c.call(ctx, request{method: method, endpoint: endpoint, json: body}, &res)
	return res, err
}

func (c *Client) writeForm(ctx context.Context, endpoint string, form *Multipart) (Result, error) {
	var res Result
	err := c.call(ctx, request{method: http.MethodPost, endpoint: endpoint, form: form}, &res)
	return res, err
}

func (c *Client) writeQuery(ctx context.Context, method, endpoint string, query url.Values) (Result, error) {
	var res Result
	err := c.call(ctx, request{method: method, endpoint: endpoint, query: query}, &res)
	return res, err
}

func requireID(id string) error {
	if id == "" {
		return ValidationError("id is required")
	}
	return nil
}
