package lenzoo

import (
	"context"
	"net/http"
	"strings"

	"lenzooadmin/internal/models"
)

func (c *Client) ListContacts(ctx context.Context, p ListParams) (Page[models.Contact], error) {
	return getPage[models.Contact](ctx, c, "getAllContacts", p)
}

func (c *Client) DeleteContact(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "deleteContact", map[string]string{"id": id})
}

func (c *Client) ReplyToContact(ctx context.Context, id, reply string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return Result{}, ValidationError("reply is required")
	}
	return c.write(ctx, http.MethodPost, "replyToContact", map[string]string{
		"id":    id,
		"reply": reply,
	})
}

func (c *Client) ListSubscribers(ctx context.Context, p ListParams) (Page[models.Subscriber], error) {
	return getPage[models.Subscriber](ctx, c, "getAllSubscribers", p)
}

func (c *Client) DeleteSubscriber(ctx context.Context, id string) (Result, error) {
	if err := requireID(id); err != nil {
		return Result{}, err
	}
	return c.write(ctx, http.MethodPost, "deleteSubscriber", map[string]string{"id": id})
}

// UpdateNewsletterStatus is keyed by email, not id.
func (c *Client) UpdateNewsletterStatus(ctx context.Context, email, status string) (Result, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Result{}, ValidationError("email is required")
	}
	if status != models.SubscriberSubscribed && status != models.SubscriberUnsubscribed {
		return Result{}, ValidationError("unknown subscriber status: " + status)
	}
	return c.write(ctx, http.MethodPost, "updateNewsletterStatus", map[string]string{
		"email":  email,
		"status": status,
	})
}
