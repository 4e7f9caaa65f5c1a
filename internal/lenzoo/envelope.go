package lenzoo

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ListParams are the paging and search parameters every list endpoint takes.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Extra  url.Values
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if s := strings.TrimSpace(p.Search); s != "" {
		q.Set("search", s)
	}
	for k, vs := range p.Extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return q
}

// Page is the uniform shape of every list response.
type Page[T any] struct {
	Items      []T
	Page       int
	TotalPages int
	TotalCount int
}

func (p Page[T]) Empty() bool {
	return len(p.Items) == 0
}

// itemKeys are the envelope keys different endpoints put their rows under.
var itemKeys = []string{
	"data", "items", "results", "docs",
	"users", "products", "product", "serviceTypes", "memberships", "membership",
	"plans", "testimonials", "researchAnalysis", "research", "contacts",
	"subscribers", "prescriptions", "prescription", "transactions", "faqs",
}

var (
	totalPagesKeys = []string{"totalPages", "pages", "totalPage"}
	totalCountKeys = []string{"totalCount", "total", "totalItems", "totalDocs", "count"}
	pageKeys       = []string{"currentPage", "page"}
)

// decodePage normalizes a list response. Rows are looked up under the known
// envelope keys (also one level down, e.g. data.users), paging numbers at the
// top level or under "pagination".
func decodePage[T any](raw []byte, params ListParams) (Page[T], error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		var items []T
		if errArr := json.Unmarshal(raw, &items); errArr == nil {
			return finishPage(Page[T]{Items: items}, params), nil
		}
		return Page[T]{}, err
	}

	page := Page[T]{}
	found := false
	scopes := []map[string]json.RawMessage{top}
	if nested := objectAt(top, "data"); nested != nil {
		scopes = append(scopes, nested)
	}

	for _, scope := range scopes {
		for _, key := range itemKeys {
			value, ok := scope[key]
			if !ok || !isArray(value) {
				continue
			}
			if err := json.Unmarshal(value, &page.Items); err != nil {
				return Page[T]{}, fmt.Errorf("decode %q: %w", key, err)
			}
			found = true
			break
		}
		if found {
			break
		}
	}

	for _, scope := range append(scopes, objectAt(top, "pagination")) {
		if scope == nil {
			continue
		}
		if v, ok := intAt(scope, totalPagesKeys); ok && page.TotalPages == 0 {
			page.TotalPages = v
		}
		if v, ok := intAt(scope, totalCountKeys); ok && page.TotalCount == 0 {
			page.TotalCount = v
		}
		if v, ok := intAt(scope, pageKeys); ok && page.Page == 0 {
			page.Page = v
		}
	}

	return finishPage(page, params), nil
}

func finishPage[T any](page Page[T], params ListParams) Page[T] {
	if page.Items == nil {
		page.Items = []T{}
	}
	if page.TotalCount == 0 {
		page.TotalCount = len(page.Items)
	}
	if page.TotalPages == 0 && page.TotalCount > 0 {
		limit := params.Limit
		if limit <= 0 || len(page.Items) >= page.TotalCount {
			page.TotalPages = 1
		} else {
			page.TotalPages = int(math.Ceil(float64(page.TotalCount) / float64(limit)))
		}
	}
	if page.Page == 0 {
		page.Page = params.Page
		if page.Page == 0 {
			page.Page = 1
		}
	}
	return page
}

// decodeOne pulls a single record out of an envelope, trying keys in order
// and falling back to the whole body.
func decodeOne[T any](raw []byte, keys ...string) (T, error) {
	var out T
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err == nil {
		for _, key := range append(keys, "data") {
			value, ok := top[key]
			if !ok || string(value) == "null" {
				continue
			}
			if isArray(value) {
				var items []T
				if err := json.Unmarshal(value, &items); err != nil {
					return out, err
				}
				if len(items) > 0 {
					return items[0], nil
				}
				continue
			}
			if err := json.Unmarshal(value, &out); err != nil {
				return out, err
			}
			return out, nil
		}
	}
	err := json.Unmarshal(raw, &out)
	return out, err
}

func objectAt(m map[string]json.RawMessage, key string) map[string]json.RawMessage {
	value, ok := m[key]
	if !ok {
		return nil
	}
	var nested map[string]json.RawMessage
	if err := json.Unmarshal(value, &nested); err != nil {
		return nil
	}
	return nested
}

func intAt(m map[string]json.RawMessage, keys []string) (int, bool) {
	for _, key := range keys {
		value, ok := m[key]
		if !ok {
			continue
		}
		var n float64
		if err := json.Unmarshal(value, &n); err == nil {
			return int(n), true
		}
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			if parsed, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return parsed, true
			}
		}
	}
	return 0, false
}

func isArray(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "[")
}

func getPage[T any](ctx context.Context, c *Client, endpoint string, params ListParams) (Page[T], error) {
	raw, err := c.send(ctx, request{method: http.MethodGet, endpoint: endpoint, query: params.query()})
	if err != nil {
		return Page[T]{}, err
	}
	page, err := decodePage[T](raw, params)
	if err != nil {
		return Page[T]{}, &APIError{Endpoint: endpoint, StatusCode: http.StatusOK, Message: "unexpected response: " + err.Error()}
	}
	return page, nil
}

func getOne[T any](ctx context.Context, c *Client, endpoint string, query url.Values, keys ...string) (T, error) {
	raw, err := c.send(ctx, request{method: http.MethodGet, endpoint: endpoint, query: query})
	if err != nil {
		var zero T
		return zero, err
	}
	out, err := decodeOne[T](raw, keys...)
	if err != nil {
		var zero T
		return zero, &APIError{Endpoint: endpoint, StatusCode: http.StatusOK, Message: "unexpected response: " + err.Error()}
	}
	return out, nil
}

func idQuery(id string) url.Values {
	return url.Values{"id": []string{id}}
}

// Result is the acknowledgement body of write endpoints.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
