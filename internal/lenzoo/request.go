package lenzoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

type request struct {
	method   string
	endpoint string
	query    url.Values
	json     any
	form     *Multipart
}

// send performs req and returns the raw 2xx body. Loading for the endpoint is
// raised for the whole call and cleared exactly once.
func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	done := c.tracker.Begin(req.endpoint)
	defer done()

	body, contentType, err := req.encode()
	if err != nil {
		return nil, err
	}

	target := c.apipath(req.endpoint)
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
	if err != nil {
		return nil, &TransportError{Endpoint: req.endpoint, Err: err}
	}
	httpReq.Header.Set("Accept", "application/json")
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpclient.Do(httpReq)
	if err != nil {
		c.log.Warn("upstream request failed",
			zap.String("endpoint", req.endpoint),
			zap.Error(err),
		)
		return nil, &TransportError{Endpoint: req.endpoint, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Endpoint: req.endpoint, Err: err}
	}

	c.log.Debug("upstream request",
		zap.String("method", req.method),
		zap.String("endpoint", req.endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Endpoint:   req.endpoint,
			StatusCode: resp.StatusCode,
			Message:    parseErrorMessage(raw),
		}
	}

	if failed, message := applicationFailure(raw); failed {
		return nil, &APIError{
			Endpoint:   req.endpoint,
			StatusCode: resp.StatusCode,
			Message:    message,
		}
	}

	return raw, nil
}

// call sends req and decodes the 2xx body into out when out is non-nil.
func (c *Client) call(ctx context.Context, req request, out any) error {
	raw, err := c.send(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &APIError{
			Endpoint:   req.endpoint,
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("unexpected response: %v", err),
		}
	}
	return nil
}

func (r request) encode() (io.Reader, string, error) {
	switch {
	case r.form != nil:
		return r.form.encode()
	case r.json != nil:
		b, err := json.Marshal(r.json)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(b), "application/json", nil
	default:
		return nil, "", nil
	}
}

// parseErrorMessage pulls "message" (or "error") out of an error body.
func parseErrorMessage(body []byte) string {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return ""
	}
	if msg.Message != "" {
		return msg.Message
	}
	return msg.Error
}

// applicationFailure detects {"success": false, ...} bodies sent with 2xx.
func applicationFailure(body []byte) (bool, string) {
	var env struct {
		Success *bool  `json:"success"`
		Status  any    `json:"status"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return false, ""
	}
	if env.Success != nil && !*env.Success {
		return true, env.Message
	}
	if s, ok := env.Status.(bool); ok && !s {
		return true, env.Message
	}
	return false, ""
}

// Upload is a file to forward to the API.
type Upload struct {
	Filename string
	Open     func() (io.ReadCloser, error)
}

// FileHeaderUpload adapts an incoming multipart file.
func FileHeaderUpload(fh *multipart.FileHeader) Upload {
	return Upload{
		Filename: fh.Filename,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
}

// BytesUpload wraps in-memory content.
func BytesUpload(filename string, content []byte) Upload {
	return Upload{
		Filename: filename,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
}

type formField struct {
	name, value string
}

type formFile struct {
	field  string
	upload Upload
}

// Multipart is a multipart/form-data body. Fields and files keep their order.
type Multipart struct {
	fields []formField
	files  []formFile
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) Field(name, value string) *Multipart {
	m.fields = append(m.fields, formField{name: name, value: value})
	return m
}

// Fields appends one field per value under the same name.
func (m *Multipart) Fields(name string, values []string) *Multipart {
	for _, v := range values {
		m.Field(name, v)
	}
	return m
}

func (m *Multipart) File(field string, upload Upload) *Multipart {
	m.files = append(m.files, formFile{field: field, upload: upload})
	return m
}

func (m *Multipart) FieldValues(name string) []string {
	out := make([]string, 0)
	for _, f := range m.fields {
		if f.name == name {
			out = append(out, f.value)
		}
	}
	return out
}

func (m *Multipart) FileCount(field string) int {
	n := 0
	for _, f := range m.files {
		if f.field == field {
			n++
		}
	}
	return n
}

func (m *Multipart) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.files {
		if err := copyUpload(w, f); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func copyUpload(w *multipart.Writer, f formFile) error {
	name := strings.TrimSpace(f.upload.Filename)
	if name == "" {
		return ValidationError("upload without a file name")
	}
	part, err := w.CreateFormFile(f.field, name)
	if err != nil {
		return err
	}
	in, err := f.upload.Open()
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(part, in)
	return err
}
