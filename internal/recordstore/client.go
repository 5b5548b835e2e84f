// Package recordstore is the HTTP client for the remote employee Record Store.
//
// The store exposes a JSON collection at {base}/employees:
//
//	GET    /employees/      full list
//	GET    /employees/{id}  one record
//	POST   /employees       create
//	PUT    /employees/{id}  update (the employee number is never sent)
//	DELETE /employees/{id}  delete
//
// Any 2xx answer is success. A 404 on a single record maps to
// core.ErrNotFound; other non-2xx answers become a *StatusError.
package recordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

// maxErrorBody caps how much of an error response is kept for the message.
const maxErrorBody = 512

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("unexpected status %d from %s %s", e.Code, e.Method, e.Path)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// Client talks to the Record Store.
type Client struct {
	base       *url.URL
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sends requests through hc, e.g. one with a custom transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. Zero leaves requests unbounded. It
// never modifies a client passed to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// New creates a client for the store at baseURL, e.g. http://localhost:3000.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse record store url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("record store url %q is not absolute", baseURL)
	}

	c := &Client{base: u, httpClient: &http.Client{}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the store address the client was built with.
func (c *Client) BaseURL() string { return c.base.String() }

// List fetches the full employee list.
func (c *Client) List(ctx context.Context) ([]core.Employee, error) {
	var out []core.Employee
	if err := c.do(ctx, http.MethodGet, "/employees/", nil, &out); err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return out, nil
}

// Get fetches one employee.
func (c *Client) Get(ctx context.Context, id core.ID) (core.Employee, error) {
	var out core.Employee
	if err := c.do(ctx, http.MethodGet, employeePath(id), nil, &out); err != nil {
		return core.Employee{}, err
	}
	return out, nil
}

// Create stores a new employee and returns the store's copy.
func (c *Client) Create(ctx context.Context, req core.CreateRequest) (core.Employee, error) {
	var out core.Employee
	if err := c.do(ctx, http.MethodPost, "/employees", req, &out); err != nil {
		return core.Employee{}, err
	}
	return out, nil
}

// Update replaces the editable fields of an employee.
func (c *Client) Update(ctx context.Context, id core.ID, req core.UpdateRequest) (core.Employee, error) {
	var out core.Employee
	if err := c.do(ctx, http.MethodPut, employeePath(id), req, &out); err != nil {
		return core.Employee{}, err
	}
	return out, nil
}

// Delete removes an employee. The response body is ignored.
func (c *Client) Delete(ctx context.Context, id core.ID) error {
	return c.do(ctx, http.MethodDelete, employeePath(id), nil, nil)
}

func employeePath(id core.ID) string {
	return "/employees/" + url.PathEscape(id.String())
}

// do sends one request. in is encoded as the JSON body when non-nil; out
// receives the decoded response when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusNotFound && method != http.MethodPost && path != "/employees/" {
			return core.ErrNotFound
		}
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("invalid response from %s %s: empty body", method, path)
		}
		return fmt.Errorf("invalid response from %s %s: %w", method, path, err)
	}
	return nil
}
