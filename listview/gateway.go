/*
gateway.go - Remote data gateway over the backend REST API

PURPOSE:
  Issues one HTTP request per logical operation and normalizes the
  inconsistent response envelopes the backend produces into a single list
  shape. The gateway does not cache and has no side effects beyond the
  network call.

ENVELOPE NORMALIZATION:
  The expected body is {success, data, message} but `data` varies by
  endpoint: a bare array, {items: [...]}, {<resource>: [...]}, a single
  object, or null. All of these normalize to []ListItem; null and malformed
  shapes normalize to an empty list, never an error.

FAILURE TAXONOMY:
  401                         -> ErrUnauthorized (distinct: host redirects
                                 to login, nothing is rendered)
  non-2xx or success:false    -> *StatusError with the body message verbatim,
                                 defaulting to "HTTP <status>"
  network / timeout / no JSON -> *TransportError

TIMEOUTS:
  Every request runs under a per-request timeout (default 15s) so a request
  that never resolves cannot leave a view loading forever.

SEE ALSO:
  - errors.go: The failure taxonomy
  - controller.go: Converts gateway failures into user-visible outcomes
*/
package listview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DataSource is what the controller needs from the network layer.
// Gateway is the production implementation; tests substitute fakes.
type DataSource interface {
	FetchList(ctx context.Context, resource string, query url.Values) ([]ListItem, error)
	FetchItem(ctx context.Context, resource, id string) (ListItem, error)
	Mutate(ctx context.Context, resource string, req MutationRequest) error
}

// TokenSource supplies the current bearer token, or "" for none.
type TokenSource func() string

// Gateway issues requests against one backend base URL.
type Gateway struct {
	base    string
	client  *http.Client
	token   TokenSource
	timeout time.Duration
	log     *logrus.Entry
}

var _ DataSource = (*Gateway)(nil)

// GatewayOption customizes a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient substitutes the underlying client (tests, proxies).
func WithHTTPClient(c *http.Client) GatewayOption {
	return func(g *Gateway) { g.client = c }
}

// WithTokenSource attaches Authorization: Bearer <token> to every request.
func WithTokenSource(ts TokenSource) GatewayOption {
	return func(g *Gateway) { g.token = ts }
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) GatewayOption {
	return func(g *Gateway) { g.timeout = d }
}

// WithLogger overrides the gateway logger.
func WithLogger(log *logrus.Entry) GatewayOption {
	return func(g *Gateway) { g.log = log }
}

// NewGateway creates a gateway for the given base URL, e.g.
// "https://hr.example.org/api".
func NewGateway(base string, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		base:    strings.TrimRight(base, "/"),
		client:  http.DefaultClient,
		timeout: 15 * time.Second,
		log:     logrus.WithField("component", "gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// =============================================================================
// OPERATIONS
// =============================================================================

// FetchList retrieves and normalizes a resource collection.
func (g *Gateway) FetchList(ctx context.Context, resource string, query url.Values) ([]ListItem, error) {
	path := "/" + resource
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	raw, err := g.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return normalizeList(raw, resource), nil
}

// FetchItem retrieves a single record.
func (g *Gateway) FetchItem(ctx context.Context, resource, id string) (ListItem, error) {
	raw, err := g.do(ctx, http.MethodGet, fmt.Sprintf("/%s/%s", resource, url.PathEscape(id)), nil)
	if err != nil {
		return nil, err
	}
	return normalizeItem(raw), nil
}

// Mutate issues a create/update/delete/restore/purge request.
func (g *Gateway) Mutate(ctx context.Context, resource string, req MutationRequest) error {
	var (
		method string
		path   string
		body   any
	)
	switch req.Op {
	case OpCreate:
		method, path, body = http.MethodPost, "/"+resource, req.Payload
	case OpUpdate:
		method, path, body = http.MethodPut, fmt.Sprintf("/%s/%s", resource, url.PathEscape(req.EntityID)), req.Payload
	case OpDelete:
		method, path = http.MethodDelete, fmt.Sprintf("/%s/%s", resource, url.PathEscape(req.EntityID))
	case OpRestore:
		method, path = http.MethodPost, fmt.Sprintf("/%s/%s/restore", resource, url.PathEscape(req.EntityID))
	case OpPurge:
		method, path = http.MethodDelete, fmt.Sprintf("/%s/%s/permanent", resource, url.PathEscape(req.EntityID))
	default:
		return fmt.Errorf("unknown mutation op: %q", req.Op)
	}

	_, err := g.do(ctx, method, path, body)
	return err
}

// =============================================================================
// TRANSPORT
// =============================================================================

// envelope is the expected backend response shape. Success is a pointer so
// "flag absent on a 2xx" can be treated as success.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e envelope) message(status int) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Error != "" {
		return e.Error
	}
	return fmt.Sprintf("HTTP %d", status)
}

// do runs one request and returns the raw data payload.
func (g *Gateway) do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	fullURL := g.base + path

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{URL: fullURL, Err: err}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if g.token != nil {
		if tok := g.token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	start := time.Now()
	resp, err := g.client.Do(req)
	if err != nil {
		g.log.WithError(err).WithField("url", fullURL).Warn("request failed")
		return nil, &TransportError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()

	g.log.WithFields(logrus.Fields{
		"method":   method,
		"url":      fullURL,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("request complete")

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, &TransportError{URL: fullURL, Err: err}
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				// A bare top-level array is a valid (legacy) list response,
				// but only on success: an error body that happens to be an
				// array must still fail below.
				if json.Valid(raw) && bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
					return json.RawMessage(raw), nil
				}
				return nil, &TransportError{URL: fullURL, Err: fmt.Errorf("non-JSON body: %w", err)}
			}
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Message: env.message(resp.StatusCode)}
	}
	if env.Success != nil && !*env.Success {
		return nil, &StatusError{Status: resp.StatusCode, Message: env.message(resp.StatusCode)}
	}

	return env.Data, nil
}

// =============================================================================
// NORMALIZATION
// =============================================================================

// normalizeList reshapes whatever `data` turned out to be into []ListItem.
// Null, absent, or unrecognized shapes normalize to an empty list.
func normalizeList(raw json.RawMessage, resource string) []ListItem {
	if len(raw) == 0 || string(raw) == "null" {
		return []ListItem{}
	}

	// Bare array: data = [...]
	var items []ListItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return nonNil(items)
	}

	// Wrapped: data = {items: [...]} or {<resource>: [...]} or any
	// single array-valued key.
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return []ListItem{}
	}
	for _, key := range []string{"items", resource} {
		if inner, ok := wrapper[key]; ok {
			if err := json.Unmarshal(inner, &items); err == nil {
				return nonNil(items)
			}
		}
	}
	if len(wrapper) == 1 {
		for _, inner := range wrapper {
			if err := json.Unmarshal(inner, &items); err == nil {
				return nonNil(items)
			}
		}
	}

	// A single object: treat as a one-row list.
	var single ListItem
	if err := json.Unmarshal(raw, &single); err == nil && len(single) > 0 {
		return []ListItem{single}
	}
	return []ListItem{}
}

// normalizeItem reshapes `data` into one item, unwrapping {item: {...}}.
func normalizeItem(raw json.RawMessage) ListItem {
	if len(raw) == 0 || string(raw) == "null" {
		return ListItem{}
	}
	var it ListItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return ListItem{}
	}
	if inner, ok := it["item"]; ok && len(it) == 1 {
		if m, ok := inner.(map[string]any); ok {
			return ListItem(m)
		}
	}
	return it
}

func nonNil(items []ListItem) []ListItem {
	if items == nil {
		return []ListItem{}
	}
	return items
}
