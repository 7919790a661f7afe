package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hostbridge/internal/api"
	"hostbridge/pkg/logging"
)

// DefaultTimeout bounds the connect plus response time of one upstream
// call. There is no automatic retry: retrying non-idempotent hosting
// operations (resource creation, registration) would silently duplicate
// them, so retries are a caller-level policy.
const DefaultTimeout = 30 * time.Second

// Client is the only component permitted to speak to the upstream
// hosting API. It attaches credentials identically to every call and
// collapses the upstream's inconsistent response shapes into a single
// convention: (data, nil) on success, (*api.InvocationError, non-nil)
// on failure. Raw transport payloads never leak past this type.
//
// The client is read-only after construction and safe for concurrent
// use by any number of handlers.
type Client struct {
	baseURL string
	creds   Credentials
	httpc   *http.Client
}

// NewClient creates a client for the given base URL. A zero timeout
// selects DefaultTimeout.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// callOptions carries the per-call normalization contract. Each
// capability declares what the upstream is expected to return; the
// options never apply globally, so an unexpected shape on a call that
// did not opt in stays a hard protocol error.
type callOptions struct {
	singular     bool
	scalarID     bool
	emptyDefault interface{}
	hasDefault   bool
	serviceAuth  bool
}

// CallOption customizes normalization for a single upstream call.
type CallOption func(*callOptions)

// Singular declares that the call's contract is one logical object:
// an array wrapping a single element is unwrapped to that element.
func Singular() CallOption {
	return func(o *callOptions) { o.singular = true }
}

// ScalarID declares that a bare identifier scalar is an acceptable
// success shape and is wrapped into {"id": scalar}.
func ScalarID() CallOption {
	return func(o *callOptions) { o.scalarID = true }
}

// EmptyDefault declares that an empty body or empty object is a valid
// success state for this operation, substituting v as the result.
func EmptyDefault(v interface{}) CallOption {
	return func(o *callOptions) {
		o.emptyDefault = v
		o.hasDefault = true
	}
}

// AsService authenticates the call with the combined service key
// instead of the general API key.
func AsService() CallOption {
	return func(o *callOptions) { o.serviceAuth = true }
}

// Get issues a GET against path and normalizes the response.
func (c *Client) Get(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return c.do(ctx, http.MethodGet, path, nil, opts)
}

// Post issues a POST with a JSON body and normalizes the response.
func (c *Client) Post(ctx context.Context, path string, body interface{}, opts ...CallOption) (interface{}, error) {
	return c.do(ctx, http.MethodPost, path, body, opts)
}

// Put issues a PUT with a JSON body and normalizes the response.
func (c *Client) Put(ctx context.Context, path string, body interface{}, opts ...CallOption) (interface{}, error) {
	return c.do(ctx, http.MethodPut, path, body, opts)
}

// Patch issues a PATCH with a JSON body and normalizes the response.
func (c *Client) Patch(ctx context.Context, path string, body interface{}, opts ...CallOption) (interface{}, error) {
	return c.do(ctx, http.MethodPatch, path, body, opts)
}

// Delete issues a DELETE against path and normalizes the response.
func (c *Client) Delete(ctx context.Context, path string, opts ...CallOption) (interface{}, error) {
	return c.do(ctx, http.MethodDelete, path, nil, opts)
}

// OAuthClientKey exposes the configured OAuth client key for the
// token-grant endpoints that carry it as a request field.
func (c *Client) OAuthClientKey() string {
	return c.creds.OAuthClientKey()
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, opts []CallOption) (interface{}, error) {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, api.NewInvocationError(api.KindInternalError, "encoding request body: %v", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	url := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, api.NewInvocationError(api.KindInternalError, "building request: %v", err)
	}

	if o.serviceAuth {
		req.Header.Set("Authorization", c.creds.serviceAuthorization())
	} else {
		req.Header.Set("Authorization", c.creds.authorization())
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.Debug("Upstream", "%s %s", method, path)

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Timeouts, DNS failures, refused connections. The error text
		// from net/http never contains response data, so it is safe to
		// surface to the caller.
		return nil, &api.InvocationError{
			Kind:    api.KindTransportError,
			Message: fmt.Sprintf("upstream request failed: %v", err),
		}
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &api.InvocationError{
			Kind:    api.KindTransportError,
			Message: fmt.Sprintf("reading upstream response: %v", err),
		}
	}

	return normalize(resp.StatusCode, resp.Header.Get("Content-Type"), payload, o)
}
