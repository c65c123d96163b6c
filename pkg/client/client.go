package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/connectsphere/cli/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	json "github.com/json-iterator/go"
)

const defaultUserAgent = "ConnectSphere-CLI/0.1.0"

var codec = json.ConfigCompatibleWithStandardLibrary

// TokenSource supplies the bearer credential for each request.
type TokenSource interface {
	Token() (string, bool)
}

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
	// HTTPClient replaces the underlying transport, mostly for tests.
	HTTPClient *http.Client
}

// Request describes one API call.
type Request struct {
	Method string
	Path   string
	Query  map[string]string
	Body   interface{}
	// Public requests may be sent without a credential.
	Public bool
}

// Client is the single chokepoint for calls to the API. It holds no
// state besides its view of the credential: no retry, no caching.
type Client struct {
	http   *resty.Client
	tokens TokenSource
}

// New creates a client for opts.BaseURL that authenticates with tokens.
func New(opts Options, tokens TokenSource) *Client {
	var rc *resty.Client
	if opts.HTTPClient != nil {
		rc = resty.NewWithClient(opts.HTTPClient)
	} else {
		rc = resty.New()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	rc.SetBaseURL(opts.BaseURL)
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	rc.SetHeader("User-Agent", userAgent)
	rc.SetHeader("Accept", "application/json")
	rc.SetJSONMarshaler(codec.Marshal)
	rc.SetJSONUnmarshaler(codec.Unmarshal)

	rc.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL, "request_id", req.Header.Get("X-Request-ID"))
		return nil
	})

	rc.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "duration", resp.Time())
		return nil
	})

	rc.OnError(func(req *resty.Request, err error) {
		logger.Debug("HTTP Error", "method", req.Method, "url", req.URL, "error", err)
	})

	return &Client{http: rc, tokens: tokens}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// Do performs req and decodes a successful JSON response into out (which
// may be nil). Failures are *RemoteError, *TransportError or
// ErrNotAuthenticated.
func (c *Client) Do(ctx context.Context, req Request, out interface{}) error {
	token, hasToken := "", false
	if c.tokens != nil {
		token, hasToken = c.tokens.Token()
	}
	if !req.Public && !hasToken {
		return ErrNotAuthenticated
	}

	r := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	if hasToken {
		r.SetAuthToken(token)
	}
	if len(req.Query) > 0 {
		r.SetQueryParams(req.Query)
	}
	if req.Body != nil {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}

	resp, err := r.Execute(req.Method, req.Path)
	if err != nil {
		return &TransportError{Method: req.Method, Path: req.Path, Err: err}
	}

	if !resp.IsSuccess() {
		remoteErr := ParseError(resp)
		remoteErr.Method = req.Method
		remoteErr.Path = req.Path
		return remoteErr
	}

	body := resp.Body()
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := codec.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.Path, err)
	}
	return nil
}
