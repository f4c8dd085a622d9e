// Package salesforce provides a host client for the Salesforce core platform REST API.
//
// The client owns everything around a request: the OAuth session, default
// request options, retrying transport and asynchronous dispatch. Feature
// packages such as chatter extend it through named plugins and only decide
// which URI, method and body to send.
package salesforce

import (
	"context"
	"fmt"
	"sync"

	"github.com/natserract/sfchatter/pkg/config"
	httpclient "github.com/natserract/sfchatter/pkg/http"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Client is the main client for interacting with the Salesforce REST API
type Client struct {
	config     *config.Config
	httpClient *httpclient.Client
	session    *session
	plugins    map[string]*Plugin
	pluginsMu  sync.RWMutex
	inflight   conc.WaitGroup
	logger     *zap.Logger
}

// session holds the OAuth context with thread-safe access
type session struct {
	mu    sync.RWMutex
	oauth *OAuth
}

// NewClient creates a new client with default production logger
func NewClient(cfg *config.Config) *Client {
	logger, _ := zap.NewProduction()
	return NewClientWithLogger(cfg, logger)
}

// NewClientWithLogger creates a new client with a custom logger
func NewClientWithLogger(cfg *config.Config, logger *zap.Logger) *Client {
	return &Client{
		config:     cfg,
		httpClient: httpclient.NewClientWithOptions(cfg.HTTPTimeout, cfg.MaxRetryElapsed, logger),
		session:    &session{},
		plugins:    make(map[string]*Plugin),
		logger:     logger,
	}
}

// APIVersion returns the configured REST API version, e.g. "v65.0".
func (c *Client) APIVersion() string {
	return c.config.APIVersion
}

// OAuth returns the current session, or nil before Authenticate or SetOAuth.
func (c *Client) OAuth() *OAuth {
	c.session.mu.RLock()
	defer c.session.mu.RUnlock()
	return c.session.oauth
}

// SetOAuth replaces the client's session, for callers that obtained a token elsewhere.
func (c *Client) SetOAuth(oauth *OAuth) {
	c.session.mu.Lock()
	c.session.oauth = oauth
	c.session.mu.Unlock()
}

// GetOpts prepares request options from the caller's arguments. An *OAuth
// under "oauth" overrides the client session and a "networkId" string
// overrides the configured community.
func (c *Client) GetOpts(args Args, cb Callback) *RequestOptions {
	opts := &RequestOptions{
		OAuth:     c.OAuth(),
		NetworkID: c.config.NetworkID,
		Callback:  cb,
	}

	if oauth, ok := args["oauth"].(*OAuth); ok && oauth != nil {
		opts.OAuth = oauth
	}
	if v, ok := args["networkId"]; ok && v != nil {
		opts.NetworkID = fmt.Sprint(v)
	}
	if headers, ok := args["headers"].(map[string]string); ok {
		opts.Headers = make(map[string]string, len(headers))
		for k, v := range headers {
			opts.Headers[k] = v
		}
	}
	if opts.Callback == nil {
		opts.Callback = func(error, *Response) {}
	}

	return opts
}

// APIRequest dispatches opts asynchronously and returns a handle to the
// in-flight request. cb is called exactly once, before the handle resolves.
// Options without a URI, method or OAuth context fail without any network I/O.
func (c *Client) APIRequest(ctx context.Context, opts *RequestOptions, cb Callback) *Pending {
	if ctx == nil {
		ctx = context.Background()
	}
	if cb == nil {
		cb = func(error, *Response) {}
	}
	p := newPending()

	fail := func(err error) *Pending {
		c.logger.Error("Refusing to dispatch request", zap.String("request_id", p.ID.String()), zap.Error(err))
		cb(err, nil)
		p.resolve(nil, err)
		return p
	}
	if opts == nil || opts.URI == "" || opts.Method == "" {
		return fail(ErrIncompleteRequest)
	}
	if opts.OAuth == nil || opts.OAuth.AccessToken == "" {
		return fail(ErrNotAuthenticated)
	}

	headers := map[string]string{
		"Authorization": "Bearer " + opts.OAuth.AccessToken,
		"X-Request-Id":  p.ID.String(),
	}
	for k, v := range opts.Headers {
		headers[k] = v
	}

	req := httpclient.RequestOptions{
		Method:  opts.Method,
		URL:     opts.URI,
		Headers: headers,
	}
	if opts.Body != "" {
		req.Body = opts.Body
		headers["Content-Type"] = "application/json"
	}

	c.logger.Debug("Dispatching request",
		zap.String("request_id", p.ID.String()),
		zap.String("method", opts.Method),
		zap.String("uri", opts.URI))

	c.inflight.Go(func() {
		resp, err := c.httpClient.Do(ctx, req)
		if err != nil {
			c.logger.Error("Request failed",
				zap.String("request_id", p.ID.String()),
				zap.String("method", opts.Method),
				zap.String("uri", opts.URI),
				zap.Error(err))
			cb(err, nil)
			p.resolve(nil, err)
			return
		}

		out := &Response{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}
		c.logger.Info("Request completed",
			zap.String("request_id", p.ID.String()),
			zap.String("method", opts.Method),
			zap.String("uri", opts.URI),
			zap.Int("status_code", out.StatusCode))
		cb(nil, out)
		p.resolve(out, nil)
	})

	return p
}

// Close waits for every in-flight request to finish.
func (c *Client) Close() {
	c.inflight.Wait()
}
