package salesforce

import (
	"errors"
	"net/http"
)

var (
	// ErrPluginExists is returned when a plugin name is registered twice on one client.
	ErrPluginExists = errors.New("plugin already exists")
	// ErrUnknownPlugin is returned by Call for a plugin that was never registered.
	ErrUnknownPlugin = errors.New("unknown plugin")
	// ErrUnknownFunction is returned by Call for a function missing from its plugin.
	ErrUnknownFunction = errors.New("unknown plugin function")
	// ErrNotAuthenticated is returned when a request is dispatched without an OAuth context.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrIncompleteRequest is returned when request options lack a URI or method.
	ErrIncompleteRequest = errors.New("request options require uri and method")
)

// Args is the caller-supplied argument set for a single operation.
type Args map[string]any

// Callback receives the outcome of a dispatched request. Exactly one of err
// and resp is non-nil.
type Callback func(err error, resp *Response)

// OAuth represents the OAuth token response and the session context derived from it
type OAuth struct {
	AccessToken string `json:"access_token"`
	InstanceURL string `json:"instance_url"`
	ID          string `json:"id"`
	TokenType   string `json:"token_type"`
	IssuedAt    string `json:"issued_at"`
	Signature   string `json:"signature"`
	Scope       string `json:"scope"`
}

// AuthRequest represents the OAuth token request
type AuthRequest struct {
	GrantType    string `json:"grant_type"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// RequestOptions describes one API request. GetOpts creates it; operations
// then set URI, Method and optionally Body before handing it to APIRequest.
type RequestOptions struct {
	OAuth     *OAuth
	NetworkID string
	URI       string
	Method    string
	Body      string
	Headers   map[string]string
	Callback  Callback
}

// Response is the raw result of a dispatched request. The body is passed
// through unparsed.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
