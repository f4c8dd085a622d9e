// Package chatter adds Chatter feed operations to the Salesforce host client.
//
// Each operation checks its required arguments, asks the host for request
// options, sets the URI, method and body, and hands the request back to the
// host for dispatch. Nothing here performs network I/O.
package chatter

import (
	"context"
	"fmt"

	"github.com/natserract/sfchatter/pkg/salesforce"
	"go.uber.org/zap"
)

// Host is the part of the Salesforce client the operations depend on.
type Host interface {
	APIVersion() string
	GetOpts(args salesforce.Args, cb salesforce.Callback) *salesforce.RequestOptions
	APIRequest(ctx context.Context, opts *salesforce.RequestOptions, cb salesforce.Callback) *salesforce.Pending
}

// Chatter exposes the feed operations against a Host.
type Chatter struct {
	host   Host
	logger *zap.Logger
}

// New creates a Chatter with default production logger
func New(host Host) *Chatter {
	logger, _ := zap.NewProduction()
	return NewWithLogger(host, logger)
}

// NewWithLogger creates a Chatter with a custom logger
func NewWithLogger(host Host, logger *zap.Logger) *Chatter {
	return &Chatter{host: host, logger: logger}
}

func (c *Chatter) run(ctx context.Context, op operation, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	if len(op.required) > 0 {
		if result := Validate(args, op.required); result.Failed {
			c.logger.Warn("Missing required arguments",
				zap.String("operation", op.name),
				zap.Strings("required", op.required))
			return nil, c.fail(op.validationError(), cb)
		}
	}

	opts := c.host.GetOpts(args, cb)
	opts.URI = c.buildURI(op.endpoint(args), c.host.APIVersion(), opts)
	opts.Method = op.method
	if op.body != nil {
		body, err := op.body(args)
		if err != nil {
			return nil, c.fail(fmt.Errorf("%s: %w", op.name, err), cb)
		}
		opts.Body = body
	}

	return c.host.APIRequest(ctx, opts, opts.Callback), nil
}

// fail reports err through the callback channel and returns it.
func (c *Chatter) fail(err error, cb salesforce.Callback) error {
	if cb != nil {
		cb(err, nil)
	}
	return err
}
