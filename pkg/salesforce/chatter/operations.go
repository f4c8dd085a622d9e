package chatter

import (
	"context"
	"fmt"
	"net/http"

	"github.com/natserract/sfchatter/pkg/salesforce"
)

// Operation names, as installed on the plugin.
const (
	OpUserStatistics = "userStatistics"
	OpMyNewsFeed     = "myNewsFeed"
	OpRecordFeed     = "recordFeed"
	OpGroupFeed      = "groupFeed"
	OpPostComment    = "postComment"
	OpLikeFeedItem   = "likeFeedItem"
	OpPostFeedItem   = "postFeedItem"
)

type operation struct {
	name     string
	required []string
	method   string
	endpoint func(args salesforce.Args) string
	body     func(args salesforce.Args) (string, error)
}

var operations = []operation{
	{
		name:     OpUserStatistics,
		required: []string{"id"},
		method:   http.MethodGet,
		endpoint: func(args salesforce.Args) string {
			return "/chatter/users/" + arg(args, "id")
		},
	},
	{
		name:   OpMyNewsFeed,
		method: http.MethodGet,
		endpoint: func(salesforce.Args) string {
			return "/chatter/feeds/record/me/feed-elements"
		},
	},
	{
		name:     OpRecordFeed,
		required: []string{"id"},
		method:   http.MethodGet,
		endpoint: recordFeedEndpoint,
	},
	{
		// Groups are records, so they share the record feed resource.
		name:     OpGroupFeed,
		required: []string{"id"},
		method:   http.MethodGet,
		endpoint: recordFeedEndpoint,
	},
	{
		name:     OpPostComment,
		required: []string{"id", "text"},
		method:   http.MethodPost,
		endpoint: func(args salesforce.Args) string {
			return "/chatter/feed-elements/" + arg(args, "id") + "/capabilities/comments/items"
		},
		body: func(args salesforce.Args) (string, error) {
			return TextBody(arg(args, "text"))
		},
	},
	{
		name:     OpLikeFeedItem,
		required: []string{"id"},
		method:   http.MethodPost,
		endpoint: func(args salesforce.Args) string {
			return "/chatter/feed-elements/" + arg(args, "id") + "/capabilities/chatter-likes/items"
		},
	},
	{
		name:     OpPostFeedItem,
		required: []string{"id", "text"},
		method:   http.MethodPost,
		endpoint: func(salesforce.Args) string {
			return "/chatter/feed-elements"
		},
		body: func(args salesforce.Args) (string, error) {
			return TextBody(arg(args, "text"), AsFeedItem(arg(args, "id")))
		},
	},
}

// validationError copies the required list so callers can't alter the table.
func (op operation) validationError() *ValidationError {
	return &ValidationError{Operation: op.name, Required: append([]string(nil), op.required...)}
}

func recordFeedEndpoint(args salesforce.Args) string {
	return "/chatter/feeds/record/" + arg(args, "id") + "/feed-elements"
}

func lookup(name string) (operation, bool) {
	for _, op := range operations {
		if op.name == name {
			return op, true
		}
	}
	return operation{}, false
}

// Operations returns the operation names in registration order.
func Operations() []string {
	names := make([]string, len(operations))
	for i, op := range operations {
		names[i] = op.name
	}
	return names
}

// Required returns the argument names the operation requires, or false for an
// unknown operation.
func Required(name string) ([]string, bool) {
	op, ok := lookup(name)
	if !ok {
		return nil, false
	}
	return append([]string(nil), op.required...), true
}

// arg returns args[key] as a string; non-string values are formatted with fmt.
func arg(args salesforce.Args, key string) string {
	switch v := args[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// UserStatistics reads the activity statistics of user args["id"].
func (c *Chatter) UserStatistics(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpUserStatistics)
	return c.run(ctx, op, args, cb)
}

// MyNewsFeed reads the news feed of the authenticated user.
func (c *Chatter) MyNewsFeed(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpMyNewsFeed)
	return c.run(ctx, op, args, cb)
}

// RecordFeed reads the feed elements posted to record args["id"].
func (c *Chatter) RecordFeed(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpRecordFeed)
	return c.run(ctx, op, args, cb)
}

// GroupFeed reads the feed of group args["id"].
func (c *Chatter) GroupFeed(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpGroupFeed)
	return c.run(ctx, op, args, cb)
}

// PostComment comments args["text"] on feed element args["id"].
func (c *Chatter) PostComment(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpPostComment)
	return c.run(ctx, op, args, cb)
}

// LikeFeedItem likes feed element args["id"].
func (c *Chatter) LikeFeedItem(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpLikeFeedItem)
	return c.run(ctx, op, args, cb)
}

// PostFeedItem posts args["text"] as a new feed item on subject args["id"].
func (c *Chatter) PostFeedItem(ctx context.Context, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, _ := lookup(OpPostFeedItem)
	return c.run(ctx, op, args, cb)
}

// Invoke runs the operation called name.
func (c *Chatter) Invoke(ctx context.Context, name string, args salesforce.Args, cb salesforce.Callback) (*salesforce.Pending, error) {
	op, ok := lookup(name)
	if !ok {
		return nil, c.fail(fmt.Errorf("%w: %s", salesforce.ErrUnknownFunction, name), cb)
	}
	return c.run(ctx, op, args, cb)
}
