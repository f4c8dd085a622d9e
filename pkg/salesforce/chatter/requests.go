package chatter

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/natserract/sfchatter/pkg/salesforce"
)

var requestValidator = validator.New()

// Request is a typed input for one operation. Required fields are checked
// before anything is built, and empty strings count as missing.
type Request interface {
	Operation() string
	args() salesforce.Args
}

// Community scopes a request to an Experience Cloud site. An empty NetworkID
// leaves the client's default in place.
type Community struct {
	NetworkID string `json:"networkId,omitempty"`
}

func (c Community) apply(args salesforce.Args) salesforce.Args {
	if c.NetworkID != "" {
		args["networkId"] = c.NetworkID
	}
	return args
}

type UserStatisticsRequest struct {
	Community
	ID string `json:"id" validate:"required"`
}

func (r UserStatisticsRequest) Operation() string { return OpUserStatistics }
func (r UserStatisticsRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID})
}

type MyNewsFeedRequest struct {
	Community
}

func (r MyNewsFeedRequest) Operation() string { return OpMyNewsFeed }
func (r MyNewsFeedRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{})
}

type RecordFeedRequest struct {
	Community
	ID string `json:"id" validate:"required"`
}

func (r RecordFeedRequest) Operation() string { return OpRecordFeed }
func (r RecordFeedRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID})
}

type GroupFeedRequest struct {
	Community
	ID string `json:"id" validate:"required"`
}

func (r GroupFeedRequest) Operation() string { return OpGroupFeed }
func (r GroupFeedRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID})
}

type PostCommentRequest struct {
	Community
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

func (r PostCommentRequest) Operation() string { return OpPostComment }
func (r PostCommentRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID, "text": r.Text})
}

type LikeFeedItemRequest struct {
	Community
	ID string `json:"id" validate:"required"`
}

func (r LikeFeedItemRequest) Operation() string { return OpLikeFeedItem }
func (r LikeFeedItemRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID})
}

type PostFeedItemRequest struct {
	Community
	ID   string `json:"id" validate:"required"`
	Text string `json:"text" validate:"required"`
}

func (r PostFeedItemRequest) Operation() string { return OpPostFeedItem }
func (r PostFeedItemRequest) args() salesforce.Args {
	return r.apply(salesforce.Args{"id": r.ID, "text": r.Text})
}

// Send validates req and runs its operation.
func (c *Chatter) Send(ctx context.Context, req Request, cb salesforce.Callback) (*salesforce.Pending, error) {
	if req == nil {
		return nil, c.fail(fmt.Errorf("request is required"), cb)
	}
	if v := reflect.ValueOf(req); v.Kind() == reflect.Ptr && v.IsNil() {
		return nil, c.fail(fmt.Errorf("request is required"), cb)
	}
	op, ok := lookup(req.Operation())
	if !ok {
		return nil, c.fail(fmt.Errorf("%w: %s", salesforce.ErrUnknownFunction, req.Operation()), cb)
	}

	if err := requestValidator.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return nil, c.fail(op.validationError(), cb)
		}
		return nil, c.fail(fmt.Errorf("failed to validate %s request: %w", op.name, err), cb)
	}

	return c.run(ctx, op, req.args(), cb)
}
