package chatter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/natserract/sfchatter/pkg/salesforce"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const (
	testInstanceURL = "https://example.my.salesforce.com"
	testAPIVersion  = "v65.0"
)

type fakeHost struct {
	oauth       *salesforce.OAuth
	getOpts     int
	dispatched  []*salesforce.RequestOptions
	dispatchCbs []salesforce.Callback
}

func newFakeHost() *fakeHost {
	return &fakeHost{oauth: &salesforce.OAuth{AccessToken: "token", InstanceURL: testInstanceURL}}
}

func (h *fakeHost) APIVersion() string { return testAPIVersion }

func (h *fakeHost) GetOpts(args salesforce.Args, cb salesforce.Callback) *salesforce.RequestOptions {
	h.getOpts++
	opts := &salesforce.RequestOptions{OAuth: h.oauth, Callback: cb}
	if networkID, ok := args["networkId"].(string); ok {
		opts.NetworkID = networkID
	}
	return opts
}

func (h *fakeHost) APIRequest(_ context.Context, opts *salesforce.RequestOptions, cb salesforce.Callback) *salesforce.Pending {
	h.dispatched = append(h.dispatched, opts)
	h.dispatchCbs = append(h.dispatchCbs, cb)
	return &salesforce.Pending{}
}

type recordedCall struct {
	calls int
	err   error
	resp  *salesforce.Response
}

func (r *recordedCall) callback(err error, resp *salesforce.Response) {
	r.calls++
	r.err = err
	r.resp = resp
}

func TestUserStatisticsMissingID(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())
	var rec recordedCall

	pending, err := c.UserStatistics(context.Background(), salesforce.Args{}, rec.callback)

	require.Error(t, err)
	assert.Nil(t, pending)
	assert.Equal(t, "The following values must be passed: id", err.Error())
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, err, rec.err)
	assert.Nil(t, rec.resp)
	assert.Zero(t, host.getOpts, "options must not be prepared for invalid arguments")
	assert.Empty(t, host.dispatched)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, OpUserStatistics, verr.Operation)
}

func TestMissingFieldsNeverDispatch(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		op   string
		args salesforce.Args
	}{
		{OpUserStatistics, salesforce.Args{"text": "x"}},
		{OpRecordFeed, salesforce.Args{}},
		{OpGroupFeed, salesforce.Args{"networkId": "0DB1"}},
		{OpPostComment, salesforce.Args{"id": "0D5xx"}},
		{OpPostComment, salesforce.Args{"text": "hi"}},
		{OpLikeFeedItem, nil},
		{OpPostFeedItem, salesforce.Args{"text": "hello"}},
	}

	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			host := newFakeHost()
			c := NewWithLogger(host, zap.NewNop())
			var rec recordedCall

			pending, err := c.Invoke(ctx, tc.op, tc.args, rec.callback)

			require.Error(t, err)
			assert.Nil(t, pending)
			assert.Equal(t, 1, rec.calls)
			required, _ := Required(tc.op)
			for _, field := range required {
				assert.Contains(t, rec.err.Error(), field)
			}
			assert.Empty(t, host.dispatched)
		})
	}
}

func TestValidArgumentsDispatchOnce(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		op     string
		args   salesforce.Args
		method string
		uri    string
	}{
		{OpUserStatistics, salesforce.Args{"id": "005A"}, "GET", "/chatter/users/005A"},
		{OpMyNewsFeed, salesforce.Args{}, "GET", "/chatter/feeds/record/me/feed-elements"},
		{OpRecordFeed, salesforce.Args{"id": "a0R123"}, "GET", "/chatter/feeds/record/a0R123/feed-elements"},
		{OpGroupFeed, salesforce.Args{"id": "0F9A"}, "GET", "/chatter/feeds/record/0F9A/feed-elements"},
		{OpPostComment, salesforce.Args{"id": "0D5A", "text": "nice"}, "POST", "/chatter/feed-elements/0D5A/capabilities/comments/items"},
		{OpLikeFeedItem, salesforce.Args{"id": "0D5A"}, "POST", "/chatter/feed-elements/0D5A/capabilities/chatter-likes/items"},
		{OpPostFeedItem, salesforce.Args{"id": "001ABC", "text": "hello"}, "POST", "/chatter/feed-elements"},
	}

	for _, tc := range cases {
		t.Run(tc.op, func(t *testing.T) {
			host := newFakeHost()
			c := NewWithLogger(host, zap.NewNop())
			var rec recordedCall

			pending, err := c.Invoke(ctx, tc.op, tc.args, rec.callback)

			require.NoError(t, err)
			assert.NotNil(t, pending)
			assert.Zero(t, rec.calls, "callback belongs to the host after dispatch")
			require.Len(t, host.dispatched, 1)

			opts := host.dispatched[0]
			assert.Equal(t, tc.method, opts.Method)
			assert.Equal(t, testInstanceURL+"/services/data/"+testAPIVersion+tc.uri, opts.URI)
			if tc.method == "GET" || tc.op == OpLikeFeedItem {
				assert.Empty(t, opts.Body)
			} else {
				assert.NotEmpty(t, opts.Body)
			}
		})
	}
}

func TestRecordFeedURI(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.RecordFeed(context.Background(), salesforce.Args{"id": "a0R123"}, nil)

	require.NoError(t, err)
	require.Len(t, host.dispatched, 1)
	assert.Equal(t, testInstanceURL+"/services/data/v65.0/chatter/feeds/record/a0R123/feed-elements", host.dispatched[0].URI)
	assert.Equal(t, "GET", host.dispatched[0].Method)
}

func TestPostFeedItemBody(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.PostFeedItem(context.Background(), salesforce.Args{"id": "001ABC", "text": "hello"}, nil)

	require.NoError(t, err)
	require.Len(t, host.dispatched, 1)
	opts := host.dispatched[0]
	assert.Equal(t, "POST", opts.Method)
	assert.Equal(t, testInstanceURL+"/services/data/v65.0/chatter/feed-elements", opts.URI)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(opts.Body), &got))
	assert.Equal(t, map[string]any{
		"body": map[string]any{
			"messageSegments": []any{
				map[string]any{"type": "Text", "text": "hello"},
			},
		},
		"feedElementType": "FeedItem",
		"subjectId":       "001ABC",
	}, got)
}

func TestPostFeedItemInCommunity(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.PostFeedItem(context.Background(), salesforce.Args{"id": "001ABC", "text": "hello", "networkId": "0DB1"}, nil)

	require.NoError(t, err)
	require.Len(t, host.dispatched, 1)
	assert.Equal(t, testInstanceURL+"/services/data/v65.0/connect/communities/0DB1/chatter/feed-elements", host.dispatched[0].URI)
}

func TestPostCommentBody(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.PostComment(context.Background(), salesforce.Args{"id": "0D5A", "text": "a < b & c"}, nil)

	require.NoError(t, err)
	require.Len(t, host.dispatched, 1)
	assert.Equal(t, `{"body":{"messageSegments":[{"type":"Text","text":"a < b & c"}]}}`, host.dispatched[0].Body)
}

func TestHostReceivesCallback(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())
	var rec recordedCall

	_, err := c.LikeFeedItem(context.Background(), salesforce.Args{"id": "0D5A"}, rec.callback)
	require.NoError(t, err)
	require.Len(t, host.dispatchCbs, 1)

	host.dispatchCbs[0](nil, &salesforce.Response{StatusCode: 201})
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, 201, rec.resp.StatusCode)
}

func TestNonStringArgumentsAreFormatted(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.UserStatistics(context.Background(), salesforce.Args{"id": 42}, nil)

	require.NoError(t, err)
	require.Len(t, host.dispatched, 1)
	assert.Equal(t, testInstanceURL+"/services/data/v65.0/chatter/users/42", host.dispatched[0].URI)
}

func TestInvokeUnknownOperation(t *testing.T) {
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())
	var rec recordedCall

	_, err := c.Invoke(context.Background(), "deleteEverything", salesforce.Args{}, rec.callback)

	require.ErrorIs(t, err, salesforce.ErrUnknownFunction)
	assert.Equal(t, 1, rec.calls)
	assert.Empty(t, host.dispatched)
}

func TestBuiltURIIsLogged(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	host := newFakeHost()
	c := NewWithLogger(host, zap.New(core))

	_, err := c.MyNewsFeed(context.Background(), salesforce.Args{}, nil)
	require.NoError(t, err)

	entries := logs.FilterMessage("Built request URI").All()
	require.Len(t, entries, 1)
	assert.Equal(t, testInstanceURL+"/services/data/v65.0/chatter/feeds/record/me/feed-elements", entries[0].ContextMap()["uri"])
}

func TestValidationErrorRequiredIsACopy(t *testing.T) {
	ctx := context.Background()
	host := newFakeHost()
	c := NewWithLogger(host, zap.NewNop())

	_, err := c.PostComment(ctx, salesforce.Args{"id": "0D5A"}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Required, 2)
	verr.Required[1] = "mutated"

	required, ok := Required(OpPostComment)
	require.True(t, ok)
	required[0] = "mutated"

	_, err = c.PostComment(ctx, salesforce.Args{"id": "0D5A", "text": "nice"}, nil)
	require.NoError(t, err)
	assert.Len(t, host.dispatched, 1)

	_, err = c.PostComment(ctx, salesforce.Args{}, nil)
	require.Error(t, err)
	assert.Equal(t, "The following values must be passed: id, text", err.Error())
	assert.Len(t, host.dispatched, 1)
}

func TestNewUsesProductionLogger(t *testing.T) {
	host := newFakeHost()
	c := New(host)
	require.NotNil(t, c)

	_, err := c.LikeFeedItem(context.Background(), salesforce.Args{"id": "0D5A"}, nil)
	require.NoError(t, err)
	assert.Len(t, host.dispatched, 1)
}
