package chatter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const (
	SegmentTypeText         = "Text"
	FeedElementTypeFeedItem = "FeedItem"
)

// MessageSegment is one typed piece of a feed element body.
type MessageSegment struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// MessageBody holds the segments of a post or comment.
type MessageBody struct {
	MessageSegments []MessageSegment `json:"messageSegments"`
}

// FeedElementInput is the request body for comments and feed items.
// FeedElementType and SubjectID are only sent for top-level feed items.
type FeedElementInput struct {
	Body            MessageBody `json:"body"`
	FeedElementType *string     `json:"feedElementType,omitempty"`
	SubjectID       *string     `json:"subjectId,omitempty"`
}

// BodyOption sets an optional top-level field of a FeedElementInput.
type BodyOption func(*FeedElementInput)

// AsFeedItem marks the body as a new feed item posted to subjectID.
func AsFeedItem(subjectID string) BodyOption {
	return func(in *FeedElementInput) {
		feedElementType := FeedElementTypeFeedItem
		in.FeedElementType = &feedElementType
		in.SubjectID = &subjectID
	}
}

// NewTextBody builds a feed element body with a single text segment.
func NewTextBody(text string, opts ...BodyOption) FeedElementInput {
	in := FeedElementInput{
		Body: MessageBody{
			MessageSegments: []MessageSegment{{Type: SegmentTypeText, Text: text}},
		},
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// TextBody serializes NewTextBody(text, opts...) to JSON.
func TextBody(text string, opts ...BodyOption) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewTextBody(text, opts...)); err != nil {
		return "", fmt.Errorf("failed to marshal feed element body: %w", err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
