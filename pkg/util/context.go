package util

import (
	"context"
	"strconv"
)

type key string

const (
	eventIDKey = key("event-id")
)

// WithRequestID returns a context with request id. An empty id generates a new one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return ContextWithRequestID(ctx, id)
}

// WithEventID returns a context with event id
func WithEventID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, eventIDKey, id)
}

// WithFeedPosition tags ctx with an event id built from a feed partition and offset.
func WithFeedPosition(ctx context.Context, partition int, offset int64) context.Context {
	return WithEventID(ctx, strconv.Itoa(partition)+"-"+strconv.FormatInt(offset, 10))
}

// GetRequestID returns request id from context, empty if not present.
func GetRequestID(ctx context.Context) string {
	return FromContext(ctx)
}

// GetEventID returns event id from context, empty if not present.
func GetEventID(ctx context.Context) string {
	id, _ := ctx.Value(eventIDKey).(string)
	return id
}
