package logging

import (
	"context"

	"github.com/rs/zerolog"
)

type ctxKey struct{ name string }

var (
	loggerKey    = ctxKey{"logger"}
	requestIDKey = ctxKey{"request_id"}
)

// WithLogger attaches logger to ctx; nil attaches the default logger.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext returns the attached logger or the default one.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx != nil {
		if l, _ := ctx.Value(loggerKey).(*zerolog.Logger); l != nil {
			return l
		}
	}
	return Default()
}

func with(ctx context.Context, key string, value any) context.Context {
	l := addField(FromContext(ctx).With(), key, value).Logger()
	return WithLogger(ctx, &l)
}

// WithRequestID records id on ctx and tags its logger with request_id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return with(context.WithValue(ctx, requestIDKey, id), "request_id", id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithCardID(ctx context.Context, id string) context.Context {
	return with(ctx, "card_id", id)
}

func WithOperation(ctx context.Context, op string) context.Context {
	return with(ctx, "operation", op)
}
