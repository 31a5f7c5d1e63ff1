package logger

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ctxKey string

const opIDKey ctxKey = "op_id"

// WithOpID tags the context with a fresh operation id. Every user gesture
// (add to cart, assign crew, ...) starts one logical operation; the remote
// call and the reconcile read that follows share the same id in the logs.
func WithOpID(ctx context.Context) context.Context {
	return context.WithValue(ctx, opIDKey, uuid.NewString())
}

func OpIDFrom(ctx context.Context) string {
	if v := ctx.Value(opIDKey); v != nil {
		return v.(string)
	}
	return ""
}

// FromCtx returns logger with op_id automatically added
func FromCtx(ctx context.Context) *zap.Logger {
	opID := OpIDFrom(ctx)
	if opID == "" {
		return L()
	}
	return L().With(zap.String("op_id", opID))
}
