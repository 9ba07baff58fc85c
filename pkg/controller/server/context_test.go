package server_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/k-morita/deployscope/pkg/controller/server"
	"github.com/k-morita/deployscope/pkg/utils/logging"
	"github.com/m-mizutani/gt"
)

func TestDetachContext(t *testing.T) {
	t.Run("inherits logger from original context", func(t *testing.T) {
		logger := slog.Default().With("test", "value")
		ctx := logging.With(context.Background(), logger)

		bgCtx := server.DetachContext(ctx)
		gt.V(t, logging.From(bgCtx)).Equal(logger)
	})

	t.Run("inherits request ID and time function", func(t *testing.T) {
		reqID, ctx := logging.CtxRequestID(context.Background())
		fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
		ctx = logging.CtxWithTime(ctx, func() time.Time { return fixed })

		bgCtx := server.DetachContext(ctx)

		inheritedID, _ := logging.CtxRequestID(bgCtx)
		gt.V(t, inheritedID).Equal(reqID)
		gt.V(t, logging.CtxTime(bgCtx)).Equal(fixed)
	})

	t.Run("survives cancellation of the original context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		bgCtx := server.DetachContext(ctx)

		cancel()

		gt.V(t, ctx.Err()).Equal(context.Canceled)
		gt.V(t, bgCtx.Err()).Equal(nil)
	})
}
