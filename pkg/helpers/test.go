package helpers

import (
	"context"
	"log/slog"

	"github.com/GregMSThompson/cashflow-backend/pkg/logger"
)

// TestCtx returns a context carrying a discarding logger at debug level, so debug-only
// branches run in tests without producing output.
func TestCtx() context.Context {
	log := slog.New(logger.NewTestHandler(slog.LevelDebug))
	return logger.ToContext(context.Background(), log)
}
