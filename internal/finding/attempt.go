package finding

import (
	"context"
	"log/slog"
)

// Attempt runs a best-effort remote call. A failure is logged under op and
// reported as ok=false; it never reaches the caller as an error.
func Attempt[T any](ctx context.Context, logger *slog.Logger, op string, call func(context.Context) (T, error)) (T, bool) {
	v, err := call(ctx)
	if err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(ctx, "remote lookup failed, continuing with local checks",
			"op", op,
			"error", err,
		)
		var zero T
		return zero, false
	}
	return v, true
}
