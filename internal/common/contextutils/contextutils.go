package contextutils

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// CheckCancellation returns a non-nil error when ctx is already done,
// logging the abandoned operation. The returned error wraps ctx.Err() so
// callers can still match context.Canceled or DeadlineExceeded.
func CheckCancellation(ctx context.Context, logger zerolog.Logger, operation string) error {
	select {
	case <-ctx.Done():
		logger.Info().Err(ctx.Err()).Str("operation", operation).Msg("Cancellation requested")
		return fmt.Errorf("%s cancelled: %w", operation, ctx.Err())
	default:
		return nil
	}
}
