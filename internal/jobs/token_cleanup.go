package jobs

import (
	"context"
	"time"
)

// ExpiredTokenPurger deletes refresh tokens that expired before a cutoff
type ExpiredTokenPurger interface {
	DeleteExpiredRefreshTokens(ctx context.Context, before time.Time) error
}

// TokenCleanupTask returns a task that purges expired refresh tokens.
// Revoked but unexpired tokens are kept so reuse can still be detected.
func TokenCleanupTask(tokens ExpiredTokenPurger) Task {
	return func(ctx context.Context) error {
		return tokens.DeleteExpiredRefreshTokens(ctx, time.Now().UTC())
	}
}
