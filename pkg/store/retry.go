package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
)

// markTransient flags driver network errors and timeouts as retryable for
// cache.RetryWithBackoff. Other errors pass through.
func markTransient(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
	}
	return err
}
