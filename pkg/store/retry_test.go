package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/darianrosebrook/portfolio-sub007/pkg/cache"
)

func TestMarkTransient(t *testing.T) {
	assert.NoError(t, markTransient(nil))

	plain := errors.New("bad document")
	assert.Same(t, plain, markTransient(plain))
	assert.False(t, cache.IsRetryable(markTransient(plain)))

	err := markTransient(context.DeadlineExceeded)
	assert.True(t, cache.IsRetryable(err))
	assert.ErrorIs(t, err, cache.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
