package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/training-scheduler-api/pkg/errors"
)

func TestCacheRepositoryWithoutClientIsEmpty(t *testing.T) {
	repo := NewCacheRepository(nil, nil)
	ctx := context.Background()

	assert.False(t, repo.Enabled())
	assert.NoError(t, repo.Set(ctx, "proposal:1", map[string]string{"a": "b"}, time.Minute))

	var dest map[string]string
	assert.ErrorIs(t, repo.Get(ctx, "proposal:1", &dest), appErrors.ErrCacheMiss)
	assert.NoError(t, repo.Delete(ctx, "proposal:1"))
	assert.NoError(t, repo.DeleteByPattern(ctx, "proposal:*"))
	assert.NoError(t, repo.Ping(ctx))
	assert.NoError(t, repo.Close())
}
