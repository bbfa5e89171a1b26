package repository_test

import (
	"context"
	"testing"
	"time"

	"document-versioning-server/config"
	"document-versioning-server/internal/model"
	"document-versioning-server/internal/repository"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRepository(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	client := &config.RedisClient{Client: redis.NewClient(&redis.Options{Addr: m.Addr()})}
	repo := repository.NewCacheRepository(client, time.Minute)
	ctx := context.Background()

	missing, err := repo.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	document := &model.Document{
		UUID:               "doc-1",
		FileName:           "contract.txt",
		Version:            model.VersionTag{Major: 1, Minor: 1},
		CurrentVersionUUID: "ver-2",
	}
	require.NoError(t, repo.SetDocument(ctx, document))
	assert.True(t, m.Exists("document:doc-1"))

	cached, err := repo.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, document.Version, cached.Version)
	assert.Equal(t, "ver-2", cached.CurrentVersionUUID)

	m.FastForward(2 * time.Minute)
	expired, err := repo.GetDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, expired)

	require.NoError(t, repo.SetDocument(ctx, document))
	require.NoError(t, repo.DeleteDocument(ctx, "doc-1"))
	assert.False(t, m.Exists("document:doc-1"))
}
