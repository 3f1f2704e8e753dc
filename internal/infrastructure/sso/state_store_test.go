package sso

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	identityapp "github.com/workify/backend/internal/application/identity"
)

func TestMemoryStateStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()

	require.NoError(t, store.Put(ctx, "s1", identityapp.SSOState{Next: "/clients"}, time.Minute))

	data, err := store.Take(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "/clients", data.Next)

	again, err := store.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestMemoryStateStore_Expired(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStateStore()
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "s1", identityapp.SSOState{Next: "/"}, time.Minute))
	now = now.Add(2 * time.Minute)

	data, err := store.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRedisStateStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisStateStore(client)
	require.NoError(t, store.Put(ctx, "s1", identityapp.SSOState{Next: "/projects"}, time.Minute))

	ttl, err := client.TTL(ctx, stateKeyPrefix+"s1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	data, err := store.Take(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, "/projects", data.Next)

	again, err := store.Take(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, again)
}
