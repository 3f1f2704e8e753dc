package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workify/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

func TestMemoryObjectStorage(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	t.Run("upload keeps a copy", func(t *testing.T) {
		data := []byte("logo")
		require.NoError(t, s.Upload(ctx, "logos/acme.png", data, "image/png"))
		data[0] = 'X'

		obj, ok := s.Get("logos/acme.png")
		require.True(t, ok)
		assert.Equal(t, []byte("logo"), obj.Data)
		assert.Equal(t, "image/png", obj.ContentType)

		exists, err := s.ObjectExists(ctx, "logos/acme.png")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("download url", func(t *testing.T) {
		url, expiresAt, err := s.GenerateDownloadURL(ctx, "documents/a b.pdf", time.Minute)
		require.NoError(t, err)
		assert.Contains(t, url, "http://storage.local/documents/a%20b.pdf?expires=")
		assert.WithinDuration(t, time.Now().Add(time.Minute), expiresAt, 5*time.Second)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.DeleteObject(ctx, "logos/acme.png"))
		require.NoError(t, s.DeleteObject(ctx, "logos/acme.png"))
		exists, err := s.ObjectExists(ctx, "logos/acme.png")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("empty key", func(t *testing.T) {
		assert.Error(t, s.Upload(ctx, "", nil, ""))
		assert.Error(t, s.DeleteObject(ctx, ""))
		_, err := s.ObjectExists(ctx, "")
		assert.Error(t, err)
		_, _, err = s.GenerateDownloadURL(ctx, "", 0)
		assert.Error(t, err)
	})
}

func TestMemoryObjectStorage_Concurrent(t *testing.T) {
	s := NewMemoryObjectStorage()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := "avatars/" + string(rune('a'+i%26)) + "/" + time.Now().String()
			_ = s.Upload(ctx, key, []byte{byte(i)}, "image/png")
			_, _ = s.ObjectExists(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Positive(t, s.Len())
}

func TestNew(t *testing.T) {
	t.Run("memory provider", func(t *testing.T) {
		s, err := New(context.Background(), &config.StorageConfig{Provider: "memory"}, zap.NewNop())
		require.NoError(t, err)
		assert.IsType(t, &MemoryObjectStorage{}, s)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := New(context.Background(), &config.StorageConfig{Provider: "ftp"}, zap.NewNop())
		assert.Error(t, err)
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := New(context.Background(), nil, zap.NewNop())
		assert.Error(t, err)
	})
}
