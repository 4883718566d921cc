package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileModelStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "model.json")
	s := NewFileModelStore(path)

	blob, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, blob)

	require.NoError(t, s.Save(ctx, []byte(`{"version":1}`)))
	require.NoError(t, s.Save(ctx, []byte(`{"version":2}`)))

	blob, ok, err = s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"version":2}`, string(blob))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestRedisModelStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewRedisModelStore(client, "fincast:model")

	_, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Save(ctx, []byte("blob")))
	got, err := mr.Get("fincast:model")
	require.NoError(t, err)
	assert.Equal(t, "blob", got)

	blob, ok, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("blob"), blob)
}

func TestRedisModelStoreSurfacesErrors(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	s := NewRedisModelStore(client, "k")
	mr.Close()

	_, _, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, s.Save(context.Background(), []byte("x")))
}
