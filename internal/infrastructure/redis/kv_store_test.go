package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

func newTestStore(t *testing.T, namespace string) (*KVStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewKVStore(client, namespace), mr
}

func TestKVStore_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, "cli")

	require.NoError(t, store.Set(ctx, "authToken", "tok"))

	raw, err := mr.Get("zamgas:session:cli:authToken")
	require.NoError(t, err)
	assert.Equal(t, "tok", raw)

	v, ok, err := store.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	require.NoError(t, store.Delete(ctx, "authToken"))
	assert.False(t, mr.Exists("zamgas:session:cli:authToken"))
}

func TestKVStore_ClaveAusente_NoEncontrado(t *testing.T) {
	store, _ := newTestStore(t, "")

	_, ok, err := store.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_NamespacesAislados(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := NewKVStore(client, "a")
	b := NewKVStore(client, "b")
	require.NoError(t, a.Set(ctx, "authToken", "tok-a"))

	_, ok, err := b.Get(ctx, "authToken")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVStore_ServidorCaido_RetornaError(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewKVStore(client, "cli")
	mr.Close()

	_, _, err = store.Get(context.Background(), "authToken")
	assert.Error(t, err)
}

func TestNewClient_URLTienePrioridad(t *testing.T) {
	client, err := NewClient(config.RedisConfig{URL: "redis://localhost:6390/2", Addr: "ignored:1"})
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, "localhost:6390", client.Options().Addr)
	assert.Equal(t, 2, client.Options().DB)

	_, err = NewClient(config.RedisConfig{URL: "://bad"})
	assert.Error(t, err)
}
