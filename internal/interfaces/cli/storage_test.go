package cli_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/file"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/memory"
	"github.com/yakumwamba/lpg-delivery-access/internal/interfaces/cli"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

func TestOpenStorage_Drivers(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name  string
		cfg   config.Config
		check func(t *testing.T, kv any)
	}{
		{"memory", config.Config{Storage: config.StorageConfig{Driver: "memory"}}, func(t *testing.T, kv any) {
			assert.IsType(t, &memory.KVStore{}, kv)
		}},
		{"file", config.Config{Storage: config.StorageConfig{Driver: "file", FilePath: filepath.Join(t.TempDir(), "s.json")}}, func(t *testing.T, kv any) {
			assert.IsType(t, &file.KVStore{}, kv)
		}},
		{"redis", config.Config{Storage: config.StorageConfig{Driver: "redis", Namespace: "t"}, Redis: config.RedisConfig{Addr: mr.Addr()}}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			kv, closeFn, err := cli.OpenStorage(ctx, &cfg)
			require.NoError(t, err)
			defer func() { require.NoError(t, closeFn()) }()

			require.NoError(t, kv.Set(ctx, "authToken", "tok"))
			v, ok, err := kv.Get(ctx, "authToken")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok", v)
			if tt.check != nil {
				tt.check(t, kv)
			}
		})
	}
	assert.True(t, mr.Exists("zamgas:session:t:authToken"))
}

func TestOpenStorage_DriverDesconocido(t *testing.T) {
	_, _, err := cli.OpenStorage(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "floppy"}})
	assert.Error(t, err)
}

func TestNamespace(t *testing.T) {
	assert.Equal(t, "mio", cli.Namespace(config.StorageConfig{Namespace: "mio"}))

	ns := cli.Namespace(config.StorageConfig{})
	_, err := uuid.Parse(ns)
	require.NoError(t, err)
	assert.Equal(t, ns, cli.Namespace(config.StorageConfig{}), "estable entre llamadas")
}
