package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/file"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/memory"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/postgres"
	"github.com/yakumwamba/lpg-delivery-access/internal/infrastructure/redis"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

func noop() error { return nil }

// OpenStorage abre el almacenamiento durable de los slots según STORAGE_DRIVER.
func OpenStorage(ctx context.Context, cfg *config.Config) (repository.KeyValueStore, func() error, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return memory.NewKVStore(), noop, nil
	case "file":
		path := cfg.Storage.FilePath
		if path == "" {
			p, err := file.DefaultPath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return file.NewKVStore(path), noop, nil
	case "redis":
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store := redis.NewKVStore(client, Namespace(cfg.Storage))
		return store, store.Close, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewKVStore(pool, Namespace(cfg.Storage))
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, func() error { pool.Close(); return nil }, nil
	}
	return nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido %q", cfg.Storage.Driver)
}

// Namespace STORAGE_NAMESPACE, o un id estable de este equipo y usuario para que varias
// máquinas compartan redis/postgres sin pisarse la sesión.
func Namespace(cfg config.StorageConfig) string {
	if cfg.Namespace != "" {
		return cfg.Namespace
	}
	host, _ := os.Hostname()
	home, _ := os.UserHomeDir()
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(host+"|"+home)).String()
}
