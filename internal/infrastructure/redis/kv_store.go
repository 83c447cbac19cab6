package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
	"github.com/yakumwamba/lpg-delivery-access/pkg/config"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

const keyPrefix = "zamgas:session:"

// KVStore slots de sesión en Redis bajo zamgas:session:<namespace>:<key>.
type KVStore struct {
	client    *goredis.Client
	namespace string
}

// NewClient crea el cliente desde la configuración (REDIS_URL tiene prioridad sobre REDIS_ADDR).
func NewClient(cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.URL != "" {
		opts, err := goredis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		return goredis.NewClient(opts), nil
	}
	return goredis.NewClient(&goredis.Options{Addr: cfg.Addr}), nil
}

// NewKVStore construye el adaptador. namespace vacío usa "default".
func NewKVStore(client *goredis.Client, namespace string) *KVStore {
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{client: client, namespace: namespace}
}

// Close cierra la conexión.
func (s *KVStore) Close() error {
	return s.client.Close()
}

func (s *KVStore) key(k string) string {
	return keyPrefix + s.namespace + ":" + k
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
