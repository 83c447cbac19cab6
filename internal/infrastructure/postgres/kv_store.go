package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// DBTX subconjunto de pgxpool.Pool / pgx.Tx que usa el store (permite inyectar pgxmock en tests).
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_storage (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      TEXT        NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
)`

// KVStore slots de sesión en la tabla client_storage, aislados por namespace.
type KVStore struct {
	db        DBTX
	namespace string
}

// NewKVStore construye el adaptador sobre un pool (o cualquier DBTX).
func NewKVStore(db DBTX, namespace string) *KVStore {
	if namespace == "" {
		namespace = "default"
	}
	return &KVStore{db: db, namespace: namespace}
}

// EnsureSchema crea la tabla si no existe.
func (s *KVStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("crear tabla client_storage: %w", err)
	}
	return nil
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx,
		`SELECT value FROM client_storage WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("leer %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO client_storage (namespace, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := s.db.Exec(ctx, query, s.namespace, key, value); err != nil {
		return fmt.Errorf("guardar %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx,
		`DELETE FROM client_storage WHERE namespace = $1 AND key = $2`,
		s.namespace, key,
	); err != nil {
		return fmt.Errorf("borrar %s: %w", key, err)
	}
	return nil
}
