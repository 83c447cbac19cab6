package memory

import (
	"context"
	"maps"
	"sync"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
)

var _ repository.KeyValueStore = (*KVStore)(nil)

// KVStore almacenamiento clave/valor en memoria. Útil para tests y para el edge (sesión por request).
type KVStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewKVStore construye un almacenamiento vacío.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]string)}
}

func (s *KVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *KVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *KVStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Dump copia del contenido actual.
func (s *KVStore) Dump() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.data)
}
