package session

import (
	"context"
	"slices"
	"sync"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// Store fuente única de "quién usa la aplicación". No hay instancia global:
// se construye una y se inyecta en quien la necesite.
//
// Estados: Unauthenticated (inicial) y Authenticated. Establish sobre una sesión
// autenticada sobrescribe en el lugar; Terminate es idempotente.
type Store struct {
	mu         sync.RWMutex
	identity   *entity.Identity
	credential string
	persister  *Persister
}

// NewStore construye un store vacío. persister puede ser nil (solo memoria).
func NewStore(persister *Persister) *Store {
	if persister == nil {
		persister = NewPersister(nopLogger())
	}
	return &Store{persister: persister}
}

// Establish deja la sesión autenticada y replica identidad y credencial en los sinks.
// El cambio en memoria no depende del resultado de la persistencia.
func (s *Store) Establish(ctx context.Context, identity entity.Identity, credential string) {
	normalized := identity.Normalized()

	s.mu.Lock()
	s.identity = &normalized
	s.credential = credential
	s.mu.Unlock()

	s.persister.Persist(ctx, normalized, credential)
}

// Terminate vuelve al estado inicial y borra los slots durables.
func (s *Store) Terminate(ctx context.Context) {
	s.mu.Lock()
	s.identity = nil
	s.credential = ""
	s.mu.Unlock()

	s.persister.Clear(ctx)
}

// UpdateIdentity aplica un merge superficial sobre la identidad actual; sin identidad no hace nada.
// El resultado NO se persiste: al restaurar la sesión se verá la identidad de Establish.
func (s *Store) UpdateIdentity(patch entity.IdentityPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return
	}
	merged := patch.Apply(*s.identity).Normalized()
	s.identity = &merged
}

// Restore hidrata la sesión desde la fuente durable del persister sin reescribir los sinks.
// Devuelve true si quedó autenticada. Slots incompletos o corruptos dejan la sesión sin autenticar.
func (s *Store) Restore(ctx context.Context) (bool, error) {
	snap, ok, err := s.persister.Load(ctx)
	if err != nil || !ok {
		return false, err
	}
	normalized := snap.Identity.Normalized()

	s.mu.Lock()
	s.identity = &normalized
	s.credential = snap.Credential
	s.mu.Unlock()
	return true, nil
}

// Snapshot devuelve una copia consistente del estado actual.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Snapshot{}
	}
	id := *s.identity
	id.Permissions = slices.Clone(s.identity.Permissions)
	return Snapshot{Identity: &id, Credential: s.credential}
}

// IsAuthenticated ver Snapshot.IsAuthenticated.
func (s *Store) IsAuthenticated() bool { return s.Snapshot().IsAuthenticated() }

// Identity devuelve una copia de la identidad actual, o nil.
func (s *Store) Identity() *entity.Identity { return s.Snapshot().Identity }

// Credential devuelve el bearer token actual, o "".
func (s *Store) Credential() string { return s.Snapshot().Credential }

// Consultas derivadas; delegan en Snapshot.
func (s *Store) IsAdmin() bool                         { return s.Snapshot().IsAdmin() }
func (s *Store) AdminRole() string                     { return s.Snapshot().AdminRole() }
func (s *Store) HasPermission(name string) bool        { return s.Snapshot().HasPermission(name) }
func (s *Store) HasAnyPermission(names []string) bool  { return s.Snapshot().HasAnyPermission(names) }
func (s *Store) HasAllPermissions(names []string) bool { return s.Snapshot().HasAllPermissions(names) }
