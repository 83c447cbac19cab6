package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
	"github.com/yakumwamba/lpg-delivery-access/internal/domain/repository"
)

// Claves de los slots durables (mismas que usa el cliente web).
const (
	CredentialKey = "authToken"
	IdentityKey   = "user"
)

// CredentialSlot guarda el bearer token en crudo.
type CredentialSlot struct {
	kv repository.KeyValueStore
}

// NewCredentialSlot construye el sink del slot de credencial.
func NewCredentialSlot(kv repository.KeyValueStore) *CredentialSlot {
	return &CredentialSlot{kv: kv}
}

func (c *CredentialSlot) Name() string { return "credential_slot" }

func (c *CredentialSlot) Persist(ctx context.Context, _ entity.Identity, credential string) error {
	return c.kv.Set(ctx, CredentialKey, credential)
}

func (c *CredentialSlot) Clear(ctx context.Context) error {
	return c.kv.Delete(ctx, CredentialKey)
}

// IdentitySlot guarda la identidad serializada en JSON.
type IdentitySlot struct {
	kv repository.KeyValueStore
}

// NewIdentitySlot construye el sink del slot de identidad.
func NewIdentitySlot(kv repository.KeyValueStore) *IdentitySlot {
	return &IdentitySlot{kv: kv}
}

func (i *IdentitySlot) Name() string { return "identity_slot" }

func (i *IdentitySlot) Persist(ctx context.Context, identity entity.Identity, _ string) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("serializar identidad: %w", err)
	}
	return i.kv.Set(ctx, IdentityKey, string(raw))
}

func (i *IdentitySlot) Clear(ctx context.Context) error {
	return i.kv.Delete(ctx, IdentityKey)
}

// SlotSource lee ambos slots como par. Si falta cualquiera de los dos no hay sesión.
type SlotSource struct {
	kv repository.KeyValueStore
}

// NewSlotSource construye la fuente de restauración sobre el mismo almacenamiento de los slots.
func NewSlotSource(kv repository.KeyValueStore) *SlotSource {
	return &SlotSource{kv: kv}
}

func (s *SlotSource) Load(ctx context.Context) (Snapshot, bool, error) {
	credential, ok, err := s.kv.Get(ctx, CredentialKey)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("leer slot de credencial: %w", err)
	}
	if !ok || credential == "" {
		return Snapshot{}, false, nil
	}
	raw, ok, err := s.kv.Get(ctx, IdentityKey)
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("leer slot de identidad: %w", err)
	}
	if !ok {
		return Snapshot{}, false, nil
	}
	var identity entity.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		return Snapshot{}, false, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	return Snapshot{Identity: &identity, Credential: credential}, true, nil
}

// NewSlotPersister arma el persister estándar: slot de credencial, slot de identidad y los sinks extra.
func NewSlotPersister(kv repository.KeyValueStore, opts PersisterOptions) *Persister {
	sinks := []Sink{NewCredentialSlot(kv), NewIdentitySlot(kv)}
	sinks = append(sinks, opts.Extra...)
	return NewPersister(opts.Logger, sinks...).WithSource(NewSlotSource(kv))
}
