package session

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/yakumwamba/lpg-delivery-access/internal/domain/entity"
)

// ErrCorruptSlot un slot durable existe pero no se puede decodificar.
var ErrCorruptSlot = errors.New("slot de sesión corrupto")

// Sink destino durable de la sesión (slot de credencial, slot de identidad, cookie...).
// Cada sink es independiente y best-effort.
type Sink interface {
	Name() string
	Persist(ctx context.Context, identity entity.Identity, credential string) error
	Clear(ctx context.Context) error
}

// Source lee una sesión previamente persistida. found=false si falta algún slot.
type Source interface {
	Load(ctx context.Context) (snap Snapshot, found bool, err error)
}

// Persister centraliza el fan-out de persistencia: "persist session" sobre una lista explícita de sinks.
// Un fallo en un sink se registra y no detiene a los demás ni revierte el estado en memoria.
type Persister struct {
	sinks  []Sink
	source Source
	log    zerolog.Logger
}

// PersisterOptions opciones de NewSlotPersister.
type PersisterOptions struct {
	Logger zerolog.Logger
	// Extra sinks escritos después de los slots (p.ej. la cookie en web).
	Extra []Sink
}

// NewPersister construye el fan-out con los sinks en el orden de escritura.
func NewPersister(log zerolog.Logger, sinks ...Sink) *Persister {
	return &Persister{sinks: sinks, log: log}
}

// WithSource configura desde dónde se hidrata la sesión en Restore.
func (p *Persister) WithSource(src Source) *Persister {
	p.source = src
	return p
}

// Sinks devuelve los nombres de los sinks configurados, en orden.
func (p *Persister) Sinks() []string {
	names := make([]string, 0, len(p.sinks))
	for _, s := range p.sinks {
		names = append(names, s.Name())
	}
	return names
}

// Persist escribe identidad y credencial en todos los sinks.
func (p *Persister) Persist(ctx context.Context, identity entity.Identity, credential string) {
	for _, s := range p.sinks {
		if err := s.Persist(ctx, identity, credential); err != nil {
			p.log.Warn().Err(err).Str("sink", s.Name()).Msg("persistir sesión")
		}
	}
}

// Clear borra la sesión de todos los sinks.
func (p *Persister) Clear(ctx context.Context) {
	for _, s := range p.sinks {
		if err := s.Clear(ctx); err != nil {
			p.log.Warn().Err(err).Str("sink", s.Name()).Msg("borrar sesión")
		}
	}
}

// Load lee la sesión desde la fuente configurada. Sin fuente no hay nada que restaurar.
func (p *Persister) Load(ctx context.Context) (Snapshot, bool, error) {
	if p.source == nil {
		return Snapshot{}, false, nil
	}
	snap, found, err := p.source.Load(ctx)
	if errors.Is(err, ErrCorruptSlot) {
		p.log.Warn().Err(err).Msg("sesión persistida descartada")
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, err
	}
	if !found || !snap.IsAuthenticated() {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func nopLogger() zerolog.Logger { return zerolog.Nop() }
