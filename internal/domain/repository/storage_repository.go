package repository

import "context"

// KeyValueStore puerto del almacenamiento durable del cliente (slots clave/valor).
// Get devuelve found=false cuando la clave no existe; no es un error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
