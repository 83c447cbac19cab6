package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrAccountInactive    = errors.New("cuenta inactiva")
	ErrBackendUnavailable = errors.New("backend no disponible")
	ErrInvalidIdentity    = errors.New("identidad inválida")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrNotFound           = errors.New("recurso no encontrado")
)
