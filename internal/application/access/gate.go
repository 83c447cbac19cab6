package access

import "github.com/yakumwamba/lpg-delivery-access/internal/application/session"

// Gate devuelve content si la consulta se concede y fallback en caso contrario.
// Para el fallback por defecto ("nada") se pasa el valor cero de T.
func Gate[T any](s session.Snapshot, q Query, content, fallback T) T {
	if Evaluate(s, q) {
		return content
	}
	return fallback
}

// Filter conserva los elementos cuya consulta se concede, en el orden original.
func Filter[T any](s session.Snapshot, items []T, queryOf func(T) Query) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Evaluate(s, queryOf(it)) {
			out = append(out, it)
		}
	}
	return out
}
