package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Login ruta de entrada sugerida cuando el acceso se deniega.
	Login string `json:"login,omitempty"`
}
