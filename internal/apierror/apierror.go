// Package apierror provides the standard error envelope for the API.
// Every 4xx/5xx response goes through this package so that clients always
// receive {"ok": false, "erro": ...} and never internal details (stack
// traces, SQL errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	OK   bool   `json:"ok"`
	Erro string `json:"erro"`
}

func New(msg string) *APIError {
	return &APIError{OK: false, Erro: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	OK     bool              `json:"ok"`
	Erro   string            `json:"erro"`
	Campos map[string]string `json:"campos"`
}

func NewValidation(campos map[string]string) *ValidationError {
	return &ValidationError{OK: false, Erro: "Erro de validação", Campos: campos}
}
