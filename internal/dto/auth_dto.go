package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	Senha string `json:"senha" validate:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CriarUsuarioRequest creates either a login-capable account (email+senha
// present) or, for legacy compatibility, an inactive placeholder keyed
// only by name.
type CriarUsuarioRequest struct {
	Nome  string `json:"nome"  validate:"required,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
	Senha string `json:"senha" validate:"omitempty,min=6"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID    string `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Ativo bool   `json:"ativo"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	Usuario      UsuarioResponse `json:"usuario"`
}
