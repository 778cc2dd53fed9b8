package dto

// Profissionais and especialidades share the same minimal shape.

type CadastroRequest struct {
	Nome string `json:"nome" validate:"required,min=2"`
}

type CadastroResponse struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}
