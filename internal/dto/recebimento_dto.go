package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecebimentoRequest struct {
	CaixaID         string          `json:"caixa_id"         validate:"required,uuid"`
	PacienteNome    string          `json:"paciente_nome"    validate:"required,min=2"`
	PacienteCPF     string          `json:"paciente_cpf"`
	Valor           decimal.Decimal `json:"valor"            validate:"required,gt=0"`
	FormaPagamento  string          `json:"forma_pagamento"  validate:"required"`
	Tabela          string          `json:"tabela"           validate:"required"`
	Baixa           string          `json:"baixa"            validate:"required"`
	Indicador       string          `json:"indicador"        validate:"required"`
	ProfissionalID  *string         `json:"profissional_id"  validate:"omitempty,uuid"`
	EspecialidadeID *string         `json:"especialidade_id" validate:"omitempty,uuid"`
	Observacao      string          `json:"observacao"`
	ProcedimentoIDs []string        `json:"procedimento_ids" validate:"dive,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecebimentoResponse struct {
	ID                string                 `json:"id"`
	CaixaID           string                 `json:"caixa_id"`
	PacienteNome      string                 `json:"paciente_nome"`
	PacienteCPF       string                 `json:"paciente_cpf"`
	Valor             decimal.Decimal        `json:"valor"`
	FormaPagamento    string                 `json:"forma_pagamento"`
	Tabela            string                 `json:"tabela"`
	Baixa             string                 `json:"baixa"`
	Indicador         string                 `json:"indicador"`
	ProfissionalNome  *string                `json:"profissional_nome"`
	EspecialidadeNome *string                `json:"especialidade_nome"`
	Observacao        string                 `json:"observacao"`
	CreatedAt         string                 `json:"created_at"`
	Exames            []ProcedimentoResponse `json:"exames"`
	// Total = valor + Σ preço de cada exame conforme a tabela
	Total decimal.Decimal `json:"total"`
}
