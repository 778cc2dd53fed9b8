package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type AbrirCaixaRequest struct {
	DataCaixa    string          `json:"data_caixa"    validate:"required,datetime=2006-01-02"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial" validate:"min=0"`
	Obs          string          `json:"obs"`
}

type EncerrarCaixaRequest struct {
	DataCaixa string `json:"data_caixa" validate:"required,datetime=2006-01-02"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CaixaResponse struct {
	ID           string          `json:"id"`
	UsuarioID    string          `json:"usuario_id"`
	DataCaixa    string          `json:"data_caixa"`
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	Obs          string          `json:"obs"`
	AbertoEm     string          `json:"aberto_em"`
	EncerradoEm  *string         `json:"encerrado_em"`
}

// CaixaListItem is a caixa row joined with the owning user's name,
// as returned by the date-range listing.
type CaixaListItem struct {
	CaixaResponse
	UsuarioNome string `json:"usuario_nome"`
}
