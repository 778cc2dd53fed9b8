package dto

import "github.com/shopspring/decimal"

type SaidaRequest struct {
	CaixaID    string          `json:"caixa_id"   validate:"required,uuid"`
	Descricao  string          `json:"descricao"  validate:"required,min=2"`
	Valor      decimal.Decimal `json:"valor"      validate:"required,gt=0"`
	Origem     string          `json:"origem"     validate:"required"`
	Observacao string          `json:"observacao"`
}

type SaidaResponse struct {
	ID         string          `json:"id"`
	CaixaID    string          `json:"caixa_id"`
	Descricao  string          `json:"descricao"`
	Valor      decimal.Decimal `json:"valor"`
	Origem     string          `json:"origem"`
	Observacao string          `json:"observacao"`
	CreatedAt  string          `json:"created_at"`
}
