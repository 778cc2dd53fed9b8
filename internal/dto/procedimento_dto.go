package dto

import "github.com/shopspring/decimal"

// UpsertProcedimentoRequest inserts or, when the nome already exists,
// updates the three price points of a procedimento.
type UpsertProcedimentoRequest struct {
	Nome            string          `json:"nome"             validate:"required,min=2"`
	ValorCartao     decimal.Decimal `json:"valor_cartao"     validate:"min=0"`
	ValorParticular decimal.Decimal `json:"valor_particular" validate:"min=0"`
	ValorOtica      decimal.Decimal `json:"valor_otica"      validate:"min=0"`
}

type ProcedimentoResponse struct {
	ID              string          `json:"id"`
	Nome            string          `json:"nome"`
	ValorCartao     decimal.Decimal `json:"valor_cartao"`
	ValorParticular decimal.Decimal `json:"valor_particular"`
	ValorOtica      decimal.Decimal `json:"valor_otica"`
}
