package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RelatorioFilter is the parsed filter set shared by the paginated report,
// the whole-period totals and the CSV export. Inicio/Fim are inclusive
// day bounds already expanded to full timestamps.
type RelatorioFilter struct {
	Inicio          time.Time
	Fim             time.Time
	UsuarioID       *uuid.UUID
	FormaPagamento  string
	Tabela          string
	Baixa           string
	Indicador       string
	ProfissionalID  *uuid.UUID
	EspecialidadeID *uuid.UUID
	Texto           string
}

// ─── Paginated report ────────────────────────────────────────────────────────

type PageMeta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type RelatorioPageResponse struct {
	Rows []RecebimentoResponse `json:"rows"`
	Meta PageMeta              `json:"meta"`
}

// ─── Totals ──────────────────────────────────────────────────────────────────

// GrupoTotal is one grouped sum (by forma, indicador or profissional),
// ordered by descending value; empty keys are reported as "—".
type GrupoTotal struct {
	Chave string          `json:"k"`
	Valor decimal.Decimal `json:"v"`
}

// ExameTotal is a per-procedure total, further broken down by forma de
// pagamento. The amounts are tabela-resolved procedure prices only,
// never the record's base amount.
type ExameTotal struct {
	Total  decimal.Decimal            `json:"total"`
	Formas map[string]decimal.Decimal `json:"formas"`
}

type TotaisResponse struct {
	TotalGeral      decimal.Decimal       `json:"totalGeral"`
	PorForma        []GrupoTotal          `json:"porForma"`
	PorIndicador    []GrupoTotal          `json:"porIndicador"`
	PorProfissional []GrupoTotal          `json:"porProfissional"`
	Exames          map[string]ExameTotal `json:"exames"`
}

// ─── Dashboard / fechamento ──────────────────────────────────────────────────

type KPIResponse struct {
	TotalHoje    decimal.Decimal `json:"totalHoje"`
	DinheiroHoje decimal.Decimal `json:"dinheiroHoje"`
	SaidasHoje   decimal.Decimal `json:"saidasHoje"`
	TotalMes     decimal.Decimal `json:"totalMes"`
}

type FechamentoDinheiro struct {
	SaldoInicial decimal.Decimal `json:"saldo_inicial"`
	Recebido     decimal.Decimal `json:"recebido"`
	Saidas       decimal.Decimal `json:"saidas"`
	SaldoFinal   decimal.Decimal `json:"saldo_final"`
}

type FechamentoResponse struct {
	Caixa         CaixaResponse      `json:"caixa"`
	TotalRecebido decimal.Decimal    `json:"totalRecebido"`
	PorForma      []GrupoTotal       `json:"porForma"`
	Dinheiro      FechamentoDinheiro `json:"dinheiro"`
}
