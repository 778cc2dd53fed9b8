// Package pricing resolves which of a procedimento's three price points
// applies to a recebimento, and computes record totals from it. Every
// place that shows a total (listagem, relatório, KPIs, fechamento) goes
// through this package — there is exactly one implementation of the rule.
package pricing

import (
	"strings"

	"clinicaixa/internal/model"

	"github.com/shopspring/decimal"
)

// PriceFor returns the price of proc under the given tabela selector.
// Matching is case-insensitive: exact "particular" → ValorParticular,
// substring "cart" → ValorCartao, substring "ótica"/"otica" → ValorOtica.
// An unmatched selector yields zero, not an error — a record priced under
// an unknown tabela simply contributes no procedure value.
func PriceFor(proc model.Procedimento, tabela string) decimal.Decimal {
	t := strings.ToLower(strings.TrimSpace(tabela))
	switch {
	case t == "particular":
		return proc.ValorParticular
	case strings.Contains(t, "cart"):
		return proc.ValorCartao
	case strings.Contains(t, "ótica"), strings.Contains(t, "otica"):
		return proc.ValorOtica
	default:
		return decimal.Zero
	}
}

// TotalFor computes a recebimento's effective total: its base amount plus
// the tabela-resolved price of each linked procedimento.
func TotalFor(rec model.Recebimento) decimal.Decimal {
	total := rec.Valor
	for _, proc := range rec.Procedimentos {
		total = total.Add(PriceFor(proc, rec.Tabela))
	}
	return total
}
