package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// tabelaCaseSQL is the SQL mirror of pricing.PriceFor. It exists exactly
// once; every aggregate query below embeds this fragment so the grand
// total, the grouped sums, the KPIs and the fechamento can never drift
// apart on how a procedimento is priced.
const tabelaCaseSQL = `CASE
  WHEN LOWER(r.tabela) = 'particular' THEN COALESCE(pr.valor_particular, 0)
  WHEN LOWER(r.tabela) LIKE '%cart%' THEN COALESCE(pr.valor_cartao, 0)
  WHEN LOWER(r.tabela) LIKE '%ótica%' OR LOWER(r.tabela) LIKE '%otica%' THEN COALESCE(pr.valor_otica, 0)
  ELSE 0
END`

// RecebimentoRow is a report row: the recebimento plus joined display
// names and its linked procedimentos.
type RecebimentoRow struct {
	model.Recebimento `gorm:"embedded"`
	ProfissionalNome  *string
	EspecialidadeNome *string
}

type RelatorioRepository interface {
	Count(ctx context.Context, f dto.RelatorioFilter) (int64, error)
	// List returns one page of filtered rows, newest first, with linked
	// procedimentos attached. limit <= 0 returns the whole filtered set
	// (used by the CSV export).
	List(ctx context.Context, f dto.RelatorioFilter, limit, offset int) ([]RecebimentoRow, error)
	// TotalGeral sums valor + tabela-resolved procedimento prices over the
	// entire filtered set, never limited by a page window.
	TotalGeral(ctx context.Context, f dto.RelatorioFilter) (decimal.Decimal, error)
	PorForma(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error)
	PorIndicador(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error)
	PorProfissional(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error)
	// ExamesPorForma returns (exame, forma, soma) tuples where the summed
	// amount is the tabela-resolved procedure price only, not the record's
	// base amount.
	ExamesPorForma(ctx context.Context, f dto.RelatorioFilter) ([]ExameFormaRow, error)

	SaidasDoDia(ctx context.Context, dia time.Time) (decimal.Decimal, error)
	PorFormaDoCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.GrupoTotal, error)
	RecebidoDoCaixaPorForma(ctx context.Context, caixaID uuid.UUID, forma string) (decimal.Decimal, error)
	SaidasDoCaixaPorOrigem(ctx context.Context, caixaID uuid.UUID, origem string) (decimal.Decimal, error)
}

type ExameFormaRow struct {
	Exame string
	Forma string
	Soma  decimal.Decimal
}

type relatorioRepo struct{ db *gorm.DB }

func NewRelatorioRepository(db *gorm.DB) RelatorioRepository { return &relatorioRepo{db: db} }

// buildWhere translates the filter into a WHERE fragment over the aliases
// r (recebimentos) and c (caixas). All values are bound parameters.
func buildWhere(f dto.RelatorioFilter) (string, []interface{}) {
	conds := []string{"r.created_at BETWEEN ? AND ?"}
	args := []interface{}{f.Inicio, f.Fim}

	if f.UsuarioID != nil {
		conds = append(conds, "c.usuario_id = ?")
		args = append(args, *f.UsuarioID)
	}
	if f.FormaPagamento != "" {
		conds = append(conds, "r.forma_pagamento = ?")
		args = append(args, f.FormaPagamento)
	}
	if f.Tabela != "" {
		conds = append(conds, "r.tabela = ?")
		args = append(args, f.Tabela)
	}
	if f.Baixa != "" {
		conds = append(conds, "r.baixa = ?")
		args = append(args, f.Baixa)
	}
	if f.Indicador != "" {
		conds = append(conds, "r.indicador = ?")
		args = append(args, f.Indicador)
	}
	if f.ProfissionalID != nil {
		conds = append(conds, "r.profissional_id = ?")
		args = append(args, *f.ProfissionalID)
	}
	if f.EspecialidadeID != nil {
		conds = append(conds, "r.especialidade_id = ?")
		args = append(args, *f.EspecialidadeID)
	}
	if f.Texto != "" {
		conds = append(conds, "(LOWER(r.paciente_nome) LIKE LOWER(?) OR LOWER(r.observacao) LIKE LOWER(?))")
		like := "%" + f.Texto + "%"
		args = append(args, like, like)
	}
	return strings.Join(conds, " AND "), args
}

// subExamesSQL builds the per-recebimento procedure-value subquery for the
// given WHERE fragment. Joined LEFT so records without procedimentos still
// appear with a zero sum.
func subExamesSQL(where string) string {
	return fmt.Sprintf(`
		SELECT r.id AS rid, SUM(%s) AS valor_exames
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		LEFT JOIN recebimento_procedimentos rp ON rp.recebimento_id = r.id
		LEFT JOIN procedimentos pr ON pr.id = rp.procedimento_id
		WHERE %s
		GROUP BY r.id`, tabelaCaseSQL, where)
}

func (r *relatorioRepo) Count(ctx context.Context, f dto.RelatorioFilter) (int64, error) {
	where, args := buildWhere(f)
	var row struct{ Total int64 }
	err := r.db.WithContext(ctx).Raw(fmt.Sprintf(`
		SELECT COUNT(*) AS total
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		WHERE %s`, where), args...).
		Scan(&row).Error
	return row.Total, err
}

func (r *relatorioRepo) List(ctx context.Context, f dto.RelatorioFilter, limit, offset int) ([]RecebimentoRow, error) {
	where, args := buildWhere(f)
	sql := fmt.Sprintf(`
		SELECT r.*, p.nome AS profissional_nome, e.nome AS especialidade_nome
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		LEFT JOIN profissionais p ON p.id = r.profissional_id
		LEFT JOIN especialidades e ON e.id = r.especialidade_id
		WHERE %s
		ORDER BY r.created_at DESC`, where)
	if limit > 0 {
		sql += fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}

	var rows []RecebimentoRow
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if err := r.attachProcedimentos(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// attachProcedimentos loads the linked procedimentos for a batch of rows
// in a single query, mirroring the two-step fetch of the listing endpoint.
func (r *relatorioRepo) attachProcedimentos(ctx context.Context, rows []RecebimentoRow) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}

	var links []struct {
		RecebimentoID      uuid.UUID
		model.Procedimento `gorm:"embedded"`
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT rp.recebimento_id, pr.id, pr.nome, pr.valor_cartao, pr.valor_particular, pr.valor_otica
		FROM recebimento_procedimentos rp
		JOIN procedimentos pr ON pr.id = rp.procedimento_id
		WHERE rp.recebimento_id IN ?`, ids).
		Scan(&links).Error
	if err != nil {
		return err
	}

	byRec := make(map[uuid.UUID][]model.Procedimento, len(rows))
	for _, l := range links {
		byRec[l.RecebimentoID] = append(byRec[l.RecebimentoID], l.Procedimento)
	}
	for i := range rows {
		rows[i].Procedimentos = byRec[rows[i].ID]
	}
	return nil
}

func (r *relatorioRepo) TotalGeral(ctx context.Context, f dto.RelatorioFilter) (decimal.Decimal, error) {
	where, args := buildWhere(f)
	sql := fmt.Sprintf(`
		SELECT COALESCE(SUM(r.valor + COALESCE(x.valor_exames, 0)), 0) AS v
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		LEFT JOIN (%s) x ON x.rid = r.id
		WHERE %s`, subExamesSQL(where), where)

	var row struct{ V decimal.Decimal }
	// the WHERE appears twice (subquery + outer), so the args do too
	err := r.db.WithContext(ctx).Raw(sql, append(append([]interface{}{}, args...), args...)...).
		Scan(&row).Error
	return row.V, err
}

// grupoQuery runs one grouped-total query. keyExpr must be a SQL
// expression over the aliases r/p yielding the grouping key; empty keys
// are normalized to "—" in SQL so grouping and display agree.
func (r *relatorioRepo) grupoQuery(ctx context.Context, f dto.RelatorioFilter, keyExpr, extraJoin string) ([]dto.GrupoTotal, error) {
	where, args := buildWhere(f)
	sql := fmt.Sprintf(`
		SELECT %s AS chave, SUM(r.valor + COALESCE(x.valor_exames, 0)) AS valor
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		%s
		LEFT JOIN (%s) x ON x.rid = r.id
		WHERE %s
		GROUP BY 1
		ORDER BY valor DESC`, keyExpr, extraJoin, subExamesSQL(where), where)

	var rows []dto.GrupoTotal
	err := r.db.WithContext(ctx).Raw(sql, append(append([]interface{}{}, args...), args...)...).
		Scan(&rows).Error
	return rows, err
}

func (r *relatorioRepo) PorForma(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.grupoQuery(ctx, f, `COALESCE(NULLIF(r.forma_pagamento, ''), '—')`, "")
}

func (r *relatorioRepo) PorIndicador(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.grupoQuery(ctx, f, `COALESCE(NULLIF(r.indicador, ''), '—')`, "")
}

func (r *relatorioRepo) PorProfissional(ctx context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.grupoQuery(ctx, f, `COALESCE(p.nome, '—')`,
		"LEFT JOIN profissionais p ON p.id = r.profissional_id")
}

func (r *relatorioRepo) ExamesPorForma(ctx context.Context, f dto.RelatorioFilter) ([]ExameFormaRow, error) {
	where, args := buildWhere(f)
	// INNER joins: a recebimento with no procedimentos contributes nothing here
	sql := fmt.Sprintf(`
		SELECT pr.nome AS exame,
		       COALESCE(NULLIF(r.forma_pagamento, ''), '—') AS forma,
		       SUM(%s) AS soma
		FROM recebimentos r
		JOIN caixas c ON c.id = r.caixa_id
		JOIN recebimento_procedimentos rp ON rp.recebimento_id = r.id
		JOIN procedimentos pr ON pr.id = rp.procedimento_id
		WHERE %s
		GROUP BY pr.nome, 2
		ORDER BY soma DESC`, tabelaCaseSQL, where)

	var rows []ExameFormaRow
	err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&rows).Error
	return rows, err
}

// ─── Dashboard / fechamento queries ──────────────────────────────────────────

func (r *relatorioRepo) SaidasDoDia(ctx context.Context, dia time.Time) (decimal.Decimal, error) {
	var row struct{ V decimal.Decimal }
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(s.valor), 0) AS v
		FROM saidas s
		JOIN caixas c ON c.id = s.caixa_id
		WHERE c.data_caixa = ?`, dia.Format("2006-01-02")).
		Scan(&row).Error
	return row.V, err
}

// subExamesCaixaSQL scopes the procedure-value subquery to one caixa,
// optionally narrowed by forma de pagamento.
func subExamesCaixaSQL(comForma bool) string {
	extra := ""
	if comForma {
		extra = " AND r.forma_pagamento = ?"
	}
	return fmt.Sprintf(`
		SELECT r.id AS rid, SUM(%s) AS valor_exames
		FROM recebimentos r
		LEFT JOIN recebimento_procedimentos rp ON rp.recebimento_id = r.id
		LEFT JOIN procedimentos pr ON pr.id = rp.procedimento_id
		WHERE r.caixa_id = ?%s
		GROUP BY r.id`, tabelaCaseSQL, extra)
}

func (r *relatorioRepo) PorFormaDoCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.GrupoTotal, error) {
	sql := fmt.Sprintf(`
		SELECT COALESCE(NULLIF(r.forma_pagamento, ''), '—') AS chave,
		       SUM(r.valor + COALESCE(x.valor_exames, 0)) AS valor
		FROM recebimentos r
		LEFT JOIN (%s) x ON x.rid = r.id
		WHERE r.caixa_id = ?
		GROUP BY 1
		ORDER BY valor DESC`, subExamesCaixaSQL(false))

	var rows []dto.GrupoTotal
	err := r.db.WithContext(ctx).Raw(sql, caixaID, caixaID).Scan(&rows).Error
	return rows, err
}

func (r *relatorioRepo) RecebidoDoCaixaPorForma(ctx context.Context, caixaID uuid.UUID, forma string) (decimal.Decimal, error) {
	sql := fmt.Sprintf(`
		SELECT COALESCE(SUM(r.valor + COALESCE(x.valor_exames, 0)), 0) AS v
		FROM recebimentos r
		LEFT JOIN (%s) x ON x.rid = r.id
		WHERE r.caixa_id = ? AND r.forma_pagamento = ?`, subExamesCaixaSQL(true))

	var row struct{ V decimal.Decimal }
	err := r.db.WithContext(ctx).Raw(sql, caixaID, forma, caixaID, forma).Scan(&row).Error
	return row.V, err
}

func (r *relatorioRepo) SaidasDoCaixaPorOrigem(ctx context.Context, caixaID uuid.UUID, origem string) (decimal.Decimal, error) {
	var row struct{ V decimal.Decimal }
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(valor), 0) AS v
		FROM saidas
		WHERE caixa_id = ? AND origem = ?`, caixaID, origem).
		Scan(&row).Error
	return row.V, err
}
