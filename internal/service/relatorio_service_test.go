package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"testing"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/pricing"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── In-memory RelatorioRepository stub ───────────────────────────────────────
// Totals are computed with pricing.TotalFor, the same function the API
// response mapping uses, so cross-endpoint consistency checks are real.

type stubRelatorioRepo struct {
	rows   []repository.RecebimentoRow
	caixas map[uuid.UUID]*model.Caixa
	saidas []model.Saida
}

func newStubRelatorioRepo() *stubRelatorioRepo {
	return &stubRelatorioRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func (r *stubRelatorioRepo) matches(row repository.RecebimentoRow, f dto.RelatorioFilter) bool {
	if row.CreatedAt.Before(f.Inicio) || row.CreatedAt.After(f.Fim) {
		return false
	}
	if f.FormaPagamento != "" && row.FormaPagamento != f.FormaPagamento {
		return false
	}
	if f.Tabela != "" && row.Tabela != f.Tabela {
		return false
	}
	if f.UsuarioID != nil {
		caixa, ok := r.caixas[row.CaixaID]
		if !ok || caixa.UsuarioID != *f.UsuarioID {
			return false
		}
	}
	return true
}

func (r *stubRelatorioRepo) filtered(f dto.RelatorioFilter) []repository.RecebimentoRow {
	var out []repository.RecebimentoRow
	for _, row := range r.rows {
		if r.matches(row, f) {
			out = append(out, row)
		}
	}
	return out
}

func (r *stubRelatorioRepo) Count(_ context.Context, f dto.RelatorioFilter) (int64, error) {
	return int64(len(r.filtered(f))), nil
}

func (r *stubRelatorioRepo) List(_ context.Context, f dto.RelatorioFilter, limit, offset int) ([]repository.RecebimentoRow, error) {
	rows := r.filtered(f)
	if limit <= 0 {
		return rows, nil
	}
	if offset >= len(rows) {
		return nil, nil
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end], nil
}

func (r *stubRelatorioRepo) TotalGeral(_ context.Context, f dto.RelatorioFilter) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, row := range r.filtered(f) {
		total = total.Add(pricing.TotalFor(row.Recebimento))
	}
	return total, nil
}

func (r *stubRelatorioRepo) agrupa(f dto.RelatorioFilter, key func(repository.RecebimentoRow) string) []dto.GrupoTotal {
	somas := make(map[string]decimal.Decimal)
	for _, row := range r.filtered(f) {
		k := key(row)
		if k == "" {
			k = "—"
		}
		somas[k] = somas[k].Add(pricing.TotalFor(row.Recebimento))
	}
	out := make([]dto.GrupoTotal, 0, len(somas))
	for k, v := range somas {
		out = append(out, dto.GrupoTotal{Chave: k, Valor: v})
	}
	return out
}

func (r *stubRelatorioRepo) PorForma(_ context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.agrupa(f, func(row repository.RecebimentoRow) string { return row.FormaPagamento }), nil
}

func (r *stubRelatorioRepo) PorIndicador(_ context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.agrupa(f, func(row repository.RecebimentoRow) string { return row.Indicador }), nil
}

func (r *stubRelatorioRepo) PorProfissional(_ context.Context, f dto.RelatorioFilter) ([]dto.GrupoTotal, error) {
	return r.agrupa(f, func(row repository.RecebimentoRow) string {
		if row.ProfissionalNome == nil {
			return "—"
		}
		return *row.ProfissionalNome
	}), nil
}

func (r *stubRelatorioRepo) ExamesPorForma(_ context.Context, f dto.RelatorioFilter) ([]repository.ExameFormaRow, error) {
	type chave struct{ exame, forma string }
	somas := make(map[chave]decimal.Decimal)
	for _, row := range r.filtered(f) {
		for _, p := range row.Procedimentos {
			k := chave{p.Nome, row.FormaPagamento}
			somas[k] = somas[k].Add(pricing.PriceFor(p, row.Tabela))
		}
	}
	var out []repository.ExameFormaRow
	for k, v := range somas {
		out = append(out, repository.ExameFormaRow{Exame: k.exame, Forma: k.forma, Soma: v})
	}
	return out, nil
}

func (r *stubRelatorioRepo) SaidasDoDia(_ context.Context, dia time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.saidas {
		caixa, ok := r.caixas[s.CaixaID]
		if ok && diaKey(caixa.DataCaixa) == diaKey(dia) {
			total = total.Add(s.Valor)
		}
	}
	return total, nil
}

func (r *stubRelatorioRepo) PorFormaDoCaixa(_ context.Context, caixaID uuid.UUID) ([]dto.GrupoTotal, error) {
	somas := make(map[string]decimal.Decimal)
	for _, row := range r.rows {
		if row.CaixaID == caixaID {
			somas[row.FormaPagamento] = somas[row.FormaPagamento].Add(pricing.TotalFor(row.Recebimento))
		}
	}
	out := make([]dto.GrupoTotal, 0, len(somas))
	for k, v := range somas {
		out = append(out, dto.GrupoTotal{Chave: k, Valor: v})
	}
	return out, nil
}

func (r *stubRelatorioRepo) RecebidoDoCaixaPorForma(_ context.Context, caixaID uuid.UUID, forma string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, row := range r.rows {
		if row.CaixaID == caixaID && row.FormaPagamento == forma {
			total = total.Add(pricing.TotalFor(row.Recebimento))
		}
	}
	return total, nil
}

func (r *stubRelatorioRepo) SaidasDoCaixaPorOrigem(_ context.Context, caixaID uuid.UUID, origem string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.saidas {
		if s.CaixaID == caixaID && s.Origem == origem {
			total = total.Add(s.Valor)
		}
	}
	return total, nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func novoRelatorioService(repo *stubRelatorioRepo, caixaRepo *stubCaixaRepo, agora time.Time) *relatorioService {
	return &relatorioService{
		repo:      repo,
		caixaRepo: caixaRepo,
		loc:       time.UTC,
		agora:     func() time.Time { return agora },
	}
}

func (r *stubRelatorioRepo) addRecebimento(caixaID uuid.UUID, quando time.Time, valor int64, forma string, procs ...model.Procedimento) {
	r.rows = append(r.rows, repository.RecebimentoRow{
		Recebimento: model.Recebimento{
			ID:             uuid.New(),
			CaixaID:        caixaID,
			PacienteNome:   fmt.Sprintf("Paciente %d", len(r.rows)+1),
			Valor:          decimal.NewFromInt(valor),
			FormaPagamento: forma,
			Tabela:         "Particular",
			Baixa:          "Pago",
			Indicador:      "Balcão",
			CreatedAt:      quando,
			Procedimentos:  procs,
		},
	})
}

// ── Paginação ────────────────────────────────────────────────────────────────

func TestRelatorioPaginacao(t *testing.T) {
	repo := newStubRelatorioRepo()
	dia := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	caixaID := uuid.New()
	for i := 0; i < 120; i++ {
		repo.addRecebimento(caixaID, dia.Add(time.Duration(i)*time.Minute), 10, "Dinheiro")
	}
	svc := novoRelatorioService(repo, newStubCaixaRepo(), dia)
	f := dto.RelatorioFilter{Inicio: dia.Add(-time.Hour), Fim: dia.Add(24 * time.Hour)}

	page, err := svc.Recebimentos(context.Background(), f, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(120), page.Meta.Total)
	assert.Equal(t, 3, page.Meta.TotalPages, "120 registros em janelas de 50")
	assert.Equal(t, 50, page.Meta.PerPage)
	assert.Len(t, page.Rows, 50)

	// última página parcial
	page, err = svc.Recebimentos(context.Background(), f, 3)
	require.NoError(t, err)
	assert.Len(t, page.Rows, 20)

	// página além do fim é grampeada na última, nunca vazia
	page, err = svc.Recebimentos(context.Background(), f, 99)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Meta.Page)
	assert.Len(t, page.Rows, 20)

	// página < 1 vira a primeira
	page, err = svc.Recebimentos(context.Background(), f, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Meta.Page)
}

func TestRelatorioVazioTemUmaPagina(t *testing.T) {
	svc := novoRelatorioService(newStubRelatorioRepo(), newStubCaixaRepo(), time.Now())
	f := dto.RelatorioFilter{Inicio: time.Now().Add(-time.Hour), Fim: time.Now()}

	page, err := svc.Recebimentos(context.Background(), f, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Meta.Total)
	assert.Equal(t, 1, page.Meta.TotalPages)
	assert.Empty(t, page.Rows)
}

// ── Totais ───────────────────────────────────────────────────────────────────

func TestTotaisConsistentesComLinhas(t *testing.T) {
	repo := newStubRelatorioRepo()
	dia := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	caixaID := uuid.New()
	glaucoma := procedimentoGlaucoma()

	repo.addRecebimento(caixaID, dia, 100, "Dinheiro", glaucoma) // 100 + 50
	repo.addRecebimento(caixaID, dia, 80, "Cartão")              // 80
	repo.addRecebimento(caixaID, dia, 40, "Dinheiro")            // 40

	svc := novoRelatorioService(repo, newStubCaixaRepo(), dia)
	f := dto.RelatorioFilter{Inicio: dia.Add(-time.Hour), Fim: dia.Add(time.Hour)}

	totais, err := svc.Totais(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, totais.TotalGeral.Equal(decimal.NewFromInt(270)), "totalGeral: %s", totais.TotalGeral)

	// o total geral é a soma dos totais linha a linha da mesma janela
	page, err := svc.Recebimentos(context.Background(), f, 1)
	require.NoError(t, err)
	somaLinhas := decimal.Zero
	for _, row := range page.Rows {
		somaLinhas = somaLinhas.Add(row.Total)
	}
	assert.True(t, totais.TotalGeral.Equal(somaLinhas))

	// quebra por forma cobre o total geral
	somaFormas := decimal.Zero
	for _, g := range totais.PorForma {
		somaFormas = somaFormas.Add(g.Valor)
	}
	assert.True(t, totais.TotalGeral.Equal(somaFormas))

	// por exame: só o preço do procedimento, nunca o valor base
	exame, ok := totais.Exames["Teste de Glaucoma"]
	require.True(t, ok)
	assert.True(t, exame.Total.Equal(decimal.NewFromInt(50)), "exame total: %s", exame.Total)
	assert.True(t, exame.Formas["Dinheiro"].Equal(decimal.NewFromInt(50)))
}

// ── Export CSV ───────────────────────────────────────────────────────────────

func TestExportCSV(t *testing.T) {
	repo := newStubRelatorioRepo()
	dia := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	caixaID := uuid.New()
	repo.addRecebimento(caixaID, dia, 100, "Dinheiro", procedimentoGlaucoma())
	repo.addRecebimento(caixaID, dia, 80, "Pix")

	svc := novoRelatorioService(repo, newStubCaixaRepo(), dia)
	f := dto.RelatorioFilter{Inicio: dia.Add(-time.Hour), Fim: dia.Add(time.Hour)}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), f, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "cabeçalho + 2 linhas")
	assert.Equal(t, "paciente", records[0][1])
	assert.Equal(t, "150.00", records[1][len(records[1])-1])
	assert.Equal(t, "Teste de Glaucoma", records[1][len(records[1])-2])
}

// ── KPIs ─────────────────────────────────────────────────────────────────────

func TestKPIs(t *testing.T) {
	repo := newStubRelatorioRepo()
	agora := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	caixaRepo := newStubCaixaRepo()

	caixaHoje := &model.Caixa{UsuarioID: uuid.New(), DataCaixa: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, caixaRepo.Create(context.Background(), caixaHoje))
	repo.caixas[caixaHoje.ID] = caixaHoje

	repo.addRecebimento(caixaHoje.ID, agora.Add(-2*time.Hour), 100, "Dinheiro")
	repo.addRecebimento(caixaHoje.ID, agora.Add(-time.Hour), 70, "Cartão")
	// lançado no início do mês: entra no mês, não no dia
	repo.addRecebimento(caixaHoje.ID, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 200, "Dinheiro")
	repo.saidas = append(repo.saidas, model.Saida{
		CaixaID: caixaHoje.ID, Descricao: "Material de limpeza",
		Valor: decimal.NewFromInt(30), Origem: "Dinheiro",
	})

	svc := novoRelatorioService(repo, caixaRepo, agora)
	kpis, err := svc.KPIs(context.Background())
	require.NoError(t, err)
	assert.True(t, kpis.TotalHoje.Equal(decimal.NewFromInt(170)), "totalHoje: %s", kpis.TotalHoje)
	assert.True(t, kpis.DinheiroHoje.Equal(decimal.NewFromInt(100)), "dinheiroHoje: %s", kpis.DinheiroHoje)
	assert.True(t, kpis.SaidasHoje.Equal(decimal.NewFromInt(30)), "saidasHoje: %s", kpis.SaidasHoje)
	assert.True(t, kpis.TotalMes.Equal(decimal.NewFromInt(370)), "totalMes: %s", kpis.TotalMes)
}

// ── Fechamento ───────────────────────────────────────────────────────────────

func TestFechamentoDoDia(t *testing.T) {
	repo := newStubRelatorioRepo()
	agora := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	caixaRepo := newStubCaixaRepo()

	caixa := &model.Caixa{
		UsuarioID:    uuid.New(),
		DataCaixa:    time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		SaldoInicial: decimal.NewFromInt(200),
	}
	require.NoError(t, caixaRepo.Create(context.Background(), caixa))
	repo.caixas[caixa.ID] = caixa

	repo.addRecebimento(caixa.ID, agora.Add(-4*time.Hour), 100, "Dinheiro")
	repo.addRecebimento(caixa.ID, agora.Add(-3*time.Hour), 80, "Cartão")
	repo.saidas = append(repo.saidas, model.Saida{
		CaixaID: caixa.ID, Descricao: "Correio",
		Valor: decimal.NewFromInt(40), Origem: "Dinheiro",
	})

	svc := novoRelatorioService(repo, caixaRepo, agora)
	fech, err := svc.FechamentoDoDia(context.Background(), caixa.UsuarioID)
	require.NoError(t, err)
	require.NotNil(t, fech)

	assert.True(t, fech.TotalRecebido.Equal(decimal.NewFromInt(180)))
	assert.True(t, fech.Dinheiro.SaldoInicial.Equal(decimal.NewFromInt(200)))
	assert.True(t, fech.Dinheiro.Recebido.Equal(decimal.NewFromInt(100)))
	assert.True(t, fech.Dinheiro.Saidas.Equal(decimal.NewFromInt(40)))
	// saldo final = 200 + 100 − 40
	assert.True(t, fech.Dinheiro.SaldoFinal.Equal(decimal.NewFromInt(260)), "saldo final: %s", fech.Dinheiro.SaldoFinal)
}

func TestFechamentoSemCaixaHoje(t *testing.T) {
	svc := novoRelatorioService(newStubRelatorioRepo(), newStubCaixaRepo(), time.Now())
	fech, err := svc.FechamentoDoDia(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, fech)
}

func TestFechamentoErroDeBanco(t *testing.T) {
	caixaRepo := &failingCaixaRepo{
		stubCaixaRepo: newStubCaixaRepo(),
		err:           errors.New("pq: connection refused"),
	}
	svc := &relatorioService{
		repo:      newStubRelatorioRepo(),
		caixaRepo: caixaRepo,
		loc:       time.UTC,
		agora:     time.Now,
	}

	// Falha de infraestrutura não pode virar "sem caixa hoje".
	fech, err := svc.FechamentoDoDia(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Nil(t, fech)
}
