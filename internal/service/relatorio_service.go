package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PageSize is the fixed page window of the recebimentos report.
const PageSize = 50

const (
	kpiCacheKey = "dashboard:kpis"
	kpiCacheTTL = 30 * time.Second
)

type RelatorioService interface {
	// Recebimentos returns one page of the filtered report. The requested
	// page is clamped to [1, totalPages]; asking past the end yields the
	// last page, never an empty error.
	Recebimentos(ctx context.Context, f dto.RelatorioFilter, page int) (*dto.RelatorioPageResponse, error)
	// Totais aggregates over the whole filtered set, regardless of paging.
	Totais(ctx context.Context, f dto.RelatorioFilter) (*dto.TotaisResponse, error)
	ExportCSV(ctx context.Context, f dto.RelatorioFilter, w io.Writer) error
	KPIs(ctx context.Context) (*dto.KPIResponse, error)
	FechamentoDoDia(ctx context.Context, usuarioID uuid.UUID) (*dto.FechamentoResponse, error)
}

type relatorioService struct {
	repo      repository.RelatorioRepository
	caixaRepo repository.CaixaRepository
	rdb       *redis.Client
	loc       *time.Location
	agora     func() time.Time
}

func NewRelatorioService(
	repo repository.RelatorioRepository,
	caixaRepo repository.CaixaRepository,
	rdb *redis.Client,
	loc *time.Location,
) RelatorioService {
	if loc == nil {
		loc = time.UTC
	}
	return &relatorioService{
		repo:      repo,
		caixaRepo: caixaRepo,
		rdb:       rdb,
		loc:       loc,
		agora:     time.Now,
	}
}

// ── Relatório paginado ────────────────────────────────────────────────────────

func (s *relatorioService) Recebimentos(ctx context.Context, f dto.RelatorioFilter, page int) (*dto.RelatorioPageResponse, error) {
	total, err := s.repo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PageSize - 1) / PageSize)
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	rows, err := s.repo.List(ctx, f, PageSize, (page-1)*PageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.RelatorioPageResponse{
		Rows: make([]dto.RecebimentoResponse, len(rows)),
		Meta: dto.PageMeta{
			Page:       page,
			PerPage:    PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
	for i := range rows {
		r := recebimentoToResponse(rows[i].Recebimento)
		r.ProfissionalNome = rows[i].ProfissionalNome
		r.EspecialidadeNome = rows[i].EspecialidadeNome
		resp.Rows[i] = r
	}
	return resp, nil
}

// ── Totais ────────────────────────────────────────────────────────────────────

func (s *relatorioService) Totais(ctx context.Context, f dto.RelatorioFilter) (*dto.TotaisResponse, error) {
	totalGeral, err := s.repo.TotalGeral(ctx, f)
	if err != nil {
		return nil, err
	}
	porForma, err := s.repo.PorForma(ctx, f)
	if err != nil {
		return nil, err
	}
	porIndicador, err := s.repo.PorIndicador(ctx, f)
	if err != nil {
		return nil, err
	}
	porProfissional, err := s.repo.PorProfissional(ctx, f)
	if err != nil {
		return nil, err
	}
	exameRows, err := s.repo.ExamesPorForma(ctx, f)
	if err != nil {
		return nil, err
	}

	exames := make(map[string]dto.ExameTotal, len(exameRows))
	for _, row := range exameRows {
		agg, ok := exames[row.Exame]
		if !ok {
			agg = dto.ExameTotal{Formas: make(map[string]decimal.Decimal)}
		}
		agg.Total = agg.Total.Add(row.Soma)
		agg.Formas[row.Forma] = agg.Formas[row.Forma].Add(row.Soma)
		exames[row.Exame] = agg
	}

	return &dto.TotaisResponse{
		TotalGeral:      totalGeral,
		PorForma:        porForma,
		PorIndicador:    porIndicador,
		PorProfissional: porProfissional,
		Exames:          exames,
	}, nil
}

// ── Export CSV ────────────────────────────────────────────────────────────────

func (s *relatorioService) ExportCSV(ctx context.Context, f dto.RelatorioFilter, w io.Writer) error {
	rows, err := s.repo.List(ctx, f, 0, 0) // whole filtered set
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"data", "paciente", "cpf", "valor", "forma_pagamento",
		"tabela", "baixa", "indicador", "profissional", "especialidade",
		"exames", "total"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := range rows {
		r := recebimentoToResponse(rows[i].Recebimento)
		r.ProfissionalNome = rows[i].ProfissionalNome
		r.EspecialidadeNome = rows[i].EspecialidadeNome

		nomes := make([]string, len(r.Exames))
		for j, e := range r.Exames {
			nomes[j] = e.Nome
		}
		record := []string{
			r.CreatedAt, r.PacienteNome, r.PacienteCPF, r.Valor.StringFixed(2),
			r.FormaPagamento, r.Tabela, r.Baixa, r.Indicador,
			strOrDash(r.ProfissionalNome), strOrDash(r.EspecialidadeNome),
			strings.Join(nomes, "; "), r.Total.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strOrDash(s *string) string {
	if s == nil || *s == "" {
		return "—"
	}
	return *s
}

// ── Dashboard KPIs ────────────────────────────────────────────────────────────
// Every figure uses the same total semantics (valor + tabela-resolved
// procedimento prices). Cached briefly in Redis — best effort, the DB is
// always the fallback.

func (s *relatorioService) KPIs(ctx context.Context) (*dto.KPIResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, kpiCacheKey).Bytes(); err == nil {
			var resp dto.KPIResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	hojeIni, hojeFim := diaBounds(s.agora().In(s.loc))
	mesIni := time.Date(hojeIni.Year(), hojeIni.Month(), 1, 0, 0, 0, 0, s.loc)

	totalHoje, err := s.repo.TotalGeral(ctx, dto.RelatorioFilter{Inicio: hojeIni, Fim: hojeFim})
	if err != nil {
		return nil, err
	}
	dinheiroHoje, err := s.repo.TotalGeral(ctx, dto.RelatorioFilter{
		Inicio: hojeIni, Fim: hojeFim, FormaPagamento: "Dinheiro",
	})
	if err != nil {
		return nil, err
	}
	saidasHoje, err := s.repo.SaidasDoDia(ctx, hojeIni)
	if err != nil {
		return nil, err
	}
	totalMes, err := s.repo.TotalGeral(ctx, dto.RelatorioFilter{Inicio: mesIni, Fim: hojeFim})
	if err != nil {
		return nil, err
	}

	resp := &dto.KPIResponse{
		TotalHoje:    totalHoje,
		DinheiroHoje: dinheiroHoje,
		SaidasHoje:   saidasHoje,
		TotalMes:     totalMes,
	}
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(ctx, kpiCacheKey, b, kpiCacheTTL).Err()
		}
	}
	return resp, nil
}

// ── Fechamento do dia ─────────────────────────────────────────────────────────

// FechamentoDoDia builds the closing summary for the user's caixa of
// today: totals per forma, and the cash drawer balance (saldo inicial +
// recebimentos em dinheiro − saídas em dinheiro). Returns nil when the
// user has no caixa today.
func (s *relatorioService) FechamentoDoDia(ctx context.Context, usuarioID uuid.UUID) (*dto.FechamentoResponse, error) {
	hoje := s.agora().In(s.loc)
	caixa, err := s.caixaRepo.FindByDia(ctx, usuarioID, hoje)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	porForma, err := s.repo.PorFormaDoCaixa(ctx, caixa.ID)
	if err != nil {
		return nil, err
	}
	totalRecebido := decimal.Zero
	for _, g := range porForma {
		totalRecebido = totalRecebido.Add(g.Valor)
	}

	recebidoDin, err := s.repo.RecebidoDoCaixaPorForma(ctx, caixa.ID, "Dinheiro")
	if err != nil {
		return nil, err
	}
	saidasDin, err := s.repo.SaidasDoCaixaPorOrigem(ctx, caixa.ID, "Dinheiro")
	if err != nil {
		return nil, err
	}

	return &dto.FechamentoResponse{
		Caixa:         caixaToResponse(caixa),
		TotalRecebido: totalRecebido,
		PorForma:      porForma,
		Dinheiro: dto.FechamentoDinheiro{
			SaldoInicial: caixa.SaldoInicial,
			Recebido:     recebidoDin,
			Saidas:       saidasDin,
			SaldoFinal:   caixa.SaldoInicial.Add(recebidoDin).Sub(saidasDin),
		},
	}, nil
}

// diaBounds expands a date to its inclusive [00:00:00, 23:59:59] bounds.
func diaBounds(t time.Time) (time.Time, time.Time) {
	ini := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	fim := time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
	return ini, fim
}

// ParsePeriodo converts inicio/fim query strings into inclusive filter
// bounds, defaulting to the original catch-all range.
func ParsePeriodo(inicio, fim string, loc *time.Location) (time.Time, time.Time, error) {
	if inicio == "" {
		inicio = "1900-01-01"
	}
	if fim == "" {
		fim = "9999-12-31"
	}
	ini, err := time.ParseInLocation(dataFormato, inicio, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("inicio inválido")
	}
	fimT, err := time.ParseInLocation(dataFormato, fim, loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("fim inválido")
	}
	iniB, _ := diaBounds(ini)
	_, fimB := diaBounds(fimT)
	return iniB, fimB, nil
}
