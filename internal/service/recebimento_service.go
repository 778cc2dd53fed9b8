package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/pricing"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
)

type RecebimentoService interface {
	Adicionar(ctx context.Context, req dto.RecebimentoRequest) (*dto.RecebimentoResponse, error)
	Atualizar(ctx context.Context, id uuid.UUID, req dto.RecebimentoRequest) (*dto.RecebimentoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
	ListarPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.RecebimentoResponse, error)
}

type recebimentoService struct {
	repo      repository.RecebimentoRepository
	caixaRepo repository.CaixaRepository
	procRepo  repository.ProcedimentoRepository
}

func NewRecebimentoService(
	repo repository.RecebimentoRepository,
	caixaRepo repository.CaixaRepository,
	procRepo repository.ProcedimentoRepository,
) RecebimentoService {
	return &recebimentoService{repo: repo, caixaRepo: caixaRepo, procRepo: procRepo}
}

var naoDigitos = regexp.MustCompile(`\D+`)

// ── Adicionar ─────────────────────────────────────────────────────────────────
// Recording requires the target caixa to exist and still be open; the
// insert and its procedimento links run in one transaction in the repo.

func (s *recebimentoService) Adicionar(ctx context.Context, req dto.RecebimentoRequest) (*dto.RecebimentoResponse, error) {
	caixaID, err := uuid.Parse(req.CaixaID)
	if err != nil {
		return nil, fmt.Errorf("caixa_id inválido: %w", err)
	}
	caixa, err := s.caixaRepo.FindByID(ctx, caixaID)
	if err != nil {
		return nil, errors.New("Caixa não encontrado.")
	}
	if caixa.Encerrado() {
		return nil, errors.New("Caixa já encerrado — não é possível lançar recebimentos.")
	}

	rec, procIDs, err := s.buildRecebimento(req)
	if err != nil {
		return nil, err
	}
	rec.CaixaID = caixaID

	if err := s.verificaProcedimentos(ctx, procIDs); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rec, procIDs); err != nil {
		return nil, err
	}
	return s.responseFor(ctx, rec.ID)
}

// ── Atualizar ─────────────────────────────────────────────────────────────────
// Replaces every field and the whole procedimento-link set.

func (s *recebimentoService) Atualizar(ctx context.Context, id uuid.UUID, req dto.RecebimentoRequest) (*dto.RecebimentoResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, errors.New("Recebimento não encontrado.")
	}

	rec, procIDs, err := s.buildRecebimento(req)
	if err != nil {
		return nil, err
	}
	rec.ID = id

	if err := s.verificaProcedimentos(ctx, procIDs); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, rec, procIDs); err != nil {
		return nil, err
	}
	return s.responseFor(ctx, id)
}

func (s *recebimentoService) Excluir(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return errors.New("Recebimento não encontrado.")
	}
	return s.repo.Delete(ctx, id)
}

func (s *recebimentoService) ListarPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.RecebimentoResponse, error) {
	recs, err := s.repo.ListByCaixa(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RecebimentoResponse, len(recs))
	for i := range recs {
		resp[i] = recebimentoToResponse(recs[i])
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *recebimentoService) buildRecebimento(req dto.RecebimentoRequest) (*model.Recebimento, []uuid.UUID, error) {
	rec := &model.Recebimento{
		PacienteNome:   req.PacienteNome,
		PacienteCPF:    naoDigitos.ReplaceAllString(req.PacienteCPF, ""),
		Valor:          req.Valor,
		FormaPagamento: req.FormaPagamento,
		Tabela:         req.Tabela,
		Baixa:          req.Baixa,
		Indicador:      req.Indicador,
		Observacao:     req.Observacao,
	}

	if req.ProfissionalID != nil && *req.ProfissionalID != "" {
		pid, err := uuid.Parse(*req.ProfissionalID)
		if err != nil {
			return nil, nil, fmt.Errorf("profissional_id inválido: %w", err)
		}
		rec.ProfissionalID = &pid
	}
	if req.EspecialidadeID != nil && *req.EspecialidadeID != "" {
		eid, err := uuid.Parse(*req.EspecialidadeID)
		if err != nil {
			return nil, nil, fmt.Errorf("especialidade_id inválido: %w", err)
		}
		rec.EspecialidadeID = &eid
	}

	procIDs := make([]uuid.UUID, 0, len(req.ProcedimentoIDs))
	for _, raw := range req.ProcedimentoIDs {
		pid, err := uuid.Parse(raw)
		if err != nil {
			return nil, nil, fmt.Errorf("procedimento_id inválido: %w", err)
		}
		procIDs = append(procIDs, pid)
	}
	return rec, procIDs, nil
}

// verificaProcedimentos rejects ids that do not exist in the price
// table, before any write happens.
func (s *recebimentoService) verificaProcedimentos(ctx context.Context, procIDs []uuid.UUID) error {
	if len(procIDs) == 0 {
		return nil
	}
	distintos := make(map[uuid.UUID]bool, len(procIDs))
	for _, pid := range procIDs {
		distintos[pid] = true
	}
	procs, err := s.procRepo.FindByIDs(ctx, procIDs)
	if err != nil {
		return err
	}
	if len(procs) != len(distintos) {
		return errors.New("Procedimento não encontrado.")
	}
	return nil
}

func (s *recebimentoService) responseFor(ctx context.Context, id uuid.UUID) (*dto.RecebimentoResponse, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := recebimentoToResponse(*rec)
	return &resp, nil
}

// recebimentoToResponse is the single mapping from a recebimento to its
// API shape; the Total field always comes from pricing.TotalFor.
func recebimentoToResponse(rec model.Recebimento) dto.RecebimentoResponse {
	exames := make([]dto.ProcedimentoResponse, len(rec.Procedimentos))
	for i, p := range rec.Procedimentos {
		exames[i] = procedimentoToResponse(p)
	}

	resp := dto.RecebimentoResponse{
		ID:             rec.ID.String(),
		CaixaID:        rec.CaixaID.String(),
		PacienteNome:   rec.PacienteNome,
		PacienteCPF:    rec.PacienteCPF,
		Valor:          rec.Valor,
		FormaPagamento: rec.FormaPagamento,
		Tabela:         rec.Tabela,
		Baixa:          rec.Baixa,
		Indicador:      rec.Indicador,
		Observacao:     rec.Observacao,
		CreatedAt:      rec.CreatedAt.Format(time.RFC3339),
		Exames:         exames,
		Total:          pricing.TotalFor(rec),
	}
	if rec.Profissional != nil {
		resp.ProfissionalNome = &rec.Profissional.Nome
	}
	if rec.Especialidade != nil {
		resp.EspecialidadeNome = &rec.Especialidade.Nome
	}
	return resp
}
