package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
)

type SaidaService interface {
	Adicionar(ctx context.Context, req dto.SaidaRequest) (*dto.SaidaResponse, error)
	ListarPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.SaidaResponse, error)
}

type saidaService struct {
	repo      repository.SaidaRepository
	caixaRepo repository.CaixaRepository
}

func NewSaidaService(repo repository.SaidaRepository, caixaRepo repository.CaixaRepository) SaidaService {
	return &saidaService{repo: repo, caixaRepo: caixaRepo}
}

// Adicionar records an outflow. Saídas are append-only; there is no
// update or delete path.
func (s *saidaService) Adicionar(ctx context.Context, req dto.SaidaRequest) (*dto.SaidaResponse, error) {
	caixaID, err := uuid.Parse(req.CaixaID)
	if err != nil {
		return nil, fmt.Errorf("caixa_id inválido: %w", err)
	}
	caixa, err := s.caixaRepo.FindByID(ctx, caixaID)
	if err != nil {
		return nil, errors.New("Caixa não encontrado.")
	}
	if caixa.Encerrado() {
		return nil, errors.New("Caixa já encerrado — não é possível lançar saídas.")
	}

	saida := &model.Saida{
		CaixaID:    caixaID,
		Descricao:  req.Descricao,
		Valor:      req.Valor,
		Origem:     req.Origem,
		Observacao: req.Observacao,
	}
	if err := s.repo.Create(ctx, saida); err != nil {
		return nil, err
	}
	resp := saidaToResponse(*saida)
	return &resp, nil
}

func (s *saidaService) ListarPorCaixa(ctx context.Context, caixaID uuid.UUID) ([]dto.SaidaResponse, error) {
	saidas, err := s.repo.ListByCaixa(ctx, caixaID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SaidaResponse, len(saidas))
	for i, sd := range saidas {
		resp[i] = saidaToResponse(sd)
	}
	return resp, nil
}

func saidaToResponse(s model.Saida) dto.SaidaResponse {
	return dto.SaidaResponse{
		ID:         s.ID.String(),
		CaixaID:    s.CaixaID.String(),
		Descricao:  s.Descricao,
		Valor:      s.Valor,
		Origem:     s.Origem,
		Observacao: s.Observacao,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
