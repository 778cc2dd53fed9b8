package service

import (
	"context"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
)

type ProcedimentoService interface {
	Listar(ctx context.Context) ([]dto.ProcedimentoResponse, error)
	Upsert(ctx context.Context, req dto.UpsertProcedimentoRequest) (*dto.ProcedimentoResponse, error)
	Excluir(ctx context.Context, id uuid.UUID) error
}

type procedimentoService struct {
	repo repository.ProcedimentoRepository
}

func NewProcedimentoService(repo repository.ProcedimentoRepository) ProcedimentoService {
	return &procedimentoService{repo: repo}
}

func (s *procedimentoService) Listar(ctx context.Context) ([]dto.ProcedimentoResponse, error) {
	procs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProcedimentoResponse, len(procs))
	for i, p := range procs {
		resp[i] = procedimentoToResponse(p)
	}
	return resp, nil
}

func (s *procedimentoService) Upsert(ctx context.Context, req dto.UpsertProcedimentoRequest) (*dto.ProcedimentoResponse, error) {
	p := &model.Procedimento{
		Nome:            req.Nome,
		ValorCartao:     req.ValorCartao,
		ValorParticular: req.ValorParticular,
		ValorOtica:      req.ValorOtica,
	}
	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	resp := procedimentoToResponse(*p)
	return &resp, nil
}

func (s *procedimentoService) Excluir(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func procedimentoToResponse(p model.Procedimento) dto.ProcedimentoResponse {
	return dto.ProcedimentoResponse{
		ID:              p.ID.String(),
		Nome:            p.Nome,
		ValorCartao:     p.ValorCartao,
		ValorParticular: p.ValorParticular,
		ValorOtica:      p.ValorOtica,
	}
}
