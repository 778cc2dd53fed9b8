package service

import (
	"context"
	"errors"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
)

// CadastroService covers the two auxiliary catalogs (profissionais and
// especialidades), which share the same {id, nome} CRUD surface.
type CadastroService interface {
	ListarProfissionais(ctx context.Context) ([]dto.CadastroResponse, error)
	CriarProfissional(ctx context.Context, nome string) (*dto.CadastroResponse, error)
	AtualizarProfissional(ctx context.Context, id uuid.UUID, nome string) error
	ExcluirProfissional(ctx context.Context, id uuid.UUID) error

	ListarEspecialidades(ctx context.Context) ([]dto.CadastroResponse, error)
	CriarEspecialidade(ctx context.Context, nome string) (*dto.CadastroResponse, error)
	AtualizarEspecialidade(ctx context.Context, id uuid.UUID, nome string) error
	ExcluirEspecialidade(ctx context.Context, id uuid.UUID) error
}

type cadastroService struct {
	prof repository.ProfissionalRepository
	esp  repository.EspecialidadeRepository
}

func NewCadastroService(prof repository.ProfissionalRepository, esp repository.EspecialidadeRepository) CadastroService {
	return &cadastroService{prof: prof, esp: esp}
}

func (s *cadastroService) ListarProfissionais(ctx context.Context) ([]dto.CadastroResponse, error) {
	items, err := s.prof.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CadastroResponse, len(items))
	for i, p := range items {
		resp[i] = dto.CadastroResponse{ID: p.ID.String(), Nome: p.Nome}
	}
	return resp, nil
}

func (s *cadastroService) CriarProfissional(ctx context.Context, nome string) (*dto.CadastroResponse, error) {
	p := &model.Profissional{Nome: nome}
	if err := s.prof.Create(ctx, p); err != nil {
		return nil, err
	}
	return &dto.CadastroResponse{ID: p.ID.String(), Nome: p.Nome}, nil
}

func (s *cadastroService) AtualizarProfissional(ctx context.Context, id uuid.UUID, nome string) error {
	if nome == "" {
		return errors.New("Nome obrigatório")
	}
	return s.prof.UpdateNome(ctx, id, nome)
}

func (s *cadastroService) ExcluirProfissional(ctx context.Context, id uuid.UUID) error {
	return s.prof.Delete(ctx, id)
}

func (s *cadastroService) ListarEspecialidades(ctx context.Context) ([]dto.CadastroResponse, error) {
	items, err := s.esp.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CadastroResponse, len(items))
	for i, e := range items {
		resp[i] = dto.CadastroResponse{ID: e.ID.String(), Nome: e.Nome}
	}
	return resp, nil
}

func (s *cadastroService) CriarEspecialidade(ctx context.Context, nome string) (*dto.CadastroResponse, error) {
	e := &model.Especialidade{Nome: nome}
	if err := s.esp.Create(ctx, e); err != nil {
		return nil, err
	}
	return &dto.CadastroResponse{ID: e.ID.String(), Nome: e.Nome}, nil
}

func (s *cadastroService) AtualizarEspecialidade(ctx context.Context, id uuid.UUID, nome string) error {
	if nome == "" {
		return errors.New("Nome obrigatório")
	}
	return s.esp.UpdateNome(ctx, id, nome)
}

func (s *cadastroService) ExcluirEspecialidade(ctx context.Context, id uuid.UUID) error {
	return s.esp.Delete(ctx, id)
}
