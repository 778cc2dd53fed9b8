package service

import (
	"context"
	"errors"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const dataFormato = "2006-01-02"

type CaixaService interface {
	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error)
	Encerrar(ctx context.Context, usuarioID uuid.UUID, data string) error
	GetByDia(ctx context.Context, usuarioID uuid.UUID, data string) (*dto.CaixaResponse, error)
	Listar(ctx context.Context, ini, fim string) ([]dto.CaixaListItem, error)
}

type caixaService struct {
	repo  repository.CaixaRepository
	agora func() time.Time
}

func NewCaixaService(repo repository.CaixaRepository, agora func() time.Time) CaixaService {
	if agora == nil {
		agora = time.Now
	}
	return &caixaService{repo: repo, agora: agora}
}

// ── Abrir ─────────────────────────────────────────────────────────────────────
// At most one caixa per (usuario, dia). The pre-check gives a friendly
// message; the DB unique index is what actually guarantees the invariant
// under concurrent opens, and its rejection surfaces as a generic failure.

func (s *caixaService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirCaixaRequest) (*dto.CaixaResponse, error) {
	dia, err := time.Parse(dataFormato, req.DataCaixa)
	if err != nil {
		return nil, errors.New("data_caixa inválida")
	}

	if existing, err := s.repo.FindByDia(ctx, usuarioID, dia); err == nil && existing != nil {
		return nil, errors.New("Já existe caixa para este usuário nesta data.")
	}

	caixa := &model.Caixa{
		UsuarioID:    usuarioID,
		DataCaixa:    dia,
		SaldoInicial: req.SaldoInicial,
		Obs:          req.Obs,
		AbertoEm:     s.agora(),
	}
	if err := s.repo.Create(ctx, caixa); err != nil {
		log.Warn().Err(err).Str("usuario_id", usuarioID.String()).
			Str("data_caixa", req.DataCaixa).Msg("abertura de caixa rejeitada")
		return nil, errors.New("Já existe caixa para este usuário nesta data ou erro ao abrir.")
	}

	resp := caixaToResponse(caixa)
	return &resp, nil
}

// ── Encerrar ──────────────────────────────────────────────────────────────────
// The timestamp is written at most once: the update only matches a caixa
// whose encerrado_em is still NULL, so re-closing never rewrites it.

func (s *caixaService) Encerrar(ctx context.Context, usuarioID uuid.UUID, data string) error {
	dia, err := time.Parse(dataFormato, data)
	if err != nil {
		return errors.New("data_caixa inválida")
	}
	rows, err := s.repo.Encerrar(ctx, usuarioID, dia, s.agora())
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("Caixa inexistente ou já encerrado.")
	}
	return nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// GetByDia returns the caixa for (usuario, dia) regardless of state, or
// nil when none exists.
func (s *caixaService) GetByDia(ctx context.Context, usuarioID uuid.UUID, data string) (*dto.CaixaResponse, error) {
	if data == "" {
		data = s.agora().Format(dataFormato)
	}
	dia, err := time.Parse(dataFormato, data)
	if err != nil {
		return nil, errors.New("data_caixa inválida")
	}
	caixa, err := s.repo.FindByDia(ctx, usuarioID, dia)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	resp := caixaToResponse(caixa)
	return &resp, nil
}

func (s *caixaService) Listar(ctx context.Context, ini, fim string) ([]dto.CaixaListItem, error) {
	if ini == "" {
		ini = "1900-01-01"
	}
	if fim == "" {
		fim = "9999-12-31"
	}
	iniT, err := time.Parse(dataFormato, ini)
	if err != nil {
		return nil, errors.New("ini inválido")
	}
	fimT, err := time.Parse(dataFormato, fim)
	if err != nil {
		return nil, errors.New("fim inválido")
	}

	rows, err := s.repo.ListRange(ctx, iniT, fimT)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CaixaListItem, len(rows))
	for i := range rows {
		resp[i] = dto.CaixaListItem{
			CaixaResponse: caixaToResponse(&rows[i].Caixa),
			UsuarioNome:   rows[i].UsuarioNome,
		}
	}
	return resp, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func caixaToResponse(c *model.Caixa) dto.CaixaResponse {
	resp := dto.CaixaResponse{
		ID:           c.ID.String(),
		UsuarioID:    c.UsuarioID.String(),
		DataCaixa:    c.DataCaixa.Format(dataFormato),
		SaldoInicial: c.SaldoInicial,
		Obs:          c.Obs,
		AbertoEm:     c.AbertoEm.Format(time.RFC3339),
	}
	if c.EncerradoEm != nil {
		t := c.EncerradoEm.Format(time.RFC3339)
		resp.EncerradoEm = &t
	}
	return resp
}
