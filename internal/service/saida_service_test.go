package service

import (
	"context"
	"testing"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSaidaRepo struct {
	saidas map[uuid.UUID]*model.Saida
}

func newStubSaidaRepo() *stubSaidaRepo {
	return &stubSaidaRepo{saidas: make(map[uuid.UUID]*model.Saida)}
}

func (r *stubSaidaRepo) Create(_ context.Context, s *model.Saida) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	s.CreatedAt = time.Now()
	cloned := *s
	r.saidas[s.ID] = &cloned
	return nil
}

func (r *stubSaidaRepo) ListByCaixa(_ context.Context, caixaID uuid.UUID) ([]model.Saida, error) {
	var out []model.Saida
	for _, s := range r.saidas {
		if s.CaixaID == caixaID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func saidaValida(caixaID uuid.UUID) dto.SaidaRequest {
	return dto.SaidaRequest{
		CaixaID:   caixaID.String(),
		Descricao: "Compra de material",
		Valor:     decimal.NewFromInt(35),
		Origem:    "Dinheiro",
	}
}

func TestAdicionarSaida(t *testing.T) {
	caixaRepo := newStubCaixaRepo()
	caixa := abreCaixaDeTeste(t, caixaRepo)
	repo := newStubSaidaRepo()
	svc := NewSaidaService(repo, caixaRepo)

	resp, err := svc.Adicionar(context.Background(), saidaValida(caixa.ID))
	require.NoError(t, err)
	assert.Equal(t, "Compra de material", resp.Descricao)
	assert.True(t, resp.Valor.Equal(decimal.NewFromInt(35)))
}

func TestAdicionarSaidaCaixaEncerrado(t *testing.T) {
	caixaRepo := newStubCaixaRepo()
	caixa := abreCaixaDeTeste(t, caixaRepo)
	agora := time.Now()
	caixa.EncerradoEm = &agora
	repo := newStubSaidaRepo()
	svc := NewSaidaService(repo, caixaRepo)

	_, err := svc.Adicionar(context.Background(), saidaValida(caixa.ID))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encerrado")
	assert.Empty(t, repo.saidas)
}

func TestAdicionarSaidaCaixaInexistente(t *testing.T) {
	svc := NewSaidaService(newStubSaidaRepo(), newStubCaixaRepo())
	_, err := svc.Adicionar(context.Background(), saidaValida(uuid.New()))
	assert.Error(t, err)
}

func TestListarSaidasPorCaixa(t *testing.T) {
	caixaRepo := newStubCaixaRepo()
	caixa := abreCaixaDeTeste(t, caixaRepo)
	repo := newStubSaidaRepo()
	svc := NewSaidaService(repo, caixaRepo)

	_, err := svc.Adicionar(context.Background(), saidaValida(caixa.ID))
	require.NoError(t, err)
	_, err = svc.Adicionar(context.Background(), saidaValida(caixa.ID))
	require.NoError(t, err)

	lista, err := svc.ListarPorCaixa(context.Background(), caixa.ID)
	require.NoError(t, err)
	assert.Len(t, lista, 2)
}
