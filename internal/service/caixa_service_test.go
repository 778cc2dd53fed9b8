package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinicaixa/internal/dto"
	"clinicaixa/internal/model"
	"clinicaixa/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory CaixaRepository stub ───────────────────────────────────────────

type stubCaixaRepo struct {
	caixas map[uuid.UUID]*model.Caixa
}

func newStubCaixaRepo() *stubCaixaRepo {
	return &stubCaixaRepo{caixas: make(map[uuid.UUID]*model.Caixa)}
}

func diaKey(t time.Time) string { return t.Format("2006-01-02") }

func (r *stubCaixaRepo) Create(_ context.Context, c *model.Caixa) error {
	for _, other := range r.caixas {
		if other.UsuarioID == c.UsuarioID && diaKey(other.DataCaixa) == diaKey(c.DataCaixa) {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.caixas[c.ID] = &cloned
	return nil
}

func (r *stubCaixaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Caixa, error) {
	c, ok := r.caixas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCaixaRepo) FindByDia(_ context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error) {
	for _, c := range r.caixas {
		if c.UsuarioID == usuarioID && diaKey(c.DataCaixa) == diaKey(dia) {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCaixaRepo) Encerrar(_ context.Context, usuarioID uuid.UUID, dia time.Time, quando time.Time) (int64, error) {
	for _, c := range r.caixas {
		if c.UsuarioID == usuarioID && diaKey(c.DataCaixa) == diaKey(dia) && c.EncerradoEm == nil {
			t := quando
			c.EncerradoEm = &t
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubCaixaRepo) ListRange(_ context.Context, ini, fim time.Time) ([]repository.CaixaListRow, error) {
	var rows []repository.CaixaListRow
	for _, c := range r.caixas {
		if !c.DataCaixa.Before(ini) && !c.DataCaixa.After(fim) {
			rows = append(rows, repository.CaixaListRow{Caixa: *c, UsuarioNome: "Operador"})
		}
	}
	return rows, nil
}

// failingCaixaRepo simulates an unreachable database: every lookup fails
// with an infrastructure error, never with "not found".
type failingCaixaRepo struct {
	*stubCaixaRepo
	err error
}

func (r *failingCaixaRepo) FindByDia(context.Context, uuid.UUID, time.Time) (*model.Caixa, error) {
	return nil, r.err
}

// ── Abertura ─────────────────────────────────────────────────────────────────

func TestAbrirCaixa(t *testing.T) {
	repo := newStubCaixaRepo()
	agora := time.Date(2026, 3, 10, 8, 30, 0, 0, time.UTC)
	svc := NewCaixaService(repo, func() time.Time { return agora })
	usuarioID := uuid.New()

	resp, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		DataCaixa:    "2026-03-10",
		SaldoInicial: decimal.NewFromInt(200),
		Obs:          "troco inicial",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-10", resp.DataCaixa)
	assert.True(t, resp.SaldoInicial.Equal(decimal.NewFromInt(200)))
	assert.Nil(t, resp.EncerradoEm)
}

func TestAbrirCaixaDuplicadoMesmoDia(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo, nil)
	usuarioID := uuid.New()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		DataCaixa: "2026-03-10", SaldoInicial: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	_, err = svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		DataCaixa: "2026-03-10", SaldoInicial: decimal.NewFromInt(500),
	})
	require.Error(t, err)
	assert.Len(t, repo.caixas, 1, "o segundo abrir não pode criar outro caixa")
}

func TestAbrirCaixaOutroUsuarioMesmoDia(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo, nil)

	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{DataCaixa: "2026-03-10"})
	require.NoError(t, err)
	_, err = svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{DataCaixa: "2026-03-10"})
	require.NoError(t, err, "usuários diferentes podem abrir caixa no mesmo dia")
}

func TestAbrirCaixaDataInvalida(t *testing.T) {
	svc := NewCaixaService(newStubCaixaRepo(), nil)
	_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{DataCaixa: "10/03/2026"})
	assert.Error(t, err)
}

// ── Encerramento ─────────────────────────────────────────────────────────────

func TestEncerrarCaixa(t *testing.T) {
	repo := newStubCaixaRepo()
	primeiroFechamento := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	relogio := primeiroFechamento
	svc := NewCaixaService(repo, func() time.Time { return relogio })
	usuarioID := uuid.New()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{DataCaixa: "2026-03-10"})
	require.NoError(t, err)

	require.NoError(t, svc.Encerrar(context.Background(), usuarioID, "2026-03-10"))

	caixa, err := repo.FindByDia(context.Background(), usuarioID, primeiroFechamento)
	require.NoError(t, err)
	require.NotNil(t, caixa.EncerradoEm)
	assert.Equal(t, primeiroFechamento, *caixa.EncerradoEm)

	// Re-encerrar falha e o carimbo original permanece intacto.
	relogio = primeiroFechamento.Add(2 * time.Hour)
	err = svc.Encerrar(context.Background(), usuarioID, "2026-03-10")
	require.Error(t, err)
	assert.Equal(t, primeiroFechamento, *caixa.EncerradoEm)
}

func TestEncerrarCaixaInexistente(t *testing.T) {
	svc := NewCaixaService(newStubCaixaRepo(), nil)
	err := svc.Encerrar(context.Background(), uuid.New(), "2026-03-10")
	assert.Error(t, err)
}

// ── Consultas ────────────────────────────────────────────────────────────────

func TestGetByDia(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo, nil)
	usuarioID := uuid.New()

	_, err := svc.Abrir(context.Background(), usuarioID, dto.AbrirCaixaRequest{
		DataCaixa: "2026-03-10", SaldoInicial: decimal.NewFromInt(50),
	})
	require.NoError(t, err)

	resp, err := svc.GetByDia(context.Background(), usuarioID, "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.SaldoInicial.Equal(decimal.NewFromInt(50)))

	// Dia sem caixa: data presente, nada de erro.
	resp, err = svc.GetByDia(context.Background(), usuarioID, "2026-03-11")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestGetByDiaErroDeBanco(t *testing.T) {
	repo := &failingCaixaRepo{
		stubCaixaRepo: newStubCaixaRepo(),
		err:           errors.New("pq: connection refused"),
	}
	svc := NewCaixaService(repo, nil)

	// Falha de infraestrutura não pode virar "sem caixa hoje".
	resp, err := svc.GetByDia(context.Background(), uuid.New(), "2026-03-10")
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestCaixaResponsePreservaFuso(t *testing.T) {
	saoPaulo := time.FixedZone("America/Sao_Paulo", -3*60*60)
	caixa := &model.Caixa{
		ID:        uuid.New(),
		UsuarioID: uuid.New(),
		DataCaixa: time.Date(2026, 3, 10, 0, 0, 0, 0, saoPaulo),
		AbertoEm:  time.Date(2026, 3, 10, 8, 30, 0, 0, saoPaulo),
	}
	fechado := time.Date(2026, 3, 10, 18, 0, 0, 0, saoPaulo)
	caixa.EncerradoEm = &fechado

	resp := caixaToResponse(caixa)
	assert.Equal(t, "2026-03-10T08:30:00-03:00", resp.AbertoEm)
	require.NotNil(t, resp.EncerradoEm)
	assert.Equal(t, "2026-03-10T18:00:00-03:00", *resp.EncerradoEm)
}

func TestListarPorPeriodo(t *testing.T) {
	repo := newStubCaixaRepo()
	svc := NewCaixaService(repo, nil)

	for _, dia := range []string{"2026-03-08", "2026-03-10", "2026-03-15"} {
		_, err := svc.Abrir(context.Background(), uuid.New(), dto.AbrirCaixaRequest{DataCaixa: dia})
		require.NoError(t, err)
	}

	itens, err := svc.Listar(context.Background(), "2026-03-09", "2026-03-12")
	require.NoError(t, err)
	assert.Len(t, itens, 1)
	assert.Equal(t, "2026-03-10", itens[0].DataCaixa)

	// Sem filtros, o período padrão cobre tudo.
	itens, err = svc.Listar(context.Background(), "", "")
	require.NoError(t, err)
	assert.Len(t, itens, 3)
}
