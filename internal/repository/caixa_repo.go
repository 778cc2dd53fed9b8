package repository

import (
	"context"
	"time"

	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CaixaListRow is a caixa joined with the owning user's name, for the
// date-range listing screen.
type CaixaListRow struct {
	model.Caixa `gorm:"embedded"`
	UsuarioNome string
}

type CaixaRepository interface {
	Create(ctx context.Context, c *model.Caixa) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error)
	FindByDia(ctx context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error)
	// Encerrar stamps encerrado_em on the still-open caixa for (usuario, dia)
	// and reports how many rows changed. An already-closed caixa matches no
	// row, so its timestamp is never rewritten.
	Encerrar(ctx context.Context, usuarioID uuid.UUID, dia time.Time, quando time.Time) (int64, error)
	ListRange(ctx context.Context, ini, fim time.Time) ([]CaixaListRow, error)
}

type caixaRepo struct{ db *gorm.DB }

func NewCaixaRepository(db *gorm.DB) CaixaRepository { return &caixaRepo{db: db} }

func (r *caixaRepo) Create(ctx context.Context, c *model.Caixa) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *caixaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *caixaRepo) FindByDia(ctx context.Context, usuarioID uuid.UUID, dia time.Time) (*model.Caixa, error) {
	var c model.Caixa
	err := r.db.WithContext(ctx).
		Where("usuario_id = ? AND data_caixa = ?", usuarioID, dia.Format("2006-01-02")).
		First(&c).Error
	return &c, err
}

func (r *caixaRepo) Encerrar(ctx context.Context, usuarioID uuid.UUID, dia time.Time, quando time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Caixa{}).
		Where("usuario_id = ? AND data_caixa = ? AND encerrado_em IS NULL",
			usuarioID, dia.Format("2006-01-02")).
		Update("encerrado_em", quando)
	return res.RowsAffected, res.Error
}

func (r *caixaRepo) ListRange(ctx context.Context, ini, fim time.Time) ([]CaixaListRow, error) {
	var rows []CaixaListRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT c.*, u.nome AS usuario_nome
		FROM caixas c
		JOIN usuarios u ON u.id = c.usuario_id
		WHERE c.data_caixa BETWEEN ? AND ?
		ORDER BY c.data_caixa DESC, c.aberto_em DESC
		LIMIT 200`,
		ini.Format("2006-01-02"), fim.Format("2006-01-02")).
		Scan(&rows).Error
	return rows, err
}
