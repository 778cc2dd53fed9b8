package repository

import (
	"context"

	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProcedimentoRepository interface {
	List(ctx context.Context) ([]model.Procedimento, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Procedimento, error)
	Upsert(ctx context.Context, p *model.Procedimento) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type procedimentoRepo struct{ db *gorm.DB }

func NewProcedimentoRepository(db *gorm.DB) ProcedimentoRepository {
	return &procedimentoRepo{db: db}
}

func (r *procedimentoRepo) List(ctx context.Context) ([]model.Procedimento, error) {
	var out []model.Procedimento
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *procedimentoRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Procedimento, error) {
	var out []model.Procedimento
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// Upsert inserts a procedimento or, when the nome is already taken,
// updates its three price points in place.
func (r *procedimentoRepo) Upsert(ctx context.Context, p *model.Procedimento) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "nome"}},
		DoUpdates: clause.AssignmentColumns([]string{"valor_cartao", "valor_particular", "valor_otica"}),
	}).Create(p).Error
}

func (r *procedimentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Procedimento{}, id).Error
}
