package repository

import (
	"context"

	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaidaRepository interface {
	Create(ctx context.Context, s *model.Saida) error
	ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Saida, error)
}

type saidaRepo struct{ db *gorm.DB }

func NewSaidaRepository(db *gorm.DB) SaidaRepository { return &saidaRepo{db: db} }

func (r *saidaRepo) Create(ctx context.Context, s *model.Saida) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *saidaRepo) ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Saida, error) {
	var saidas []model.Saida
	err := r.db.WithContext(ctx).
		Where("caixa_id = ?", caixaID).
		Order("created_at DESC").
		Find(&saidas).Error
	return saidas, err
}
