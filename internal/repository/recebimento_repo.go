package repository

import (
	"context"

	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RecebimentoRepository interface {
	// Create inserts the recebimento and its procedimento links in one
	// transaction, so a failure mid-way cannot leave a partial link set.
	Create(ctx context.Context, rec *model.Recebimento, procIDs []uuid.UUID) error
	// Update replaces all fields and the whole procedimento-link set.
	Update(ctx context.Context, rec *model.Recebimento, procIDs []uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Recebimento, error)
	ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Recebimento, error)
}

type recebimentoRepo struct{ db *gorm.DB }

func NewRecebimentoRepository(db *gorm.DB) RecebimentoRepository {
	return &recebimentoRepo{db: db}
}

func (r *recebimentoRepo) Create(ctx context.Context, rec *model.Recebimento, procIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Procedimentos").Create(rec).Error; err != nil {
			return err
		}
		return insertLinks(tx, rec.ID, procIDs)
	})
}

func (r *recebimentoRepo) Update(ctx context.Context, rec *model.Recebimento, procIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Recebimento{}).Where("id = ?", rec.ID).
			Select("paciente_nome", "paciente_cpf", "valor", "forma_pagamento",
				"tabela", "baixa", "indicador", "profissional_id",
				"especialidade_id", "observacao").
			Updates(rec).Error
		if err != nil {
			return err
		}
		if err := tx.Where("recebimento_id = ?", rec.ID).
			Delete(&model.RecebimentoProcedimento{}).Error; err != nil {
			return err
		}
		return insertLinks(tx, rec.ID, procIDs)
	})
}

func (r *recebimentoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recebimento_id = ?", id).
			Delete(&model.RecebimentoProcedimento{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Recebimento{}, id).Error
	})
}

func (r *recebimentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Recebimento, error) {
	var rec model.Recebimento
	err := r.db.WithContext(ctx).
		Preload("Procedimentos").
		Preload("Profissional").
		Preload("Especialidade").
		First(&rec, id).Error
	return &rec, err
}

func (r *recebimentoRepo) ListByCaixa(ctx context.Context, caixaID uuid.UUID) ([]model.Recebimento, error) {
	var recs []model.Recebimento
	err := r.db.WithContext(ctx).
		Preload("Procedimentos").
		Preload("Profissional").
		Preload("Especialidade").
		Where("caixa_id = ?", caixaID).
		Order("created_at DESC").
		Find(&recs).Error
	return recs, err
}

func insertLinks(tx *gorm.DB, recID uuid.UUID, procIDs []uuid.UUID) error {
	if len(procIDs) == 0 {
		return nil
	}
	links := make([]model.RecebimentoProcedimento, 0, len(procIDs))
	seen := make(map[uuid.UUID]bool, len(procIDs))
	for _, pid := range procIDs {
		if seen[pid] {
			continue
		}
		seen[pid] = true
		links = append(links, model.RecebimentoProcedimento{
			RecebimentoID:  recID,
			ProcedimentoID: pid,
		})
	}
	return tx.Create(&links).Error
}
