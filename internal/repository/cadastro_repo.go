package repository

import (
	"context"

	"clinicaixa/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profissionais and especialidades are both plain {id, nome} catalogs with
// identical CRUD, so each gets a thin repository over the same shape.

type ProfissionalRepository interface {
	List(ctx context.Context) ([]model.Profissional, error)
	Create(ctx context.Context, p *model.Profissional) error
	UpdateNome(ctx context.Context, id uuid.UUID, nome string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type profissionalRepo struct{ db *gorm.DB }

func NewProfissionalRepository(db *gorm.DB) ProfissionalRepository {
	return &profissionalRepo{db: db}
}

func (r *profissionalRepo) List(ctx context.Context) ([]model.Profissional, error) {
	var out []model.Profissional
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *profissionalRepo) Create(ctx context.Context, p *model.Profissional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *profissionalRepo) UpdateNome(ctx context.Context, id uuid.UUID, nome string) error {
	return r.db.WithContext(ctx).Model(&model.Profissional{}).
		Where("id = ?", id).Update("nome", nome).Error
}

func (r *profissionalRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Profissional{}, id).Error
}

type EspecialidadeRepository interface {
	List(ctx context.Context) ([]model.Especialidade, error)
	Create(ctx context.Context, e *model.Especialidade) error
	UpdateNome(ctx context.Context, id uuid.UUID, nome string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type especialidadeRepo struct{ db *gorm.DB }

func NewEspecialidadeRepository(db *gorm.DB) EspecialidadeRepository {
	return &especialidadeRepo{db: db}
}

func (r *especialidadeRepo) List(ctx context.Context) ([]model.Especialidade, error) {
	var out []model.Especialidade
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&out).Error
	return out, err
}

func (r *especialidadeRepo) Create(ctx context.Context, e *model.Especialidade) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *especialidadeRepo) UpdateNome(ctx context.Context, id uuid.UUID, nome string) error {
	return r.db.WithContext(ctx).Model(&model.Especialidade{}).
		Where("id = ?", id).Update("nome", nome).Error
}

func (r *especialidadeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Especialidade{}, id).Error
}
