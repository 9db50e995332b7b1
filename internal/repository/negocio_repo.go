package repository

import (
	"context"

	"eskimo/internal/model"

	"gorm.io/gorm"
)

type NegocioRepository interface {
	// Get returns gorm.ErrRecordNotFound until the settings are saved once.
	Get(ctx context.Context) (*model.Negocio, error)
	Save(ctx context.Context, n *model.Negocio) error
}

type negocioRepo struct{ db *gorm.DB }

func NewNegocioRepository(db *gorm.DB) NegocioRepository { return &negocioRepo{db: db} }

func (r *negocioRepo) Get(ctx context.Context) (*model.Negocio, error) {
	var n model.Negocio
	err := r.db.WithContext(ctx).First(&n, model.NegocioID).Error
	return &n, err
}

func (r *negocioRepo) Save(ctx context.Context, n *model.Negocio) error {
	n.ID = model.NegocioID
	return r.db.WithContext(ctx).Save(n).Error
}
