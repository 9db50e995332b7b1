package repository

import (
	"context"
	"time"

	"eskimo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SuscripcionRepository interface {
	Get(ctx context.Context) (*model.Suscripcion, error)
	GetForUpdateTx(tx *gorm.DB) (*model.Suscripcion, error)
	SaveTx(tx *gorm.DB, s *model.Suscripcion) error
	// InsertTokenTx fails with gorm.ErrDuplicatedKey when the jti was already redeemed.
	InsertTokenTx(tx *gorm.DB, t *model.TokenActivacion) error
	// EnsureTrial creates the subscription row with a trial period if missing.
	EnsureTrial(ctx context.Context, dias int, now time.Time) error
	DB() *gorm.DB
}

type suscripcionRepo struct{ db *gorm.DB }

func NewSuscripcionRepository(db *gorm.DB) SuscripcionRepository { return &suscripcionRepo{db: db} }

func (r *suscripcionRepo) DB() *gorm.DB { return r.db }

func (r *suscripcionRepo) Get(ctx context.Context) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := r.db.WithContext(ctx).First(&s, model.SuscripcionID).Error
	return &s, err
}

func (r *suscripcionRepo) GetForUpdateTx(tx *gorm.DB) (*model.Suscripcion, error) {
	var s model.Suscripcion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, model.SuscripcionID).Error
	return &s, err
}

func (r *suscripcionRepo) SaveTx(tx *gorm.DB, s *model.Suscripcion) error {
	return tx.Save(s).Error
}

func (r *suscripcionRepo) InsertTokenTx(tx *gorm.DB, t *model.TokenActivacion) error {
	return tx.Create(t).Error
}

func (r *suscripcionRepo) EnsureTrial(ctx context.Context, dias int, now time.Time) error {
	s := model.Suscripcion{ID: model.SuscripcionID, ExpiraEn: now.AddDate(0, 0, dias)}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&s).Error
}
