package repository

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompraRepository interface {
	ListRango(ctx context.Context, rango dto.RangoFechas) ([]model.Compra, error)
	// Lotes returns every lot, oldest first, ready for inventario.AgruparCompras.
	Lotes(ctx context.Context) ([]inventario.Lote, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Compra, error)
	CreateTx(tx *gorm.DB, c *model.Compra) error
	DeleteTx(tx *gorm.DB, id uint) error
	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) DB() *gorm.DB { return r.db }

func (r *compraRepo) ListRango(ctx context.Context, rango dto.RangoFechas) ([]model.Compra, error) {
	var compras []model.Compra
	err := r.db.WithContext(ctx).
		Where("fecha >= ? AND fecha < ?", rango.Desde, rango.Hasta).
		Order("fecha DESC, id DESC").
		Find(&compras).Error
	return compras, err
}

func (r *compraRepo) Lotes(ctx context.Context) ([]inventario.Lote, error) {
	var lotes []inventario.Lote
	err := r.db.WithContext(ctx).Model(&model.Compra{}).
		Select("producto_id, producto, cantidad, precio, precio_venta, fecha").
		Order("fecha ASC, id ASC").
		Scan(&lotes).Error
	return lotes, err
}

// FindByIDTx locks the row until the transaction ends.
func (r *compraRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Compra, error) {
	var c model.Compra
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error
	return &c, err
}

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

// DeleteTx reports gorm.ErrRecordNotFound when no row was removed.
func (r *compraRepo) DeleteTx(tx *gorm.DB, id uint) error {
	res := tx.Delete(&model.Compra{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
