package service

import (
	"context"
	"fmt"

	"eskimo/internal/model"
	"eskimo/internal/repository"

	"gorm.io/gorm"
)

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// stockTx moves warehouse stock of a locked product and writes the audit row.
type stockTx struct {
	productos   repository.ProductoRepository
	movimientos repository.MovimientoStockRepository
}

// bloquear loads the product row FOR UPDATE.
func (s stockTx) bloquear(tx *gorm.DB, productoID uint) (*model.Producto, error) {
	p, err := s.productos.FindByIDForUpdateTx(tx, productoID)
	if err != nil {
		return nil, noEncontrado(err, "producto", productoID)
	}
	return p, nil
}

// mover applies delta to p. Stock never goes below zero.
func (s stockTx) mover(tx *gorm.DB, p *model.Producto, delta int, tipo, motivo string, ref *uint) error {
	nuevo := p.Cantidad + delta
	if nuevo < 0 {
		return fmt.Errorf("%w de %s: disponible %d, solicitado %d", ErrStockInsuficiente, p.Nombre, p.Cantidad, -delta)
	}
	if err := s.productos.UpdateStockTx(tx, p.ID, delta); err != nil {
		return err
	}
	mov := &model.MovimientoStock{
		ProductoID:    p.ID,
		Tipo:          tipo,
		Cantidad:      delta,
		StockAnterior: p.Cantidad,
		StockNuevo:    nuevo,
		Motivo:        motivo,
		ReferenciaID:  ref,
	}
	if err := s.movimientos.CreateTx(tx, mov); err != nil {
		return err
	}
	p.Cantidad = nuevo
	return nil
}
