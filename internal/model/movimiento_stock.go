package model

import "time"

// Tipos de movimiento de stock
const (
	MovAlta       = "alta"
	MovCompra     = "compra"
	MovBaja       = "baja"
	MovAnulacion  = "anulacion_compra"
	MovAsignacion = "asignacion"
	MovDevolucion = "devolucion"
)

// MovimientoStock registra cada cambio de stock de bodega de un producto.
type MovimientoStock struct {
	ID            uint   `gorm:"primaryKey"`
	ProductoID    uint   `gorm:"not null;index"`
	Tipo          string `gorm:"type:varchar(30);not null"`
	Cantidad      int    `gorm:"not null"` // positive = entrada, negative = salida
	StockAnterior int    `gorm:"not null"`
	StockNuevo    int    `gorm:"not null"`
	Motivo        string
	ReferenciaID  *uint // compra or asignacion id when applicable
	CreatedAt     time.Time
}

// TableName overrides GORM's default pluralization.
func (MovimientoStock) TableName() string { return "movimientos_stock" }
