package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Presentacion values accepted for products and purchase lots.
const (
	PresentacionUnidad = "Unidad"
	PresentacionCaja   = "Caja"
	PresentacionBolsa  = "Bolsa"
)

// Producto is a catalog item. Cantidad is the warehouse stock: it moves only
// through purchases (Compra) and employee assignments (Asignacion).
type Producto struct {
	ID           uint            `gorm:"primaryKey"`
	Nombre       string          `gorm:"column:nombre;uniqueIndex;not null"`
	Precio       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Cantidad     int             `gorm:"not null;default:0"`
	Presentacion string          `gorm:"type:varchar(20);not null;default:'Unidad'"`
	Unidades     int             `gorm:"not null;default:1"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
