package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Compra is a purchase lot. Cantidad is a signed delta in units: positive for
// stock intake, negative for manual write-offs.
type Compra struct {
	ID           uint            `gorm:"primaryKey"`
	ProductoID   uint            `gorm:"not null;index"`
	Producto     string          `gorm:"not null"`
	Cantidad     int             `gorm:"not null"`
	Precio       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PrecioVenta  decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Presentacion string          `gorm:"type:varchar(20);not null"`
	Unidades     int             `gorm:"not null;default:1"`
	Responsable  string          `gorm:"not null"`
	Fecha        time.Time       `gorm:"not null;index"`
}
