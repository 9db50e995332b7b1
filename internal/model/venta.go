package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta is one sale line: units of a product sold by an employee.
// Precio snapshots the purchase price at sale time so profit reports stay
// stable after price changes.
type Venta struct {
	ID          uint            `gorm:"primaryKey"`
	ProductoID  uint            `gorm:"not null;index"`
	Producto    string          `gorm:"not null"`
	EmpleadoID  uint            `gorm:"not null;index"`
	Empleado    string          `gorm:"not null"`
	Cantidad    int             `gorm:"not null"`
	Precio      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	PrecioVenta decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"index"`
}

// Total is PrecioVenta × Cantidad.
func (v Venta) Total() decimal.Decimal {
	return v.PrecioVenta.Mul(decimal.NewFromInt(int64(v.Cantidad)))
}

// Ganancia is (PrecioVenta − Precio) × Cantidad.
func (v Venta) Ganancia() decimal.Decimal {
	return v.PrecioVenta.Sub(v.Precio).Mul(decimal.NewFromInt(int64(v.Cantidad)))
}
