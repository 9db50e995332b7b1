package dto

import (
	"github.com/shopspring/decimal"

	"eskimo/internal/carrito"
)

type AbrirCarritoRequest struct {
	EmpleadoID uint `json:"empleadoId" validate:"required"`
}

// AgregarItemRequest adds a product to the cart. PrecioVenta defaults to the
// product's sale price.
type AgregarItemRequest struct {
	ProductoID  uint             `json:"productoId"  validate:"required"`
	Cantidad    int              `json:"cantidad"    validate:"gt=0"`
	PrecioVenta *decimal.Decimal `json:"precioVenta"`
}

type CarritoResponse struct {
	ID         string          `json:"id"`
	EmpleadoID uint            `json:"empleadoId"`
	Empleado   string          `json:"empleado"`
	Items      []carrito.Item  `json:"items"`
	Total      decimal.Decimal `json:"total"`
}
