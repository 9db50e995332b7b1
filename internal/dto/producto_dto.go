package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Producto     string          `json:"producto"     validate:"required,min=1,max=120"`
	Precio       decimal.Decimal `json:"precio"       validate:"gt=0"`
	PrecioVenta  decimal.Decimal `json:"precioVenta"  validate:"gt=0"`
	Cantidad     int             `json:"cantidad"     validate:"gt=0"`
	Presentacion string          `json:"presentacion" validate:"omitempty,oneof=Unidad Caja Bolsa"`
	Unidades     int             `json:"unidades"     validate:"omitempty,min=1"`
}

type ActualizarProductoRequest struct {
	Producto     *string          `json:"producto"     validate:"omitempty,min=1,max=120"`
	Precio       *decimal.Decimal `json:"precio"`
	PrecioVenta  *decimal.Decimal `json:"precioVenta"`
	Presentacion *string          `json:"presentacion" validate:"omitempty,oneof=Unidad Caja Bolsa"`
	Unidades     *int             `json:"unidades"     validate:"omitempty,min=1"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

// ProductoFilter is bound from the query string of GET /api/products and
// GET /api/compras/resumen.
type ProductoFilter struct {
	Search string `form:"search"`
	Nivel  string `form:"nivel"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           uint            `json:"id"`
	Producto     string          `json:"producto"`
	Precio       decimal.Decimal `json:"precio"`
	PrecioVenta  decimal.Decimal `json:"precioVenta"`
	Cantidad     int             `json:"cantidad"`
	Presentacion string          `json:"presentacion"`
	Unidades     int             `json:"unidades"`
	Nivel        string          `json:"nivel"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// InventarioEmpleadoItem is one row of GET /api/products/:employeeId.
type InventarioEmpleadoItem struct {
	ID       uint   `json:"id"`
	Producto string `json:"producto"`
	Cantidad int    `json:"cantidad"`
}
