package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ─── Request DTOs ────────────────────────────────────────────────────────────

// VentaRequest is one line of the checkout array sent to POST /api/ventas.
// Precio is ignored: the purchase price is taken from the product.
type VentaRequest struct {
	ProductoID  uint             `json:"productoId"  validate:"required"`
	EmpleadoID  uint             `json:"empleadoId"  validate:"required"`
	Cantidad    int              `json:"cantidad"    validate:"gt=0"`
	PrecioVenta *decimal.Decimal `json:"precioVenta"`
	Producto    string           `json:"producto"`
	Empleado    string           `json:"empleado"`
}

// EnviarReporteRequest asks the worker pool to mail a PDF sales report.
type EnviarReporteRequest struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Email     string `json:"email" validate:"required,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type VentaResponse struct {
	ID          uint            `json:"id"`
	ProductoID  uint            `json:"productoId"`
	Producto    string          `json:"producto"`
	EmpleadoID  uint            `json:"empleadoId"`
	Empleado    string          `json:"empleado"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	PrecioVenta decimal.Decimal `json:"precioVenta"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// VentaEmpleadoResponse is one row of GET /api/ventas/:id.
type VentaEmpleadoResponse struct {
	ID          uint            `json:"id"`
	Producto    string          `json:"producto"`
	Cantidad    int             `json:"cantidad"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	SaleDate    time.Time       `json:"saleDate"`
}

type ResumenVentasResponse struct {
	Total    decimal.Decimal `json:"total"`
	Ganancia decimal.Decimal `json:"ganancia"`
	Cantidad int             `json:"cantidad"`
}

// EmpleadoVentasResponse is one row of the employee ranking.
type EmpleadoVentasResponse struct {
	ID         uint            `json:"id"`
	Name       string          `json:"name"`
	TotalSales decimal.Decimal `json:"totalSales"`
}

// ProductoVentasResponse is one row of the product ranking.
type ProductoVentasResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantitySold"`
}

// ReporteVentas is everything an exported sales report contains.
type ReporteVentas struct {
	Negocio   string
	Desde     time.Time
	Hasta     time.Time
	Resumen   ResumenVentasResponse
	Empleados []EmpleadoVentasResponse
	Productos []ProductoVentasResponse
	Ventas    []VentaResponse
}
