package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de compra
const (
	CompraAdd      = "add"
	CompraSubtract = "subtract"
)

// CrearCompraRequest carries the quantity in packages; the stored delta is
// Cantidad × Unidades, negated for a subtract.
type CrearCompraRequest struct {
	ProductoID   uint            `json:"productoId"   validate:"required"`
	Cantidad     int             `json:"cantidad"     validate:"gt=0"`
	Precio       decimal.Decimal `json:"precio"       validate:"gt=0"`
	PrecioVenta  decimal.Decimal `json:"precioVenta"  validate:"gt=0"`
	Presentacion string          `json:"presentacion" validate:"omitempty,oneof=Unidad Caja Bolsa"`
	Unidades     int             `json:"unidades"     validate:"omitempty,min=1"`
	Tipo         string          `json:"tipo"         validate:"omitempty,oneof=add subtract"`
	Responsable  string          `json:"responsable"  validate:"max=100"`
}

// ComprasRangoRequest is the body form of the listing, POST /api/compras.
type ComprasRangoRequest struct {
	InitialDate *time.Time `json:"initialDate"`
	FinalDate   *time.Time `json:"finalDate"`
}

// Query converts the body dates to the query form so both listings resolve
// ranges the same way.
func (r ComprasRangoRequest) Query() RangoFechasQuery {
	var q RangoFechasQuery
	if r.InitialDate != nil {
		q.StartDate = r.InitialDate.Format(formatoFecha)
	}
	if r.FinalDate != nil {
		q.EndDate = r.FinalDate.Format(formatoFecha)
	}
	return q
}

type CompraResponse struct {
	ID           uint            `json:"id"`
	ProductoID   uint            `json:"productoId"`
	Producto     string          `json:"producto"`
	Cantidad     int             `json:"cantidad"`
	Precio       decimal.Decimal `json:"precio"`
	PrecioVenta  decimal.Decimal `json:"precioVenta"`
	Presentacion string          `json:"presentacion"`
	Unidades     int             `json:"unidades"`
	Responsable  string          `json:"responsable"`
	Fecha        time.Time       `json:"fecha"`
}

// ExistenciaResponse is one grouped row of GET /api/compras/resumen.
type ExistenciaResponse struct {
	ID          uint            `json:"id"`
	Producto    string          `json:"producto"`
	Cantidad    int             `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	PrecioVenta decimal.Decimal `json:"precioVenta"`
	Fecha       time.Time       `json:"fecha"`
	Nivel       string          `json:"nivel"`
}
