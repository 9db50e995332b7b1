package repository

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ResumenVentas holds the SQL aggregates of a date range.
type ResumenVentas struct {
	Total    decimal.Decimal
	Ganancia decimal.Decimal
	Cantidad int
}

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	ListRango(ctx context.Context, rango dto.RangoFechas, empleadoID uint) ([]model.Venta, error)
	Resumen(ctx context.Context, rango dto.RangoFechas) (ResumenVentas, error)
	RankingEmpleados(ctx context.Context, rango dto.RangoFechas) ([]dto.EmpleadoVentasResponse, error)
	RankingProductos(ctx context.Context, rango dto.RangoFechas) ([]dto.ProductoVentasResponse, error)

	// Totales vendidos por producto de un empleado.
	VendidoPorEmpleado(ctx context.Context, empleadoID uint) ([]inventario.Movimiento, error)
	VendidoProductoTx(tx *gorm.DB, empleadoID, productoID uint) (int, error)

	DB() *gorm.DB // exposes the DB for transaction creation in service layer
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

// ListRango lists sale lines in the range, newest first. empleadoID 0 means all.
func (r *ventaRepo) ListRango(ctx context.Context, rango dto.RangoFechas, empleadoID uint) ([]model.Venta, error) {
	q := r.enRango(ctx, rango)
	if empleadoID != 0 {
		q = q.Where("empleado_id = ?", empleadoID)
	}
	var ventas []model.Venta
	err := q.Order("created_at DESC, id DESC").Find(&ventas).Error
	return ventas, err
}

func (r *ventaRepo) Resumen(ctx context.Context, rango dto.RangoFechas) (ResumenVentas, error) {
	var res ResumenVentas
	err := r.enRango(ctx, rango).
		Select(`COALESCE(SUM(precio_venta * cantidad), 0) AS total,
			COALESCE(SUM((precio_venta - precio) * cantidad), 0) AS ganancia,
			COALESCE(SUM(cantidad), 0) AS cantidad`).
		Scan(&res).Error
	return res, err
}

// Rankings start from an empty slice so a range without sales yields [].
func (r *ventaRepo) RankingEmpleados(ctx context.Context, rango dto.RangoFechas) ([]dto.EmpleadoVentasResponse, error) {
	out := []dto.EmpleadoVentasResponse{}
	err := r.enRango(ctx, rango).
		Select("empleado_id AS id, MAX(empleado) AS name, SUM(precio_venta * cantidad) AS total_sales").
		Group("empleado_id").
		Order("total_sales DESC, id ASC").
		Scan(&out).Error
	return out, err
}

func (r *ventaRepo) RankingProductos(ctx context.Context, rango dto.RangoFechas) ([]dto.ProductoVentasResponse, error) {
	out := []dto.ProductoVentasResponse{}
	err := r.enRango(ctx, rango).
		Select("producto_id AS id, MAX(producto) AS name, SUM(cantidad) AS quantity_sold").
		Group("producto_id").
		Order("quantity_sold DESC, id ASC").
		Scan(&out).Error
	return out, err
}

func (r *ventaRepo) VendidoPorEmpleado(ctx context.Context, empleadoID uint) ([]inventario.Movimiento, error) {
	return sumarPorProducto(r.db.WithContext(ctx).Model(&model.Venta{}), empleadoID)
}

func (r *ventaRepo) VendidoProductoTx(tx *gorm.DB, empleadoID, productoID uint) (int, error) {
	return sumarCantidad(tx.Model(&model.Venta{}), empleadoID, productoID)
}

func (r *ventaRepo) enRango(ctx context.Context, rango dto.RangoFechas) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("created_at >= ? AND created_at < ?", rango.Desde, rango.Hasta)
}
