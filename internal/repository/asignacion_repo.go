package repository

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AsignacionRepository interface {
	List(ctx context.Context, filter dto.AsignacionFilter) ([]model.Asignacion, error)
	FindByIDTx(tx *gorm.DB, id uint) (*model.Asignacion, error)
	CreateTx(tx *gorm.DB, a *model.Asignacion) error
	DeleteTx(tx *gorm.DB, id uint) error

	// Totales asignados por producto a un empleado.
	AsignadoPorEmpleado(ctx context.Context, empleadoID uint) ([]inventario.Movimiento, error)
	AsignadoProductoTx(tx *gorm.DB, empleadoID, productoID uint) (int, error)

	DB() *gorm.DB
}

type asignacionRepo struct{ db *gorm.DB }

func NewAsignacionRepository(db *gorm.DB) AsignacionRepository { return &asignacionRepo{db: db} }

func (r *asignacionRepo) DB() *gorm.DB { return r.db }

func (r *asignacionRepo) List(ctx context.Context, filter dto.AsignacionFilter) ([]model.Asignacion, error) {
	limit := filter.Limit
	if limit < 1 || limit > 500 {
		limit = 50
	}
	q := r.db.WithContext(ctx).Model(&model.Asignacion{})
	if filter.EmpleadoID != 0 {
		q = q.Where("empleado_id = ?", filter.EmpleadoID)
	}
	var asignaciones []model.Asignacion
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&asignaciones).Error
	return asignaciones, err
}

// FindByIDTx locks the row until the transaction ends.
func (r *asignacionRepo) FindByIDTx(tx *gorm.DB, id uint) (*model.Asignacion, error) {
	var a model.Asignacion
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
	return &a, err
}

func (r *asignacionRepo) CreateTx(tx *gorm.DB, a *model.Asignacion) error {
	return tx.Create(a).Error
}

// DeleteTx reports gorm.ErrRecordNotFound when no row was removed.
func (r *asignacionRepo) DeleteTx(tx *gorm.DB, id uint) error {
	res := tx.Delete(&model.Asignacion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *asignacionRepo) AsignadoPorEmpleado(ctx context.Context, empleadoID uint) ([]inventario.Movimiento, error) {
	return sumarPorProducto(r.db.WithContext(ctx).Model(&model.Asignacion{}), empleadoID)
}

func (r *asignacionRepo) AsignadoProductoTx(tx *gorm.DB, empleadoID, productoID uint) (int, error) {
	return sumarCantidad(tx.Model(&model.Asignacion{}), empleadoID, productoID)
}

// sumarPorProducto groups an employee's rows of an assignment-like table
// (inventario_empleado or ventas) into per-product unit totals.
func sumarPorProducto(q *gorm.DB, empleadoID uint) ([]inventario.Movimiento, error) {
	var out []inventario.Movimiento
	err := q.Select("producto_id, MAX(producto) AS producto, SUM(cantidad) AS cantidad").
		Where("empleado_id = ?", empleadoID).
		Group("producto_id").
		Scan(&out).Error
	return out, err
}

func sumarCantidad(q *gorm.DB, empleadoID, productoID uint) (int, error) {
	var total int
	err := q.Select("COALESCE(SUM(cantidad), 0)").
		Where("empleado_id = ? AND producto_id = ?", empleadoID, productoID).
		Scan(&total).Error
	return total, err
}
