package service

import (
	"context"
	"testing"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAsignacionSvc(m *memStore) AsignacionService {
	return NewAsignacionService(stubAsignacionRepo{m}, stubEmpleadoRepo{m}, stubProductoRepo{m}, stubVentaRepo{m}, stubMovimientoRepo{m})
}

func TestCrearAsignacion_DescuentaBodega(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 20, "8", "15")
	e := m.seedEmpleado("Ana")
	svc := newAsignacionSvc(m)

	resp, err := svc.Crear(context.Background(), dto.CrearAsignacionRequest{EmpleadoID: e.ID, ProductoID: p.ID, Cantidad: 7})
	require.NoError(t, err)

	assert.Equal(t, "Ana", resp.Empleado)
	assert.Equal(t, "Paleta", resp.Producto)
	assert.Equal(t, 13, m.productos[p.ID].Cantidad)

	require.Len(t, m.movimientos, 1)
	assert.Equal(t, model.MovAsignacion, m.movimientos[0].Tipo)
	assert.Equal(t, -7, m.movimientos[0].Cantidad)
	require.NotNil(t, m.movimientos[0].ReferenciaID)
	assert.Equal(t, resp.ID, *m.movimientos[0].ReferenciaID)
}

func TestCrearAsignacion_StockInsuficiente(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 3, "8", "15")
	e := m.seedEmpleado("Ana")
	svc := newAsignacionSvc(m)

	_, err := svc.Crear(context.Background(), dto.CrearAsignacionRequest{EmpleadoID: e.ID, ProductoID: p.ID, Cantidad: 4})
	assert.ErrorIs(t, err, ErrStockInsuficiente)
	assert.Equal(t, 3, m.productos[p.ID].Cantidad)
	assert.Empty(t, m.asignaciones)
}

func TestCrearAsignacion_NoEncontrados(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 3, "8", "15")
	e := m.seedEmpleado("Ana")
	svc := newAsignacionSvc(m)
	ctx := context.Background()

	_, err := svc.Crear(ctx, dto.CrearAsignacionRequest{EmpleadoID: 999, ProductoID: p.ID, Cantidad: 1})
	assert.EqualError(t, err, "empleado 999 no encontrado")

	_, err = svc.Crear(ctx, dto.CrearAsignacionRequest{EmpleadoID: e.ID, ProductoID: 998, Cantidad: 1})
	assert.EqualError(t, err, "producto 998 no encontrado")
}

func TestEliminarAsignacion_DevuelveStock(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	e := m.seedEmpleado("Ana")
	a := m.seedAsignacion(e, p, 5)
	svc := newAsignacionSvc(m)

	require.NoError(t, svc.Eliminar(context.Background(), a.ID))

	assert.Equal(t, 15, m.productos[p.ID].Cantidad)
	assert.Empty(t, m.asignaciones)
	require.Len(t, m.movimientos, 1)
	assert.Equal(t, model.MovDevolucion, m.movimientos[0].Tipo)
}

func TestEliminarAsignacion_ConVentasEsConflicto(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	e := m.seedEmpleado("Ana")
	a := m.seedAsignacion(e, p, 5)
	m.seedAsignacion(e, p, 2)
	m.seedVenta(e, p, 3, "15", time.Now())
	svc := newAsignacionSvc(m)

	// 7 assigned, 3 sold: removing 5 would leave 2 < 3
	err := svc.Eliminar(context.Background(), a.ID)
	assert.ErrorIs(t, err, ErrConflicto)
	assert.Equal(t, 10, m.productos[p.ID].Cantidad)
	assert.Len(t, m.asignaciones, 2)
}

func TestListarAsignaciones_PorEmpleado(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	ana := m.seedEmpleado("Ana")
	luis := m.seedEmpleado("Luis")
	m.seedAsignacion(ana, p, 1)
	m.seedAsignacion(luis, p, 2)
	m.seedAsignacion(ana, p, 3)
	svc := newAsignacionSvc(m)

	lista, err := svc.Listar(context.Background(), dto.AsignacionFilter{EmpleadoID: ana.ID, Limit: 50})
	require.NoError(t, err)
	require.Len(t, lista, 2)
	assert.Equal(t, 3, lista[0].Cantidad)
}

// Sales read the employee inventory under the product row lock, so deleting
// an assignment must take that lock before it reads what was sold.
type productoConTraza struct {
	stubProductoRepo
	traza *[]string
}

func (r productoConTraza) FindByIDForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	*r.traza = append(*r.traza, "bloquear")
	return r.stubProductoRepo.FindByIDForUpdateTx(tx, id)
}

type ventaConTraza struct {
	stubVentaRepo
	traza *[]string
}

func (r ventaConTraza) VendidoProductoTx(tx *gorm.DB, empleadoID, productoID uint) (int, error) {
	*r.traza = append(*r.traza, "vendido")
	return r.stubVentaRepo.VendidoProductoTx(tx, empleadoID, productoID)
}

func TestEliminarAsignacion_BloqueaProductoAntesDeContarVentas(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	e := m.seedEmpleado("Ana")
	a := m.seedAsignacion(e, p, 5)
	var traza []string
	svc := NewAsignacionService(stubAsignacionRepo{m}, stubEmpleadoRepo{m},
		productoConTraza{stubProductoRepo{m}, &traza}, ventaConTraza{stubVentaRepo{m}, &traza}, stubMovimientoRepo{m})

	require.NoError(t, svc.Eliminar(context.Background(), a.ID))
	require.NotEmpty(t, traza)
	assert.Equal(t, []string{"bloquear", "vendido"}, traza)
	assert.Equal(t, 15, m.productos[p.ID].Cantidad)
}

func TestEliminarAsignacion_DosVecesEsNoEncontrado(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	e := m.seedEmpleado("Ana")
	a := m.seedAsignacion(e, p, 5)
	svc := newAsignacionSvc(m)
	ctx := context.Background()

	require.NoError(t, svc.Eliminar(ctx, a.ID))
	assert.ErrorIs(t, svc.Eliminar(ctx, a.ID), ErrNoEncontrado)
	assert.Equal(t, 15, m.productos[p.ID].Cantidad)
}
