package service

import (
	"context"
	"testing"

	"eskimo/internal/dto"
	"eskimo/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProductoSvc(m *memStore) ProductoService {
	return NewProductoService(stubProductoRepo{m}, stubMovimientoRepo{m})
}

func TestCrearProducto_StockEnUnidades(t *testing.T) {
	m := newMemStore()
	svc := newProductoSvc(m)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Producto: "Paleta fresa", Precio: d("8"), PrecioVenta: d("15"),
		Cantidad: 3, Presentacion: model.PresentacionCaja, Unidades: 12,
	})
	require.NoError(t, err)

	assert.Equal(t, 36, resp.Cantidad)
	assert.Equal(t, "normal", resp.Nivel)
	assert.Equal(t, 36, m.productos[resp.ID].Cantidad)

	require.Len(t, m.movimientos, 1)
	mov := m.movimientos[0]
	assert.Equal(t, model.MovAlta, mov.Tipo)
	assert.Equal(t, 0, mov.StockAnterior)
	assert.Equal(t, 36, mov.StockNuevo)
}

func TestCrearProducto_DefaultsPresentacion(t *testing.T) {
	svc := newProductoSvc(newMemStore())

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Producto: "Cono", Precio: d("5"), PrecioVenta: d("9"), Cantidad: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PresentacionUnidad, resp.Presentacion)
	assert.Equal(t, 1, resp.Unidades)
	assert.Equal(t, "poco", resp.Nivel)
}

func TestCrearProducto_NombreDuplicado(t *testing.T) {
	m := newMemStore()
	m.seedProducto("Paleta fresa", 10, "8", "15")
	svc := newProductoSvc(m)

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Producto: "PALETA FRESA", Precio: d("8"), PrecioVenta: d("15"), Cantidad: 1,
	})
	assert.ErrorIs(t, err, ErrConflicto)
}

func TestListarProductos_FiltroNivel(t *testing.T) {
	m := newMemStore()
	m.seedProducto("A", 20, "1", "2")
	m.seedProducto("B", 8, "1", "2")
	m.seedProducto("C", 2, "1", "2")
	svc := newProductoSvc(m)
	ctx := context.Background()

	todos, err := svc.Listar(ctx, dto.ProductoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	medio, err := svc.Listar(ctx, dto.ProductoFilter{Nivel: "medium"})
	require.NoError(t, err)
	require.Len(t, medio, 1)
	assert.Equal(t, "B", medio[0].Producto)

	poco, err := svc.Listar(ctx, dto.ProductoFilter{Nivel: "poco"})
	require.NoError(t, err)
	require.Len(t, poco, 1)
	assert.Equal(t, "C", poco[0].Producto)

	_, err = svc.Listar(ctx, dto.ProductoFilter{Nivel: "mucho"})
	assert.ErrorIs(t, err, ErrValidacion)
}

func TestActualizarProducto(t *testing.T) {
	m := newMemStore()
	p := m.seedProducto("Paleta", 10, "8", "15")
	m.seedProducto("Cono", 10, "5", "9")
	svc := newProductoSvc(m)
	ctx := context.Background()

	nuevo := d("17")
	resp, err := svc.Actualizar(ctx, p.ID, dto.ActualizarProductoRequest{PrecioVenta: &nuevo})
	require.NoError(t, err)
	assert.True(t, resp.PrecioVenta.Equal(d("17")))
	assert.Equal(t, 10, resp.Cantidad)

	cero := d("0")
	_, err = svc.Actualizar(ctx, p.ID, dto.ActualizarProductoRequest{Precio: &cero})
	assert.ErrorIs(t, err, ErrValidacion)

	nombre := "cono"
	_, err = svc.Actualizar(ctx, p.ID, dto.ActualizarProductoRequest{Producto: &nombre})
	assert.ErrorIs(t, err, ErrConflicto)

	_, err = svc.Actualizar(ctx, 999, dto.ActualizarProductoRequest{PrecioVenta: &nuevo})
	assert.ErrorIs(t, err, ErrNoEncontrado)
	assert.EqualError(t, err, "producto 999 no encontrado")
}
