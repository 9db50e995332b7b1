package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// memStore backs every stub repository so services that share tables (stock,
// assignments, sales) see each other's writes. DB() returns nil on every stub,
// which makes runTx call fn(nil).
type memStore struct {
	seq          uint
	productos    map[uint]*model.Producto
	empleados    map[uint]*model.Empleado
	asignaciones map[uint]*model.Asignacion
	compras      map[uint]*model.Compra
	ventas       []model.Venta
	movimientos  []model.MovimientoStock
	usuarios     map[uint]*model.Usuario
	suscripcion  *model.Suscripcion
	tokens       map[string]bool
	negocio      *model.Negocio
}

func newMemStore() *memStore {
	return &memStore{
		productos:    make(map[uint]*model.Producto),
		empleados:    make(map[uint]*model.Empleado),
		asignaciones: make(map[uint]*model.Asignacion),
		compras:      make(map[uint]*model.Compra),
		usuarios:     make(map[uint]*model.Usuario),
		tokens:       make(map[string]bool),
	}
}

func (m *memStore) nextID() uint {
	m.seq++
	return m.seq
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedProducto stores a product with warehouse stock.
func (m *memStore) seedProducto(nombre string, cantidad int, precio, precioVenta string) *model.Producto {
	p := &model.Producto{
		ID:           m.nextID(),
		Nombre:       nombre,
		Cantidad:     cantidad,
		Precio:       d(precio),
		PrecioVenta:  d(precioVenta),
		Presentacion: model.PresentacionUnidad,
		Unidades:     1,
	}
	m.productos[p.ID] = p
	return p
}

func (m *memStore) seedEmpleado(nombre string) *model.Empleado {
	e := &model.Empleado{ID: m.nextID(), Nombre: nombre, Telefono: "555-0100", Activo: true}
	m.empleados[e.ID] = e
	return e
}

func (m *memStore) seedAsignacion(e *model.Empleado, p *model.Producto, cantidad int) *model.Asignacion {
	a := &model.Asignacion{
		ID: m.nextID(), EmpleadoID: e.ID, Empleado: e.Nombre,
		ProductoID: p.ID, Producto: p.Nombre, Cantidad: cantidad,
	}
	m.asignaciones[a.ID] = a
	return a
}

func (m *memStore) seedVenta(e *model.Empleado, p *model.Producto, cantidad int, precioVenta string, at time.Time) {
	m.ventas = append(m.ventas, model.Venta{
		ID: m.nextID(), ProductoID: p.ID, Producto: p.Nombre, EmpleadoID: e.ID, Empleado: e.Nombre,
		Cantidad: cantidad, Precio: p.Precio, PrecioVenta: d(precioVenta), CreatedAt: at,
	})
}

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct{ *memStore }

var _ repository.ProductoRepository = stubProductoRepo{}

func (r stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	return r.CreateTx(nil, p)
}

func (r stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r stubProductoRepo) FindByNombre(_ context.Context, nombre string) (*model.Producto, error) {
	for _, p := range r.productos {
		if strings.EqualFold(p.Nombre, nombre) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubProductoRepo) List(_ context.Context, filter dto.ProductoFilter) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if filter.Search == "" || strings.Contains(strings.ToLower(p.Nombre), strings.ToLower(filter.Search)) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r stubProductoRepo) ListBajoStock(_ context.Context, umbral int) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if p.Cantidad <= umbral {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	for _, otro := range r.productos {
		if otro.ID != p.ID && strings.EqualFold(otro.Nombre, p.Nombre) {
			return gorm.ErrDuplicatedKey
		}
	}
	actual, ok := r.productos[p.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	cp.Cantidad = actual.Cantidad
	r.productos[p.ID] = &cp
	return nil
}

func (r stubProductoRepo) CreateTx(_ *gorm.DB, p *model.Producto) error {
	for _, otro := range r.productos {
		if strings.EqualFold(otro.Nombre, p.Nombre) {
			return gorm.ErrDuplicatedKey
		}
	}
	p.ID = r.nextID()
	cp := *p
	r.productos[p.ID] = &cp
	return nil
}

func (r stubProductoRepo) FindByIDForUpdateTx(_ *gorm.DB, id uint) (*model.Producto, error) {
	return r.FindByID(context.Background(), id)
}

func (r stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Cantidad += delta
	return nil
}

func (r stubProductoRepo) UpdateDatosCompraTx(_ *gorm.DB, id uint, c *model.Compra) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Precio = c.Precio
	p.PrecioVenta = c.PrecioVenta
	p.Presentacion = c.Presentacion
	p.Unidades = c.Unidades
	return nil
}

func (r stubProductoRepo) DB() *gorm.DB { return nil }

// ── In-memory EmpleadoRepository stub ────────────────────────────────────────

type stubEmpleadoRepo struct{ *memStore }

var _ repository.EmpleadoRepository = stubEmpleadoRepo{}

func (r stubEmpleadoRepo) Create(_ context.Context, e *model.Empleado) error {
	e.ID = r.nextID()
	e.Activo = true
	cp := *e
	r.empleados[e.ID] = &cp
	return nil
}

func (r stubEmpleadoRepo) FindByID(_ context.Context, id uint) (*model.Empleado, error) {
	e, ok := r.empleados[id]
	if !ok || !e.Activo {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	return &cp, nil
}

func (r stubEmpleadoRepo) List(_ context.Context, search string) ([]model.Empleado, error) {
	var out []model.Empleado
	for _, e := range r.empleados {
		if !e.Activo {
			continue
		}
		if search == "" || strings.Contains(strings.ToLower(e.Nombre), strings.ToLower(search)) {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (r stubEmpleadoRepo) Update(_ context.Context, e *model.Empleado) error {
	cp := *e
	r.empleados[e.ID] = &cp
	return nil
}

func (r stubEmpleadoRepo) SoftDelete(_ context.Context, id uint) error {
	e, ok := r.empleados[id]
	if !ok || !e.Activo {
		return gorm.ErrRecordNotFound
	}
	e.Activo = false
	return nil
}

// ── In-memory AsignacionRepository stub ──────────────────────────────────────

type stubAsignacionRepo struct{ *memStore }

var _ repository.AsignacionRepository = stubAsignacionRepo{}

func (r stubAsignacionRepo) List(_ context.Context, filter dto.AsignacionFilter) ([]model.Asignacion, error) {
	var out []model.Asignacion
	for _, a := range r.asignaciones {
		if filter.EmpleadoID == 0 || a.EmpleadoID == filter.EmpleadoID {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r stubAsignacionRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Asignacion, error) {
	a, ok := r.asignaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r stubAsignacionRepo) CreateTx(_ *gorm.DB, a *model.Asignacion) error {
	a.ID = r.nextID()
	cp := *a
	r.asignaciones[a.ID] = &cp
	return nil
}

func (r stubAsignacionRepo) DeleteTx(_ *gorm.DB, id uint) error {
	if _, ok := r.asignaciones[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.asignaciones, id)
	return nil
}

func (r stubAsignacionRepo) AsignadoPorEmpleado(_ context.Context, empleadoID uint) ([]inventario.Movimiento, error) {
	totales := make(map[uint]*inventario.Movimiento)
	for _, a := range r.asignaciones {
		if a.EmpleadoID != empleadoID {
			continue
		}
		m, ok := totales[a.ProductoID]
		if !ok {
			m = &inventario.Movimiento{ProductoID: a.ProductoID, Producto: a.Producto}
			totales[a.ProductoID] = m
		}
		m.Cantidad += a.Cantidad
	}
	out := make([]inventario.Movimiento, 0, len(totales))
	for _, m := range totales {
		out = append(out, *m)
	}
	return out, nil
}

func (r stubAsignacionRepo) AsignadoProductoTx(_ *gorm.DB, empleadoID, productoID uint) (int, error) {
	total := 0
	for _, a := range r.asignaciones {
		if a.EmpleadoID == empleadoID && a.ProductoID == productoID {
			total += a.Cantidad
		}
	}
	return total, nil
}

func (r stubAsignacionRepo) DB() *gorm.DB { return nil }

// ── In-memory CompraRepository stub ──────────────────────────────────────────

type stubCompraRepo struct{ *memStore }

var _ repository.CompraRepository = stubCompraRepo{}

func (r stubCompraRepo) ListRango(_ context.Context, rango dto.RangoFechas) ([]model.Compra, error) {
	var out []model.Compra
	for _, c := range r.compras {
		if !c.Fecha.Before(rango.Desde) && c.Fecha.Before(rango.Hasta) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

func (r stubCompraRepo) Lotes(_ context.Context) ([]inventario.Lote, error) {
	var out []inventario.Lote
	for _, c := range r.compras {
		out = append(out, inventario.Lote{
			ProductoID: c.ProductoID, Producto: c.Producto, Cantidad: c.Cantidad,
			Precio: c.Precio, PrecioVenta: c.PrecioVenta, Fecha: c.Fecha,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.Before(out[j].Fecha) })
	return out, nil
}

func (r stubCompraRepo) FindByIDTx(_ *gorm.DB, id uint) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	c.ID = r.nextID()
	cp := *c
	r.compras[c.ID] = &cp
	return nil
}

func (r stubCompraRepo) DeleteTx(_ *gorm.DB, id uint) error {
	if _, ok := r.compras[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.compras, id)
	return nil
}

func (r stubCompraRepo) DB() *gorm.DB { return nil }

// ── In-memory VentaRepository stub ───────────────────────────────────────────

type stubVentaRepo struct{ *memStore }

var _ repository.VentaRepository = stubVentaRepo{}

func (r stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	v.ID = r.nextID()
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now()
	}
	r.ventas = append(r.ventas, *v)
	return nil
}

func (r stubVentaRepo) enRango(rango dto.RangoFechas) []model.Venta {
	var out []model.Venta
	for _, v := range r.ventas {
		if !v.CreatedAt.Before(rango.Desde) && v.CreatedAt.Before(rango.Hasta) {
			out = append(out, v)
		}
	}
	return out
}

func (r stubVentaRepo) ListRango(_ context.Context, rango dto.RangoFechas, empleadoID uint) ([]model.Venta, error) {
	var out []model.Venta
	for _, v := range r.enRango(rango) {
		if empleadoID == 0 || v.EmpleadoID == empleadoID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r stubVentaRepo) Resumen(_ context.Context, rango dto.RangoFechas) (repository.ResumenVentas, error) {
	res := repository.ResumenVentas{Total: decimal.Zero, Ganancia: decimal.Zero}
	for _, v := range r.enRango(rango) {
		res.Total = res.Total.Add(v.Total())
		res.Ganancia = res.Ganancia.Add(v.Ganancia())
		res.Cantidad += v.Cantidad
	}
	return res, nil
}

func (r stubVentaRepo) RankingEmpleados(_ context.Context, rango dto.RangoFechas) ([]dto.EmpleadoVentasResponse, error) {
	totales := make(map[uint]*dto.EmpleadoVentasResponse)
	for _, v := range r.enRango(rango) {
		e, ok := totales[v.EmpleadoID]
		if !ok {
			e = &dto.EmpleadoVentasResponse{ID: v.EmpleadoID, Name: v.Empleado, TotalSales: decimal.Zero}
			totales[v.EmpleadoID] = e
		}
		e.TotalSales = e.TotalSales.Add(v.Total())
	}
	out := make([]dto.EmpleadoVentasResponse, 0, len(totales))
	for _, e := range totales {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalSales.GreaterThan(out[j].TotalSales) })
	return out, nil
}

func (r stubVentaRepo) RankingProductos(_ context.Context, rango dto.RangoFechas) ([]dto.ProductoVentasResponse, error) {
	totales := make(map[uint]*dto.ProductoVentasResponse)
	for _, v := range r.enRango(rango) {
		p, ok := totales[v.ProductoID]
		if !ok {
			p = &dto.ProductoVentasResponse{ID: v.ProductoID, Name: v.Producto}
			totales[v.ProductoID] = p
		}
		p.QuantitySold += v.Cantidad
	}
	out := make([]dto.ProductoVentasResponse, 0, len(totales))
	for _, p := range totales {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].QuantitySold > out[j].QuantitySold })
	return out, nil
}

func (r stubVentaRepo) VendidoPorEmpleado(_ context.Context, empleadoID uint) ([]inventario.Movimiento, error) {
	totales := make(map[uint]*inventario.Movimiento)
	for _, v := range r.ventas {
		if v.EmpleadoID != empleadoID {
			continue
		}
		m, ok := totales[v.ProductoID]
		if !ok {
			m = &inventario.Movimiento{ProductoID: v.ProductoID, Producto: v.Producto}
			totales[v.ProductoID] = m
		}
		m.Cantidad += v.Cantidad
	}
	out := make([]inventario.Movimiento, 0, len(totales))
	for _, m := range totales {
		out = append(out, *m)
	}
	return out, nil
}

func (r stubVentaRepo) VendidoProductoTx(_ *gorm.DB, empleadoID, productoID uint) (int, error) {
	total := 0
	for _, v := range r.ventas {
		if v.EmpleadoID == empleadoID && v.ProductoID == productoID {
			total += v.Cantidad
		}
	}
	return total, nil
}

func (r stubVentaRepo) DB() *gorm.DB { return nil }

// ── In-memory MovimientoStockRepository stub ─────────────────────────────────

type stubMovimientoRepo struct{ *memStore }

var _ repository.MovimientoStockRepository = stubMovimientoRepo{}

func (r stubMovimientoRepo) CreateTx(_ *gorm.DB, m *model.MovimientoStock) error {
	m.ID = r.nextID()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r stubMovimientoRepo) List(_ context.Context, filter dto.MovimientoFilter) ([]model.MovimientoStock, int64, error) {
	var out []model.MovimientoStock
	for _, m := range r.movimientos {
		if filter.ProductoID != 0 && m.ProductoID != filter.ProductoID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

// ── In-memory UsuarioRepository stub ─────────────────────────────────────────

type stubUsuarioRepo struct{ *memStore }

var _ repository.UsuarioRepository = stubUsuarioRepo{}

func (r stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	for _, otro := range r.usuarios {
		if strings.EqualFold(otro.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	u.ID = r.nextID()
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r stubUsuarioRepo) FindByEmail(_ context.Context, email string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if strings.EqualFold(u.Email, email) && u.Activo {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	for _, otro := range r.usuarios {
		if otro.ID != u.ID && strings.EqualFold(otro.Email, u.Email) {
			return gorm.ErrDuplicatedKey
		}
	}
	cp := *u
	r.usuarios[u.ID] = &cp
	return nil
}

func (r stubUsuarioRepo) SoftDelete(_ context.Context, id uint) error {
	u, ok := r.usuarios[id]
	if !ok || !u.Activo {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

// ── In-memory SuscripcionRepository stub ─────────────────────────────────────

type stubSuscripcionRepo struct {
	*memStore
	gets int
}

var _ repository.SuscripcionRepository = &stubSuscripcionRepo{}

func (r *stubSuscripcionRepo) Get(_ context.Context) (*model.Suscripcion, error) {
	r.gets++
	if r.suscripcion == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.suscripcion
	return &cp, nil
}

func (r *stubSuscripcionRepo) GetForUpdateTx(_ *gorm.DB) (*model.Suscripcion, error) {
	if r.suscripcion == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.suscripcion
	return &cp, nil
}

func (r *stubSuscripcionRepo) SaveTx(_ *gorm.DB, s *model.Suscripcion) error {
	cp := *s
	r.suscripcion = &cp
	return nil
}

func (r *stubSuscripcionRepo) InsertTokenTx(_ *gorm.DB, t *model.TokenActivacion) error {
	if r.tokens[t.JTI] {
		return gorm.ErrDuplicatedKey
	}
	r.tokens[t.JTI] = true
	return nil
}

func (r *stubSuscripcionRepo) EnsureTrial(_ context.Context, dias int, now time.Time) error {
	if r.suscripcion == nil {
		r.suscripcion = &model.Suscripcion{ID: model.SuscripcionID, ExpiraEn: now.AddDate(0, 0, dias)}
	}
	return nil
}

func (r *stubSuscripcionRepo) DB() *gorm.DB { return nil }

// ── In-memory NegocioRepository stub ─────────────────────────────────────────

type stubNegocioRepo struct{ *memStore }

var _ repository.NegocioRepository = stubNegocioRepo{}

func (r stubNegocioRepo) Get(_ context.Context) (*model.Negocio, error) {
	if r.negocio == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r.negocio
	return &cp, nil
}

func (r stubNegocioRepo) Save(_ context.Context, n *model.Negocio) error {
	cp := *n
	r.negocio = &cp
	return nil
}
