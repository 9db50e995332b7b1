package service

import (
	"context"
	"fmt"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"gorm.io/gorm"
)

type CompraService interface {
	Listar(ctx context.Context, rango dto.RangoFechas) ([]dto.CompraResponse, error)
	Crear(ctx context.Context, req dto.CrearCompraRequest, usuario string) (*dto.CompraResponse, error)
	Eliminar(ctx context.Context, id uint) error
	Resumen(ctx context.Context, filter dto.ProductoFilter) ([]dto.ExistenciaResponse, error)
}

type compraService struct {
	repo  repository.CompraRepository
	stock stockTx
	now   func() time.Time
}

func NewCompraService(
	repo repository.CompraRepository,
	productoRepo repository.ProductoRepository,
	movRepo repository.MovimientoStockRepository,
) CompraService {
	return &compraService{
		repo:  repo,
		stock: stockTx{productos: productoRepo, movimientos: movRepo},
		now:   time.Now,
	}
}

func (s *compraService) Listar(ctx context.Context, rango dto.RangoFechas) ([]dto.CompraResponse, error) {
	compras, err := s.repo.ListRango(ctx, rango)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CompraResponse, len(compras))
	for i := range compras {
		resp[i] = compraToResponse(&compras[i])
	}
	return resp, nil
}

// Crear records a lot. The stored quantity is Cantidad × Unidades, negative
// for a subtract. An add also refreshes the product's prices and packaging.
func (s *compraService) Crear(ctx context.Context, req dto.CrearCompraRequest, usuario string) (*dto.CompraResponse, error) {
	unidades := req.Unidades
	if unidades == 0 {
		unidades = 1
	}
	delta := req.Cantidad * unidades
	tipoMov := model.MovCompra
	if req.Tipo == dto.CompraSubtract {
		delta = -delta
		tipoMov = model.MovBaja
	}
	responsable := req.Responsable
	if responsable == "" {
		responsable = usuario
	}

	var c model.Compra
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.stock.bloquear(tx, req.ProductoID)
		if err != nil {
			return err
		}
		presentacion := req.Presentacion
		if presentacion == "" {
			presentacion = p.Presentacion
		}
		c = model.Compra{
			ProductoID:   p.ID,
			Producto:     p.Nombre,
			Cantidad:     delta,
			Precio:       req.Precio,
			PrecioVenta:  req.PrecioVenta,
			Presentacion: presentacion,
			Unidades:     unidades,
			Responsable:  responsable,
			Fecha:        s.now(),
		}
		if err := s.repo.CreateTx(tx, &c); err != nil {
			return err
		}
		ref := c.ID
		if err := s.stock.mover(tx, p, delta, tipoMov, fmt.Sprintf("Compra registrada por %s", responsable), &ref); err != nil {
			return err
		}
		if delta > 0 {
			return s.stock.productos.UpdateDatosCompraTx(tx, p.ID, &c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := compraToResponse(&c)
	return &resp, nil
}

// Eliminar removes a lot and reverts its stock delta.
func (s *compraService) Eliminar(ctx context.Context, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		c, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return noEncontrado(err, "compra", id)
		}
		p, err := s.stock.bloquear(tx, c.ProductoID)
		if err != nil {
			return err
		}
		ref := c.ID
		if err := s.stock.mover(tx, p, -c.Cantidad, model.MovAnulacion, "Compra eliminada", &ref); err != nil {
			return err
		}
		if err := s.repo.DeleteTx(tx, c.ID); err != nil {
			return noEncontrado(err, "compra", id)
		}
		return nil
	})
}

// Resumen groups all lots into running stock levels per product.
func (s *compraService) Resumen(ctx context.Context, filter dto.ProductoFilter) ([]dto.ExistenciaResponse, error) {
	if !inventario.FiltroValido(filter.Nivel) {
		return nil, fmt.Errorf("%w: nivel %q", ErrValidacion, filter.Nivel)
	}
	lotes, err := s.repo.Lotes(ctx)
	if err != nil {
		return nil, err
	}
	existencias := inventario.FiltrarExistencias(inventario.AgruparCompras(lotes), filter.Search, filter.Nivel)
	resp := make([]dto.ExistenciaResponse, len(existencias))
	for i, e := range existencias {
		resp[i] = dto.ExistenciaResponse{
			ID:          e.ProductoID,
			Producto:    e.Producto,
			Cantidad:    e.Cantidad,
			Precio:      e.Precio,
			PrecioVenta: e.PrecioVenta,
			Fecha:       e.Fecha,
			Nivel:       e.Nivel,
		}
	}
	return resp, nil
}

func compraToResponse(c *model.Compra) dto.CompraResponse {
	return dto.CompraResponse{
		ID:           c.ID,
		ProductoID:   c.ProductoID,
		Producto:     c.Producto,
		Cantidad:     c.Cantidad,
		Precio:       c.Precio,
		PrecioVenta:  c.PrecioVenta,
		Presentacion: c.Presentacion,
		Unidades:     c.Unidades,
		Responsable:  c.Responsable,
		Fecha:        c.Fecha,
	}
}
