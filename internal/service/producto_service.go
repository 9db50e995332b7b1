package service

import (
	"context"
	"errors"
	"fmt"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"gorm.io/gorm"
)

type ProductoService interface {
	Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error)
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
}

type productoService struct {
	repo  repository.ProductoRepository
	stock stockTx
}

func NewProductoService(repo repository.ProductoRepository, movRepo repository.MovimientoStockRepository) ProductoService {
	return &productoService{repo: repo, stock: stockTx{productos: repo, movimientos: movRepo}}
}

func (s *productoService) Listar(ctx context.Context, filter dto.ProductoFilter) ([]dto.ProductoResponse, error) {
	if !inventario.FiltroValido(filter.Nivel) {
		return nil, fmt.Errorf("%w: nivel %q", ErrValidacion, filter.Nivel)
	}
	productos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		if inventario.CoincideNivel(filter.Nivel, productos[i].Cantidad) {
			resp = append(resp, productoToResponse(&productos[i]))
		}
	}
	return resp, nil
}

// Crear stores Cantidad packages of Unidades units each as warehouse stock.
func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByNombre(ctx, req.Producto); err == nil {
		return nil, fmt.Errorf("%w: ya existe un producto llamado %q", ErrConflicto, req.Producto)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	unidades := req.Unidades
	if unidades == 0 {
		unidades = 1
	}
	presentacion := req.Presentacion
	if presentacion == "" {
		presentacion = model.PresentacionUnidad
	}
	p := &model.Producto{
		Nombre:       req.Producto,
		Precio:       req.Precio,
		PrecioVenta:  req.PrecioVenta,
		Presentacion: presentacion,
		Unidades:     unidades,
	}
	stockInicial := req.Cantidad * unidades

	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, p); err != nil {
			if esDuplicado(err) {
				return fmt.Errorf("%w: ya existe un producto llamado %q", ErrConflicto, req.Producto)
			}
			return err
		}
		return s.stock.mover(tx, p, stockInicial, model.MovAlta, "Alta de producto", nil)
	})
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

// Actualizar edits name, prices and packaging. Stock only moves through
// purchases and assignments.
func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "producto", id)
	}
	if req.Producto != nil && *req.Producto != p.Nombre {
		if otro, err := s.repo.FindByNombre(ctx, *req.Producto); err == nil && otro.ID != id {
			return nil, fmt.Errorf("%w: ya existe un producto llamado %q", ErrConflicto, *req.Producto)
		}
		p.Nombre = *req.Producto
	}
	if req.Precio != nil {
		if !req.Precio.IsPositive() {
			return nil, fmt.Errorf("%w: precio debe ser mayor a cero", ErrValidacion)
		}
		p.Precio = *req.Precio
	}
	if req.PrecioVenta != nil {
		if !req.PrecioVenta.IsPositive() {
			return nil, fmt.Errorf("%w: precioVenta debe ser mayor a cero", ErrValidacion)
		}
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.Presentacion != nil {
		p.Presentacion = *req.Presentacion
	}
	if req.Unidades != nil {
		p.Unidades = *req.Unidades
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if esDuplicado(err) {
			return nil, fmt.Errorf("%w: ya existe un producto llamado %q", ErrConflicto, p.Nombre)
		}
		return nil, err
	}
	resp := productoToResponse(p)
	return &resp, nil
}

func productoToResponse(p *model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:           p.ID,
		Producto:     p.Nombre,
		Precio:       p.Precio,
		PrecioVenta:  p.PrecioVenta,
		Cantidad:     p.Cantidad,
		Presentacion: p.Presentacion,
		Unidades:     p.Unidades,
		Nivel:        inventario.Nivel(p.Cantidad),
		CreatedAt:    p.CreatedAt,
	}
}
