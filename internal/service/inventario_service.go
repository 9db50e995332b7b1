package service

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/inventario"
	"eskimo/internal/repository"
)

// InventarioService answers stock questions that span several tables.
type InventarioService interface {
	// InventarioEmpleado lists what an employee can still sell.
	InventarioEmpleado(ctx context.Context, empleadoID uint) ([]dto.InventarioEmpleadoItem, error)
	// Disponible is the same data keyed by product id.
	Disponible(ctx context.Context, empleadoID uint) (map[uint]int, error)
	Movimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error)
}

type inventarioService struct {
	asignacionRepo repository.AsignacionRepository
	ventaRepo      repository.VentaRepository
	empleadoRepo   repository.EmpleadoRepository
	movRepo        repository.MovimientoStockRepository
}

func NewInventarioService(
	asignacionRepo repository.AsignacionRepository,
	ventaRepo repository.VentaRepository,
	empleadoRepo repository.EmpleadoRepository,
	movRepo repository.MovimientoStockRepository,
) InventarioService {
	return &inventarioService{
		asignacionRepo: asignacionRepo,
		ventaRepo:      ventaRepo,
		empleadoRepo:   empleadoRepo,
		movRepo:        movRepo,
	}
}

func (s *inventarioService) movimientosEmpleado(ctx context.Context, empleadoID uint) (asignado, vendido []inventario.Movimiento, err error) {
	if _, err := s.empleadoRepo.FindByID(ctx, empleadoID); err != nil {
		return nil, nil, noEncontrado(err, "empleado", empleadoID)
	}
	if asignado, err = s.asignacionRepo.AsignadoPorEmpleado(ctx, empleadoID); err != nil {
		return nil, nil, err
	}
	if vendido, err = s.ventaRepo.VendidoPorEmpleado(ctx, empleadoID); err != nil {
		return nil, nil, err
	}
	return asignado, vendido, nil
}

func (s *inventarioService) InventarioEmpleado(ctx context.Context, empleadoID uint) ([]dto.InventarioEmpleadoItem, error) {
	asignado, vendido, err := s.movimientosEmpleado(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	items := inventario.InventarioEmpleado(asignado, vendido)
	resp := make([]dto.InventarioEmpleadoItem, len(items))
	for i, it := range items {
		resp[i] = dto.InventarioEmpleadoItem{ID: it.ProductoID, Producto: it.Producto, Cantidad: it.Cantidad}
	}
	return resp, nil
}

func (s *inventarioService) Disponible(ctx context.Context, empleadoID uint) (map[uint]int, error) {
	asignado, vendido, err := s.movimientosEmpleado(ctx, empleadoID)
	if err != nil {
		return nil, err
	}
	return inventario.Saldos(asignado, vendido), nil
}

func (s *inventarioService) Movimientos(ctx context.Context, filter dto.MovimientoFilter) (*dto.MovimientoListResponse, error) {
	movs, total, err := s.movRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	data := make([]dto.MovimientoResponse, len(movs))
	for i, m := range movs {
		data[i] = dto.MovimientoResponse{
			ID:            m.ID,
			ProductoID:    m.ProductoID,
			Tipo:          m.Tipo,
			Cantidad:      m.Cantidad,
			StockAnterior: m.StockAnterior,
			StockNuevo:    m.StockNuevo,
			Motivo:        m.Motivo,
			ReferenciaID:  m.ReferenciaID,
			CreatedAt:     m.CreatedAt,
		}
	}
	return &dto.MovimientoListResponse{Data: data, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}
