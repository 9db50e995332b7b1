package service

import (
	"context"
	"fmt"

	"eskimo/internal/dto"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VentaService interface {
	Registrar(ctx context.Context, req []dto.VentaRequest) ([]dto.VentaResponse, error)
	Listar(ctx context.Context, rango dto.RangoFechas) ([]dto.VentaResponse, error)
	PorEmpleado(ctx context.Context, empleadoID uint, rango dto.RangoFechas) ([]dto.VentaEmpleadoResponse, error)
}

type ventaService struct {
	repo           repository.VentaRepository
	asignacionRepo repository.AsignacionRepository
	productoRepo   repository.ProductoRepository
	empleadoRepo   repository.EmpleadoRepository
}

func NewVentaService(
	repo repository.VentaRepository,
	asignacionRepo repository.AsignacionRepository,
	productoRepo repository.ProductoRepository,
	empleadoRepo repository.EmpleadoRepository,
) VentaService {
	return &ventaService{
		repo:           repo,
		asignacionRepo: asignacionRepo,
		productoRepo:   productoRepo,
		empleadoRepo:   empleadoRepo,
	}
}

type claveInventario struct{ empleadoID, productoID uint }

// Registrar stores a checkout batch atomically. Each line is checked against
// the employee's inventory (assigned − sold), counting earlier lines of the
// same batch. Warehouse stock is not touched: those units already left it on
// assignment.
func (s *ventaService) Registrar(ctx context.Context, req []dto.VentaRequest) ([]dto.VentaResponse, error) {
	if len(req) == 0 {
		return nil, fmt.Errorf("%w: la venta no tiene lineas", ErrValidacion)
	}

	empleados := make(map[uint]*model.Empleado)
	for _, linea := range req {
		if _, ok := empleados[linea.EmpleadoID]; ok {
			continue
		}
		e, err := s.empleadoRepo.FindByID(ctx, linea.EmpleadoID)
		if err != nil {
			return nil, noEncontrado(err, "empleado", linea.EmpleadoID)
		}
		empleados[e.ID] = e
	}

	ventas := make([]model.Venta, 0, len(req))
	err := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		enLote := make(map[claveInventario]int)
		for _, linea := range req {
			p, err := s.productoRepo.FindByIDForUpdateTx(tx, linea.ProductoID)
			if err != nil {
				return noEncontrado(err, "producto", linea.ProductoID)
			}
			emp := empleados[linea.EmpleadoID]
			clave := claveInventario{emp.ID, p.ID}

			asignado, err := s.asignacionRepo.AsignadoProductoTx(tx, emp.ID, p.ID)
			if err != nil {
				return err
			}
			vendido, err := s.repo.VendidoProductoTx(tx, emp.ID, p.ID)
			if err != nil {
				return err
			}
			disponible := asignado - vendido - enLote[clave]
			if disponible < linea.Cantidad {
				return fmt.Errorf("%w: %s tiene %d unidades de %s, solicitado %d",
					ErrStockInsuficiente, emp.Nombre, disponible, p.Nombre, linea.Cantidad)
			}

			precioVenta := p.PrecioVenta
			if linea.PrecioVenta != nil {
				if !linea.PrecioVenta.IsPositive() {
					return fmt.Errorf("%w: precioVenta de %s debe ser mayor a cero", ErrValidacion, p.Nombre)
				}
				precioVenta = *linea.PrecioVenta
			}

			v := model.Venta{
				ProductoID:  p.ID,
				Producto:    p.Nombre,
				EmpleadoID:  emp.ID,
				Empleado:    emp.Nombre,
				Cantidad:    linea.Cantidad,
				Precio:      p.Precio,
				PrecioVenta: precioVenta,
			}
			if err := s.repo.CreateTx(tx, &v); err != nil {
				return err
			}
			enLote[clave] += linea.Cantidad
			ventas = append(ventas, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Int("lineas", len(ventas)).Msg("venta registrada")

	resp := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		resp[i] = ventaToResponse(&ventas[i])
	}
	return resp, nil
}

func (s *ventaService) Listar(ctx context.Context, rango dto.RangoFechas) ([]dto.VentaResponse, error) {
	ventas, err := s.repo.ListRango(ctx, rango, 0)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaResponse, len(ventas))
	for i := range ventas {
		resp[i] = ventaToResponse(&ventas[i])
	}
	return resp, nil
}

func (s *ventaService) PorEmpleado(ctx context.Context, empleadoID uint, rango dto.RangoFechas) ([]dto.VentaEmpleadoResponse, error) {
	ventas, err := s.repo.ListRango(ctx, rango, empleadoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VentaEmpleadoResponse, len(ventas))
	for i, v := range ventas {
		resp[i] = dto.VentaEmpleadoResponse{
			ID:          v.ID,
			Producto:    v.Producto,
			Cantidad:    v.Cantidad,
			TotalAmount: v.Total(),
			SaleDate:    v.CreatedAt,
		}
	}
	return resp, nil
}

func ventaToResponse(v *model.Venta) dto.VentaResponse {
	return dto.VentaResponse{
		ID:          v.ID,
		ProductoID:  v.ProductoID,
		Producto:    v.Producto,
		EmpleadoID:  v.EmpleadoID,
		Empleado:    v.Empleado,
		Cantidad:    v.Cantidad,
		Precio:      v.Precio,
		PrecioVenta: v.PrecioVenta,
		CreatedAt:   v.CreatedAt,
	}
}
