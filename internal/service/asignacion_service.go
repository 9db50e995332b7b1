package service

import (
	"context"
	"fmt"

	"eskimo/internal/dto"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"gorm.io/gorm"
)

type AsignacionService interface {
	Listar(ctx context.Context, filter dto.AsignacionFilter) ([]dto.AsignacionResponse, error)
	Crear(ctx context.Context, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type asignacionService struct {
	repo         repository.AsignacionRepository
	empleadoRepo repository.EmpleadoRepository
	ventaRepo    repository.VentaRepository
	stock        stockTx
}

func NewAsignacionService(
	repo repository.AsignacionRepository,
	empleadoRepo repository.EmpleadoRepository,
	productoRepo repository.ProductoRepository,
	ventaRepo repository.VentaRepository,
	movRepo repository.MovimientoStockRepository,
) AsignacionService {
	return &asignacionService{
		repo:         repo,
		empleadoRepo: empleadoRepo,
		ventaRepo:    ventaRepo,
		stock:        stockTx{productos: productoRepo, movimientos: movRepo},
	}
}

func (s *asignacionService) Listar(ctx context.Context, filter dto.AsignacionFilter) ([]dto.AsignacionResponse, error) {
	asignaciones, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.AsignacionResponse, len(asignaciones))
	for i := range asignaciones {
		resp[i] = asignacionToResponse(&asignaciones[i])
	}
	return resp, nil
}

// Crear moves Cantidad units from the warehouse to the employee in one
// transaction. Fails with ErrStockInsuficiente when the warehouse is short.
func (s *asignacionService) Crear(ctx context.Context, req dto.CrearAsignacionRequest) (*dto.AsignacionResponse, error) {
	emp, err := s.empleadoRepo.FindByID(ctx, req.EmpleadoID)
	if err != nil {
		return nil, noEncontrado(err, "empleado", req.EmpleadoID)
	}

	var a model.Asignacion
	err = runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		p, err := s.stock.bloquear(tx, req.ProductoID)
		if err != nil {
			return err
		}
		if p.Cantidad < req.Cantidad {
			return fmt.Errorf("%w de %s: disponible %d, solicitado %d", ErrStockInsuficiente, p.Nombre, p.Cantidad, req.Cantidad)
		}
		a = model.Asignacion{
			EmpleadoID: emp.ID,
			Empleado:   emp.Nombre,
			ProductoID: p.ID,
			Producto:   p.Nombre,
			Cantidad:   req.Cantidad,
		}
		if err := s.repo.CreateTx(tx, &a); err != nil {
			return err
		}
		ref := a.ID
		return s.stock.mover(tx, p, -req.Cantidad, model.MovAsignacion,
			fmt.Sprintf("Asignacion a %s", emp.Nombre), &ref)
	})
	if err != nil {
		return nil, err
	}
	resp := asignacionToResponse(&a)
	return &resp, nil
}

// Eliminar undoes an assignment and returns its units to the warehouse. It is
// refused when the employee already sold units that depend on it.
func (s *asignacionService) Eliminar(ctx context.Context, id uint) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		a, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			return noEncontrado(err, "asignacion", id)
		}
		// Sales lock the product row before reading the employee inventory,
		// so holding it here serializes the sold/assigned check with them.
		p, err := s.stock.bloquear(tx, a.ProductoID)
		if err != nil {
			return err
		}
		asignado, err := s.repo.AsignadoProductoTx(tx, a.EmpleadoID, a.ProductoID)
		if err != nil {
			return err
		}
		vendido, err := s.ventaRepo.VendidoProductoTx(tx, a.EmpleadoID, a.ProductoID)
		if err != nil {
			return err
		}
		if vendido > asignado-a.Cantidad {
			return fmt.Errorf("%w: %s ya vendio %d unidades de %s, quedarian %d asignadas",
				ErrConflicto, a.Empleado, vendido, a.Producto, asignado-a.Cantidad)
		}
		if err := s.repo.DeleteTx(tx, a.ID); err != nil {
			return noEncontrado(err, "asignacion", id)
		}
		ref := a.ID
		return s.stock.mover(tx, p, a.Cantidad, model.MovDevolucion,
			fmt.Sprintf("Devolucion de %s", a.Empleado), &ref)
	})
}

func asignacionToResponse(a *model.Asignacion) dto.AsignacionResponse {
	return dto.AsignacionResponse{
		ID:         a.ID,
		EmpleadoID: a.EmpleadoID,
		Empleado:   a.Empleado,
		ProductoID: a.ProductoID,
		Producto:   a.Producto,
		Cantidad:   a.Cantidad,
		CreatedAt:  a.CreatedAt,
	}
}
