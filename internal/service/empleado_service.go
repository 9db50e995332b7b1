package service

import (
	"context"

	"eskimo/internal/dto"
	"eskimo/internal/model"
	"eskimo/internal/repository"
)

type EmpleadoService interface {
	Listar(ctx context.Context, filter dto.EmpleadoFilter) ([]dto.EmpleadoResponse, error)
	Crear(ctx context.Context, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type empleadoService struct {
	repo repository.EmpleadoRepository
}

func NewEmpleadoService(repo repository.EmpleadoRepository) EmpleadoService {
	return &empleadoService{repo: repo}
}

func (s *empleadoService) Listar(ctx context.Context, filter dto.EmpleadoFilter) ([]dto.EmpleadoResponse, error) {
	empleados, err := s.repo.List(ctx, filter.Search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EmpleadoResponse, len(empleados))
	for i := range empleados {
		resp[i] = empleadoToResponse(&empleados[i])
	}
	return resp, nil
}

func (s *empleadoService) Crear(ctx context.Context, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e := &model.Empleado{Nombre: req.Nombre, Telefono: req.Telefono, Activo: true}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	resp := empleadoToResponse(e)
	return &resp, nil
}

func (s *empleadoService) Actualizar(ctx context.Context, id uint, req dto.EmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, noEncontrado(err, "empleado", id)
	}
	e.Nombre = req.Nombre
	e.Telefono = req.Telefono
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	resp := empleadoToResponse(e)
	return &resp, nil
}

// Eliminar deactivates the employee; assignments and sales keep pointing at it.
func (s *empleadoService) Eliminar(ctx context.Context, id uint) error {
	return noEncontrado(s.repo.SoftDelete(ctx, id), "empleado", id)
}

func empleadoToResponse(e *model.Empleado) dto.EmpleadoResponse {
	return dto.EmpleadoResponse{ID: e.ID, Nombre: e.Nombre, Telefono: e.Telefono, CreatedAt: e.CreatedAt}
}
