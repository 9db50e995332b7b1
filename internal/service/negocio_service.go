package service

import (
	"context"
	"errors"
	"strings"

	"eskimo/internal/dto"
	"eskimo/internal/model"
	"eskimo/internal/repository"

	"gorm.io/gorm"
)

type NegocioService interface {
	Obtener(ctx context.Context) (*dto.NegocioResponse, error)
	Actualizar(ctx context.Context, req dto.NegocioRequest) (*dto.NegocioResponse, error)
}

type negocioService struct {
	repo          repository.NegocioRepository
	nombreDefecto string
}

func NewNegocioService(repo repository.NegocioRepository, nombreDefecto string) NegocioService {
	return &negocioService{repo: repo, nombreDefecto: nombreDefecto}
}

// Obtener returns the saved settings, or the configured business name when
// nothing was saved yet.
func (s *negocioService) Obtener(ctx context.Context) (*dto.NegocioResponse, error) {
	n, err := s.repo.Get(ctx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &dto.NegocioResponse{Name: s.nombreDefecto}, nil
	}
	if err != nil {
		return nil, err
	}
	resp := negocioToResponse(n)
	return &resp, nil
}

func (s *negocioService) Actualizar(ctx context.Context, req dto.NegocioRequest) (*dto.NegocioResponse, error) {
	n := &model.Negocio{
		ID:           model.NegocioID,
		Nombre:       strings.TrimSpace(req.Name),
		Direccion:    strings.TrimSpace(req.Address),
		Telefono:     strings.TrimSpace(req.Phone),
		HoraApertura: req.OpeningTime,
		HoraCierre:   req.ClosingTime,
	}
	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	resp := negocioToResponse(n)
	return &resp, nil
}

func negocioToResponse(n *model.Negocio) dto.NegocioResponse {
	return dto.NegocioResponse{
		Name:        n.Nombre,
		Address:     n.Direccion,
		Phone:       n.Telefono,
		OpeningTime: n.HoraApertura,
		ClosingTime: n.HoraCierre,
	}
}
