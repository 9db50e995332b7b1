package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/infra"
	"eskimo/internal/repository"
	"eskimo/internal/worker"
)

// Export formats
const (
	FormatoXLSX = "xlsx"
	FormatoPDF  = "pdf"
)

// ReporteDispatcher enqueues report jobs; *worker.Dispatcher satisfies it.
type ReporteDispatcher interface {
	EnqueueReporte(ctx context.Context, payload worker.ReporteJobPayload) error
}

// Archivo is a rendered report ready to download.
type Archivo struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

type ReporteService interface {
	Resumen(ctx context.Context, rango dto.RangoFechas) (*dto.ResumenVentasResponse, error)
	RankingEmpleados(ctx context.Context, rango dto.RangoFechas) ([]dto.EmpleadoVentasResponse, error)
	RankingProductos(ctx context.Context, rango dto.RangoFechas) ([]dto.ProductoVentasResponse, error)
	// Construir gathers everything the PDF/XLSX renderers need.
	Construir(ctx context.Context, rango dto.RangoFechas) (*dto.ReporteVentas, error)
	Exportar(ctx context.Context, rango dto.RangoFechas, formato string) (*Archivo, error)
	// Enviar queues the PDF report to be emailed.
	Enviar(ctx context.Context, req dto.EnviarReporteRequest) error
}

type reporteService struct {
	ventaRepo     repository.VentaRepository
	negocioRepo   repository.NegocioRepository
	dispatcher    ReporteDispatcher
	nombreNegocio string
	now           func() time.Time
}

func NewReporteService(
	ventaRepo repository.VentaRepository,
	negocioRepo repository.NegocioRepository,
	dispatcher ReporteDispatcher,
	nombreNegocio string,
) ReporteService {
	return &reporteService{
		ventaRepo:     ventaRepo,
		negocioRepo:   negocioRepo,
		dispatcher:    dispatcher,
		nombreNegocio: nombreNegocio,
		now:           time.Now,
	}
}

func (s *reporteService) Resumen(ctx context.Context, rango dto.RangoFechas) (*dto.ResumenVentasResponse, error) {
	r, err := s.ventaRepo.Resumen(ctx, rango)
	if err != nil {
		return nil, err
	}
	return &dto.ResumenVentasResponse{Total: r.Total, Ganancia: r.Ganancia, Cantidad: r.Cantidad}, nil
}

func (s *reporteService) RankingEmpleados(ctx context.Context, rango dto.RangoFechas) ([]dto.EmpleadoVentasResponse, error) {
	return s.ventaRepo.RankingEmpleados(ctx, rango)
}

func (s *reporteService) RankingProductos(ctx context.Context, rango dto.RangoFechas) ([]dto.ProductoVentasResponse, error) {
	return s.ventaRepo.RankingProductos(ctx, rango)
}

func (s *reporteService) Construir(ctx context.Context, rango dto.RangoFechas) (*dto.ReporteVentas, error) {
	resumen, err := s.Resumen(ctx, rango)
	if err != nil {
		return nil, err
	}
	empleados, err := s.ventaRepo.RankingEmpleados(ctx, rango)
	if err != nil {
		return nil, err
	}
	productos, err := s.ventaRepo.RankingProductos(ctx, rango)
	if err != nil {
		return nil, err
	}
	ventas, err := s.ventaRepo.ListRango(ctx, rango, 0)
	if err != nil {
		return nil, err
	}

	rep := &dto.ReporteVentas{
		Negocio:   s.negocio(ctx),
		Desde:     rango.Desde,
		Hasta:     rango.Hasta,
		Resumen:   *resumen,
		Empleados: empleados,
		Productos: productos,
		Ventas:    make([]dto.VentaResponse, len(ventas)),
	}
	for i := range ventas {
		rep.Ventas[i] = ventaToResponse(&ventas[i])
	}
	return rep, nil
}

// negocio prefers the saved business name over the configured default.
func (s *reporteService) negocio(ctx context.Context) string {
	if s.negocioRepo != nil {
		if n, err := s.negocioRepo.Get(ctx); err == nil && n.Nombre != "" {
			return n.Nombre
		}
	}
	return s.nombreNegocio
}

func (s *reporteService) Exportar(ctx context.Context, rango dto.RangoFechas, formato string) (*Archivo, error) {
	if formato == "" {
		formato = FormatoXLSX
	}
	if formato != FormatoXLSX && formato != FormatoPDF {
		return nil, fmt.Errorf("%w: formato %q no soportado", ErrValidacion, formato)
	}

	rep, err := s.Construir(ctx, rango)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	archivo := &Archivo{
		Nombre: fmt.Sprintf("reporte_%s_%s.%s",
			rango.Desde.Format("20060102"), rango.Hasta.AddDate(0, 0, -1).Format("20060102"), formato),
	}
	switch formato {
	case FormatoPDF:
		err = infra.WriteReportePDF(&buf, rep)
		archivo.ContentType = "application/pdf"
	default:
		err = infra.WriteReporteXLSX(&buf, rep)
		archivo.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return nil, err
	}
	archivo.Datos = buf.Bytes()
	return archivo, nil
}

func (s *reporteService) Enviar(ctx context.Context, req dto.EnviarReporteRequest) error {
	if req.Email == "" {
		return fmt.Errorf("%w: email requerido", ErrValidacion)
	}
	if _, err := (dto.RangoFechasQuery{StartDate: req.StartDate, EndDate: req.EndDate}).Resolver(s.now()); err != nil {
		return fmt.Errorf("%w: %w", ErrValidacion, err)
	}
	if s.dispatcher == nil {
		return errors.New("reporte: cola de trabajos no disponible")
	}
	return s.dispatcher.EnqueueReporte(ctx, worker.ReporteJobPayload{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Email:     req.Email,
	})
}
