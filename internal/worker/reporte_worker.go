package worker

// reporte_worker.go
// Renders a sales report PDF for a date range and hands it to the email queue.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"eskimo/internal/dto"
	"eskimo/internal/infra"

	"github.com/rs/zerolog/log"
)

// ReporteJobPayload is the job envelope sent to QueueReporte.
type ReporteJobPayload struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Email     string `json:"email"`
}

// ReporteBuilder gathers the report data; the report service implements it.
type ReporteBuilder interface {
	Construir(ctx context.Context, rango dto.RangoFechas) (*dto.ReporteVentas, error)
}

type ReporteWorker struct {
	builder     ReporteBuilder
	dispatcher  *Dispatcher
	storagePath string
	now         func() time.Time
}

func NewReporteWorker(builder ReporteBuilder, dispatcher *Dispatcher, storagePath string) *ReporteWorker {
	return &ReporteWorker{builder: builder, dispatcher: dispatcher, storagePath: storagePath, now: time.Now}
}

// Process handles a single report job:
//  1. Resolve the date range
//  2. Build the report data
//  3. Render the PDF to storagePath
//  4. Enqueue the email carrying it
func (w *ReporteWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload ReporteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("reporte_worker: invalid payload")
		return nil
	}
	rango, err := dto.RangoFechasQuery{StartDate: payload.StartDate, EndDate: payload.EndDate}.Resolver(w.now())
	if err != nil {
		log.Error().Err(err).Str("start", payload.StartDate).Str("end", payload.EndDate).Msg("reporte_worker: invalid range")
		return nil
	}

	rep, err := w.builder.Construir(ctx, rango)
	if err != nil {
		return fmt.Errorf("reporte_worker: build: %w", err)
	}
	pdfPath, err := infra.GuardarReportePDF(rep, w.storagePath)
	if err != nil {
		return err
	}
	log.Info().Str("pdf", pdfPath).Msg("reporte_worker: PDF generated")

	hasta := rango.Hasta.AddDate(0, 0, -1)
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.Email,
		Subject: fmt.Sprintf("%s: reporte de ventas %s a %s", rep.Negocio, rango.Desde.Format("02/01/2006"), hasta.Format("02/01/2006")),
		Body: fmt.Sprintf("Adjunto el reporte de ventas.\nTotal vendido: $%s\nGanancia: $%s\nUnidades: %d",
			rep.Resumen.Total.StringFixed(2), rep.Resumen.Ganancia.StringFixed(2), rep.Resumen.Cantidad),
		PDFPath: pdfPath,
	})
}
