package handler

import (
	"fmt"
	"net/http"

	"eskimo/internal/apierror"
	"eskimo/internal/dto"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

type VentasHandler struct {
	svc      service.VentaService
	reportes service.ReporteService
}

func NewVentasHandler(svc service.VentaService, reportes service.ReporteService) *VentasHandler {
	return &VentasHandler{svc: svc, reportes: reportes}
}

// Registrar godoc
// @Summary Registrar ventas (checkout)
// @Description Todas las lineas se registran en una sola transaccion.
// @Tags ventas
// @Accept json
// @Produce json
// @Param body body []dto.VentaRequest true "Lineas de venta"
// @Success 201 {array} dto.VentaResponse
// @Failure 409 {object} apierror.APIError "stock insuficiente"
// @Failure 422 {object} apierror.ValidationError
// @Router /api/ventas [post]
func (h *VentasHandler) Registrar(c *gin.Context) {
	var req []dto.VentaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	if len(req) == 0 {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("La venta no tiene lineas"))
		return
	}
	for i := range req {
		if !validar(c, &req[i]) {
			return
		}
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *VentasHandler) Listar(c *gin.Context) {
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), rango)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorEmpleado answers GET /api/ventas/:id where id is the employee.
func (h *VentasHandler) PorEmpleado(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.svc.PorEmpleado(c.Request.Context(), id, rango)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VentasHandler) Resumen(c *gin.Context) {
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.reportes.Resumen(c.Request.Context(), rango)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Ranking is the employee ranking by sold amount.
func (h *VentasHandler) Ranking(c *gin.Context) {
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	resp, err := h.reportes.RankingEmpleados(c.Request.Context(), rango)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exportar godoc
// @Summary Descargar reporte de ventas
// @Tags ventas
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param format query string false "xlsx | pdf" default(xlsx)
// @Param startDate query string false "YYYY-MM-DD"
// @Param endDate query string false "YYYY-MM-DD"
// @Success 200 {file} binary
// @Router /api/ventas/reporte/export [get]
func (h *VentasHandler) Exportar(c *gin.Context) {
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	archivo, err := h.reportes.Exportar(c.Request.Context(), rango, c.Query("format"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", archivo.Nombre))
	c.Data(http.StatusOK, archivo.ContentType, archivo.Datos)
}

// Enviar queues a PDF report for e-mail delivery.
func (h *VentasHandler) Enviar(c *gin.Context) {
	var req dto.EnviarReporteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.reportes.Enviar(c.Request.Context(), req); err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "queued"})
}
