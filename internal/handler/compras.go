package handler

import (
	"net/http"
	"time"

	"eskimo/internal/apierror"
	"eskimo/internal/dto"
	"eskimo/internal/middleware"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

type ComprasHandler struct{ svc service.CompraService }

func NewComprasHandler(svc service.CompraService) *ComprasHandler {
	return &ComprasHandler{svc: svc}
}

// Listar answers GET /api/compras?startDate&endDate.
func (h *ComprasHandler) Listar(c *gin.Context) {
	rango, ok := rangoFechas(c)
	if !ok {
		return
	}
	h.listar(c, rango)
}

// ListarPorBody answers POST /api/compras {initialDate, finalDate}.
func (h *ComprasHandler) ListarPorBody(c *gin.Context) {
	var req dto.ComprasRangoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	rango, err := req.Query().Resolver(time.Now())
	if err != nil {
		responderError(c, err)
		return
	}
	h.listar(c, rango)
}

func (h *ComprasHandler) listar(c *gin.Context, rango dto.RangoFechas) {
	resp, err := h.svc.Listar(c.Request.Context(), rango)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Registrar un lote de compra
// @Tags compras
// @Accept json
// @Produce json
// @Param body body dto.CrearCompraRequest true "Lote"
// @Success 201 {object} dto.CompraResponse
// @Failure 409 {object} apierror.APIError "stock insuficiente para un subtract"
// @Router /api/compras/create [post]
func (h *ComprasHandler) Crear(c *gin.Context) {
	var req dto.CrearCompraRequest
	if !bindAndValidate(c, &req) {
		return
	}
	usuario := ""
	if claims := middleware.GetClaims(c); claims != nil {
		usuario = claims.Nombre
	}
	resp, err := h.svc.Crear(c.Request.Context(), req, usuario)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ComprasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ComprasHandler) Resumen(c *gin.Context) {
	var filter dto.ProductoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
