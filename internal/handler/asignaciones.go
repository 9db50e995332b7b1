package handler

import (
	"net/http"

	"eskimo/internal/dto"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

// AsignacionesHandler serves /api/inventarioempleado: stock handed from the
// warehouse to an employee.
type AsignacionesHandler struct{ svc service.AsignacionService }

func NewAsignacionesHandler(svc service.AsignacionService) *AsignacionesHandler {
	return &AsignacionesHandler{svc: svc}
}

func (h *AsignacionesHandler) Listar(c *gin.Context) {
	var filter dto.AsignacionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Crear godoc
// @Summary Asignar stock a un empleado
// @Tags inventario
// @Accept json
// @Produce json
// @Param body body dto.CrearAsignacionRequest true "Asignacion"
// @Success 201 {object} dto.AsignacionResponse
// @Failure 409 {object} apierror.APIError "stock insuficiente"
// @Router /api/inventarioempleado [post]
func (h *AsignacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearAsignacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AsignacionesHandler) Eliminar(c *gin.Context) {
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
