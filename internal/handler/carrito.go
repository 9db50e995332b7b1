package handler

import (
	"net/http"
	"strconv"

	"eskimo/internal/apierror"
	"eskimo/internal/dto"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

// CarritoHandler exposes the server-side cart. Carts are addressed by the
// opaque id returned on open.
type CarritoHandler struct{ svc service.CarritoService }

func NewCarritoHandler(svc service.CarritoService) *CarritoHandler {
	return &CarritoHandler{svc: svc}
}

func (h *CarritoHandler) Abrir(c *gin.Context) {
	var req dto.AbrirCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CarritoHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) CambiarEmpleado(c *gin.Context) {
	var req dto.AbrirCarritoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarEmpleado(c.Request.Context(), c.Param("id"), req.EmpleadoID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AgregarItem godoc
// @Summary Agregar producto al carrito
// @Tags carrito
// @Accept json
// @Produce json
// @Param id path string true "Carrito"
// @Param body body dto.AgregarItemRequest true "Item"
// @Success 200 {object} dto.CarritoResponse
// @Failure 409 {object} apierror.APIError "supera el inventario del empleado"
// @Router /api/carrito/{id}/items [post]
func (h *CarritoHandler) AgregarItem(c *gin.Context) {
	var req dto.AgregarItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AgregarItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CarritoHandler) QuitarItem(c *gin.Context) {
	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.QuitarItem(c.Request.Context(), c.Param("id"), itemID)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Checkout records every line as a sale and drops the cart.
func (h *CarritoHandler) Checkout(c *gin.Context) {
	resp, err := h.svc.Checkout(c.Request.Context(), c.Param("id"))
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CarritoHandler) Descartar(c *gin.Context) {
	if err := h.svc.Descartar(c.Request.Context(), c.Param("id")); err != nil {
		responderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
