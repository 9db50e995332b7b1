package handler

import (
	"net/http"

	"eskimo/internal/dto"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

type NegocioHandler struct{ svc service.NegocioService }

func NewNegocioHandler(svc service.NegocioService) *NegocioHandler {
	return &NegocioHandler{svc: svc}
}

func (h *NegocioHandler) Obtener(c *gin.Context) {
	resp, err := h.svc.Obtener(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *NegocioHandler) Actualizar(c *gin.Context) {
	var req dto.NegocioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
