package handler

import (
	"net/http"

	"eskimo/internal/dto"
	"eskimo/internal/service"

	"github.com/gin-gonic/gin"
)

// BillingHandler is public: the client polls it before login to decide
// whether to show the activation screen.
type BillingHandler struct{ svc service.BillingService }

func NewBillingHandler(svc service.BillingService) *BillingHandler {
	return &BillingHandler{svc: svc}
}

// Check godoc
// @Summary Estado de la suscripcion
// @Tags billing
// @Produce json
// @Success 200 {object} dto.EstadoSuscripcionResponse
// @Router /api/billings/check [get]
func (h *BillingHandler) Check(c *gin.Context) {
	resp, err := h.svc.Estado(c.Request.Context())
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BillingHandler) Activar(c *gin.Context) {
	var req dto.ActivarSuscripcionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Activar(c.Request.Context(), req)
	if err != nil {
		responderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
