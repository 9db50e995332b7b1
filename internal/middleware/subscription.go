package middleware

import (
	"context"
	"net/http"

	"eskimo/internal/apierror"
	"eskimo/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// EstadoSuscripcion reports the current subscription status.
type EstadoSuscripcion interface {
	Estado(ctx context.Context) (*dto.EstadoSuscripcionResponse, error)
}

// RequireSuscripcion answers 402 on every route behind it while the
// subscription is expired.
func RequireSuscripcion(svc EstadoSuscripcion) gin.HandlerFunc {
	return func(c *gin.Context) {
		estado, err := svc.Estado(c.Request.Context())
		if err != nil {
			log.Error().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("subscription check failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New("Error interno del servidor"))
			return
		}
		if estado.Msg != dto.SuscripcionActiva {
			c.AbortWithStatusJSON(http.StatusPaymentRequired, apierror.NewSubscription(estado.Msg))
			return
		}
		c.Next()
	}
}
