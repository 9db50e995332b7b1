package dto

import "time"

// Estados de suscripcion
const (
	SuscripcionActiva  = "active"
	SuscripcionVencida = "expired"
)

type ActivarSuscripcionRequest struct {
	Token string `json:"token" validate:"required"`
}

type EstadoSuscripcionResponse struct {
	Msg       string    `json:"msg"`
	ExpiresAt time.Time `json:"expiresAt"`
}
