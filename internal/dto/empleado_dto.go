package dto

import "time"

type EmpleadoRequest struct {
	Nombre   string `json:"nombre"   validate:"required,min=1,max=100"`
	Telefono string `json:"telefono" validate:"required,min=1,max=30"`
}

type EmpleadoFilter struct {
	Search string `form:"search"`
}

type EmpleadoResponse struct {
	ID        uint      `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	CreatedAt time.Time `json:"createdAt"`
}
