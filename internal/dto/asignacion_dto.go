package dto

import "time"

// CrearAsignacionRequest is the body of POST /api/inventarioempleado. The
// client also sends the names; the server resolves them from the ids.
type CrearAsignacionRequest struct {
	EmpleadoID uint `json:"empleadoId" validate:"required"`
	ProductoID uint `json:"productoId" validate:"required"`
	Cantidad   int  `json:"cantidad"   validate:"gt=0"`
}

type AsignacionFilter struct {
	EmpleadoID uint `form:"empleadoId"`
	Limit      int  `form:"limit,default=50" validate:"min=1,max=500"`
}

type AsignacionResponse struct {
	ID         uint      `json:"id"`
	EmpleadoID uint      `json:"empleadoId"`
	Empleado   string    `json:"empleado"`
	ProductoID uint      `json:"productoId"`
	Producto   string    `json:"producto"`
	Cantidad   int       `json:"cantidad"`
	CreatedAt  time.Time `json:"createdAt"`
}
