package dto

import "time"

type MovimientoFilter struct {
	ProductoID uint   `form:"productoId"`
	Tipo       string `form:"tipo"`
	Page       int    `form:"page,default=1"    validate:"min=1"`
	Limit      int    `form:"limit,default=100" validate:"min=1,max=500"`
}

type MovimientoResponse struct {
	ID            uint      `json:"id"`
	ProductoID    uint      `json:"productoId"`
	Tipo          string    `json:"tipo"`
	Cantidad      int       `json:"cantidad"`
	StockAnterior int       `json:"stockAnterior"`
	StockNuevo    int       `json:"stockNuevo"`
	Motivo        string    `json:"motivo"`
	ReferenciaID  *uint     `json:"referenciaId"`
	CreatedAt     time.Time `json:"createdAt"`
}

type MovimientoListResponse struct {
	Data  []MovimientoResponse `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}
