package model

import "time"

// NegocioID is the primary key of the only business settings row.
const NegocioID = 1

// Negocio holds the business settings shown on receipts and reports.
type Negocio struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"not null"`
	Direccion    string
	Telefono     string
	HoraApertura string `gorm:"type:varchar(5)"`
	HoraCierre   string `gorm:"type:varchar(5)"`
	UpdatedAt    time.Time
}

func (Negocio) TableName() string { return "negocio" }
