package model

import "time"

// SuscripcionID is the primary key of the only subscription row.
const SuscripcionID = 1

// Suscripcion gates the business endpoints. There is a single row.
type Suscripcion struct {
	ID        uint      `gorm:"primaryKey"`
	ExpiraEn  time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

// Activa reports whether the subscription is valid at instant now.
func (s Suscripcion) Activa(now time.Time) bool {
	return now.Before(s.ExpiraEn)
}

// TokenActivacion records a redeemed activation code; JTI is unique so a
// code can be used only once.
type TokenActivacion struct {
	ID      uint      `gorm:"primaryKey"`
	JTI     string    `gorm:"column:jti;uniqueIndex;not null"`
	Dias    int       `gorm:"not null"`
	UsadoEn time.Time `gorm:"not null"`
}

func (TokenActivacion) TableName() string { return "tokens_activacion" }

func (Suscripcion) TableName() string { return "suscripcion" }
