package model

import "time"

// Empleado is a staff member who receives stock and is credited with sales.
// Deleting an employee only clears Activo so past assignments and sales keep
// resolving.
type Empleado struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"not null"`
	Telefono  string `gorm:"not null"`
	Activo    bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
