package model

import "time"

// Asignacion hands Cantidad units of a product from the warehouse to an
// employee. Names are snapshotted so the listing survives renames.
type Asignacion struct {
	ID         uint   `gorm:"primaryKey"`
	EmpleadoID uint   `gorm:"not null;index"`
	Empleado   string `gorm:"not null"`
	ProductoID uint   `gorm:"not null;index"`
	Producto   string `gorm:"not null"`
	Cantidad   int    `gorm:"not null"`
	CreatedAt  time.Time
}

// TableName keeps the legacy endpoint name as the table name.
func (Asignacion) TableName() string { return "inventario_empleado" }
