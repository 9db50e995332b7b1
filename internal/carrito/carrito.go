// Package carrito implements the point-of-sale cart. A cart belongs to one
// employee and reserves units from a snapshot of that employee's inventory:
// adding an item decrements the snapshot, removing it restocks it.
package carrito

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrSinEmpleado       = errors.New("el carrito no tiene empleado asignado")
	ErrEmpleadoBloqueado = errors.New("no se puede cambiar el empleado con productos en el carrito")
	ErrCantidadInvalida  = errors.New("la cantidad debe ser mayor a cero")
	ErrPrecioInvalido    = errors.New("el precio debe ser mayor a cero")
	ErrStockInsuficiente = errors.New("stock insuficiente del empleado")
	ErrItemNoEncontrado  = errors.New("item no encontrado en el carrito")
	ErrCarritoVacio      = errors.New("el carrito esta vacio")
)

// Item is one cart line.
type Item struct {
	ID         int64           `json:"id"`
	ProductoID uint            `json:"productId"`
	Producto   string          `json:"productName"`
	Cantidad   int             `json:"quantity"`
	Precio     decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
}

// Linea is a checkout line handed to the sales service.
type Linea struct {
	ProductoID  uint
	Producto    string
	EmpleadoID  uint
	Empleado    string
	Cantidad    int
	PrecioVenta decimal.Decimal
}

// Carrito is serialised as JSON into Redis between requests.
type Carrito struct {
	ID         string       `json:"id"`
	EmpleadoID uint         `json:"empleadoId"`
	Empleado   string       `json:"empleado"`
	Items      []Item       `json:"items"`
	Disponible map[uint]int `json:"disponible"`
	Secuencia  int64        `json:"seq"`
}

// New returns an empty cart.
func New(id string) *Carrito {
	return &Carrito{ID: id, Items: []Item{}}
}

// AsignarEmpleado binds the cart to an employee and takes a snapshot of the
// units that employee can sell. Rebinding to the same employee refreshes the
// snapshot minus what is already in the cart.
func (c *Carrito) AsignarEmpleado(empleadoID uint, nombre string, disponible map[uint]int) error {
	if len(c.Items) > 0 && empleadoID != c.EmpleadoID {
		return ErrEmpleadoBloqueado
	}
	snap := make(map[uint]int, len(disponible))
	for id, n := range disponible {
		snap[id] = n
	}
	for _, it := range c.Items {
		snap[it.ProductoID] -= it.Cantidad
	}
	c.EmpleadoID = empleadoID
	c.Empleado = nombre
	c.Disponible = snap
	return nil
}

// Agregar reserves cantidad units of a product at precio.
func (c *Carrito) Agregar(productoID uint, producto string, cantidad int, precio decimal.Decimal) (Item, error) {
	if c.EmpleadoID == 0 {
		return Item{}, ErrSinEmpleado
	}
	if cantidad <= 0 {
		return Item{}, ErrCantidadInvalida
	}
	if !precio.IsPositive() {
		return Item{}, ErrPrecioInvalido
	}
	if c.Disponible[productoID] < cantidad {
		return Item{}, ErrStockInsuficiente
	}

	c.Disponible[productoID] -= cantidad
	c.Secuencia++
	it := Item{
		ID:         c.Secuencia,
		ProductoID: productoID,
		Producto:   producto,
		Cantidad:   cantidad,
		Precio:     precio,
		Total:      precio.Mul(decimal.NewFromInt(int64(cantidad))),
	}
	c.Items = append(c.Items, it)
	return it, nil
}

// Quitar removes a line and gives its units back to the snapshot. Removing
// the last line releases the employee.
func (c *Carrito) Quitar(itemID int64) error {
	for i, it := range c.Items {
		if it.ID != itemID {
			continue
		}
		c.Disponible[it.ProductoID] += it.Cantidad
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		if len(c.Items) == 0 {
			c.liberar()
		}
		return nil
	}
	return ErrItemNoEncontrado
}

// Total is the sum of every line total.
func (c *Carrito) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Total)
	}
	return total
}

// Ventas builds the checkout payload.
func (c *Carrito) Ventas() ([]Linea, error) {
	if len(c.Items) == 0 {
		return nil, ErrCarritoVacio
	}
	out := make([]Linea, len(c.Items))
	for i, it := range c.Items {
		out[i] = Linea{
			ProductoID:  it.ProductoID,
			Producto:    it.Producto,
			EmpleadoID:  c.EmpleadoID,
			Empleado:    c.Empleado,
			Cantidad:    it.Cantidad,
			PrecioVenta: it.Precio,
		}
	}
	return out, nil
}

// Vaciar drops every line and releases the employee, as after a checkout.
func (c *Carrito) Vaciar() {
	c.Items = []Item{}
	c.liberar()
}

func (c *Carrito) liberar() {
	c.EmpleadoID = 0
	c.Empleado = ""
	c.Disponible = nil
}
