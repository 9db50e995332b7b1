package inventario

import "sort"

// Movimiento is a quantity of a product moved to (assignment) or out of
// (sale) an employee's hands.
type Movimiento struct {
	ProductoID uint
	Producto   string
	Cantidad   int
}

// Item is one row of an employee's inventory.
type Item struct {
	ProductoID uint
	Producto   string
	Cantidad   int
}

// InventarioEmpleado returns, per product, assigned units minus sold units.
// Products with nothing left are omitted. Rows are sorted by product name.
func InventarioEmpleado(asignado, vendido []Movimiento) []Item {
	saldo := Saldos(asignado, vendido)
	nombres := make(map[uint]string)
	for _, m := range asignado {
		nombres[m.ProductoID] = m.Producto
	}
	out := make([]Item, 0, len(saldo))
	for id, c := range saldo {
		if c <= 0 {
			continue
		}
		out = append(out, Item{ProductoID: id, Producto: nombres[id], Cantidad: c})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Producto == out[b].Producto {
			return out[a].ProductoID < out[b].ProductoID
		}
		return out[a].Producto < out[b].Producto
	})
	return out
}

// Saldos returns assigned minus sold per product id, including products
// whose balance is zero or negative.
func Saldos(asignado, vendido []Movimiento) map[uint]int {
	saldo := make(map[uint]int)
	for _, m := range asignado {
		saldo[m.ProductoID] += m.Cantidad
	}
	for _, m := range vendido {
		saldo[m.ProductoID] -= m.Cantidad
	}
	return saldo
}
