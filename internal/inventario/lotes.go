package inventario

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Lote is the subset of a purchase lot needed for grouping.
type Lote struct {
	ProductoID  uint
	Producto    string
	Cantidad    int
	Precio      decimal.Decimal
	PrecioVenta decimal.Decimal
	Fecha       time.Time
}

// Existencia is the running stock level of one product built from its lots.
type Existencia struct {
	ProductoID  uint
	Producto    string
	Cantidad    int
	Precio      decimal.Decimal
	PrecioVenta decimal.Decimal
	Fecha       time.Time
	Nivel       string
}

// AgruparCompras groups lots by product name. The quantity is the sum of all
// deltas; prices and date come from the most recent lot. The result is
// sorted by product name.
func AgruparCompras(lotes []Lote) []Existencia {
	idx := make(map[string]int, len(lotes))
	var out []Existencia
	for _, l := range lotes {
		i, ok := idx[l.Producto]
		if !ok {
			idx[l.Producto] = len(out)
			out = append(out, Existencia{
				ProductoID:  l.ProductoID,
				Producto:    l.Producto,
				Cantidad:    l.Cantidad,
				Precio:      l.Precio,
				PrecioVenta: l.PrecioVenta,
				Fecha:       l.Fecha,
			})
			continue
		}
		e := &out[i]
		e.Cantidad += l.Cantidad
		if l.Fecha.After(e.Fecha) {
			e.ProductoID = l.ProductoID
			e.Precio = l.Precio
			e.PrecioVenta = l.PrecioVenta
			e.Fecha = l.Fecha
		}
	}
	for i := range out {
		out[i].Nivel = Nivel(out[i].Cantidad)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Producto < out[b].Producto })
	return out
}

// FiltrarExistencias applies the search box and level filter.
func FiltrarExistencias(ex []Existencia, busqueda, nivel string) []Existencia {
	out := make([]Existencia, 0, len(ex))
	for _, e := range ex {
		if CoincideBusqueda(e.Producto, busqueda) && CoincideNivel(nivel, e.Cantidad) {
			out = append(out, e)
		}
	}
	return out
}
