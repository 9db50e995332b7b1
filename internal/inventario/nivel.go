// Package inventario holds the stock reconciliation rules shared by the
// services: stock level buckets, grouping of purchase lots into running stock
// and the per-employee inventory derived from assignments and sales.
package inventario

import "strings"

// Niveles de stock
const (
	NivelNormal = "normal"
	NivelMedio  = "medio"
	NivelPoco   = "poco"
)

// Nivel classifies a stock quantity: more than 10 is normal, 6 to 10 is
// medio, 5 or less is poco.
func Nivel(cantidad int) string {
	switch {
	case cantidad > 10:
		return NivelNormal
	case cantidad > 5:
		return NivelMedio
	default:
		return NivelPoco
	}
}

// CoincideNivel reports whether cantidad passes the level filter. Empty and
// "all" match everything; "medium" and "low" are accepted as aliases.
func CoincideNivel(filtro string, cantidad int) bool {
	switch strings.ToLower(strings.TrimSpace(filtro)) {
	case "", "all":
		return true
	case NivelNormal:
		return Nivel(cantidad) == NivelNormal
	case NivelMedio, "medium":
		return Nivel(cantidad) == NivelMedio
	case NivelPoco, "low":
		return Nivel(cantidad) == NivelPoco
	default:
		return false
	}
}

// FiltroValido reports whether filtro is a known level filter token.
func FiltroValido(filtro string) bool {
	switch strings.ToLower(strings.TrimSpace(filtro)) {
	case "", "all", NivelNormal, NivelMedio, "medium", NivelPoco, "low":
		return true
	}
	return false
}

// CoincideBusqueda is the case-insensitive substring match used by every
// search box.
func CoincideBusqueda(texto, busqueda string) bool {
	if busqueda == "" {
		return true
	}
	return strings.Contains(strings.ToLower(texto), strings.ToLower(strings.TrimSpace(busqueda)))
}
