package dto

import (
	"errors"
	"time"
)

const formatoFecha = "2006-01-02"

// ErrRangoInvalido is returned when a date is malformed or the range is inverted.
var ErrRangoInvalido = errors.New("rango de fechas invalido")

// RangoFechasQuery is bound from ?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD.
type RangoFechasQuery struct {
	StartDate string `form:"startDate" json:"startDate"`
	EndDate   string `form:"endDate"   json:"endDate"`
}

// RangoFechas is a half-open interval [Desde, Hasta).
type RangoFechas struct {
	Desde time.Time
	Hasta time.Time
}

// Resolver turns the query into a concrete range. An empty start means today
// and an empty end means tomorrow; the end day is inclusive.
func (q RangoFechasQuery) Resolver(now time.Time) (RangoFechas, error) {
	loc := now.Location()
	hoy := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	desde := hoy
	if q.StartDate != "" {
		d, err := time.ParseInLocation(formatoFecha, q.StartDate, loc)
		if err != nil {
			return RangoFechas{}, ErrRangoInvalido
		}
		desde = d
	}

	hasta := hoy.AddDate(0, 0, 1)
	if q.EndDate != "" {
		h, err := time.ParseInLocation(formatoFecha, q.EndDate, loc)
		if err != nil {
			return RangoFechas{}, ErrRangoInvalido
		}
		hasta = h
	}
	if desde.After(hasta) {
		return RangoFechas{}, ErrRangoInvalido
	}
	return RangoFechas{Desde: desde, Hasta: hasta.AddDate(0, 0, 1)}, nil
}
