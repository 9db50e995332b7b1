package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors. Handlers map them to HTTP status codes; the wrapped
// message is shown to the client.
var (
	ErrNoEncontrado       = errors.New("no encontrado")
	ErrStockInsuficiente  = errors.New("stock insuficiente")
	ErrConflicto          = errors.New("conflicto")
	ErrCredenciales       = errors.New("credenciales invalidas")
	ErrValidacion         = errors.New("datos invalidos")
	ErrSuscripcionVencida = errors.New("suscripcion vencida")
)

// noEncontrado translates gorm.ErrRecordNotFound into ErrNoEncontrado,
// naming the missing entity. Other errors pass through.
func noEncontrado(err error, entidad string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d %w", entidad, id, ErrNoEncontrado)
	}
	return err
}

func esDuplicado(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
