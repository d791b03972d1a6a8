package service

import (
	"errors"
	"fmt"
)

// Errores de dominio de la caja. Los handlers los traducen a códigos HTTP:
// conflicto → 409, no encontrado → 404, validación → 422.
//
// "No encontrado" mezcla a propósito ausencia, turno de otra caja y estado
// equivocado: la respuesta nunca revela si un turno existe en otra tienda.
var (
	ErrTurnoAbiertoExiste = errors.New("ya existe un turno abierto para esta caja — ciérrelo antes de abrir otro")
	ErrTurnoNoEncontrado  = errors.New("turno no encontrado, ya cerrado o no pertenece a este cajero")
	ErrTurnoNoCerrado     = errors.New("debe cerrar el turno antes de generar el corte Z")
	ErrCorteNoEncontrado  = errors.New("corte no encontrado para este turno")
	ErrCorteZExiste       = errors.New("el turno ya tiene un corte Z")
	ErrCajaOcupada        = errors.New("hay otra operación de caja en curso — intente de nuevo")
	ErrVentaSinTurno      = errors.New("no hay un turno abierto para registrar la venta")
)

// ErrValidacion señala un monto malformado o fuera de rango antes de
// persistir nada. Detalle nombra el campo y el valor o umbral ofensivo.
type ErrValidacion struct {
	Campo   string
	Detalle string
}

func (e *ErrValidacion) Error() string {
	return fmt.Sprintf("validación de %s: %s", e.Campo, e.Detalle)
}

func errValidacion(campo, formato string, args ...interface{}) *ErrValidacion {
	return &ErrValidacion{Campo: campo, Detalle: fmt.Sprintf(formato, args...)}
}
