// Package lifecycle contiene las reglas puras del ciclo de vida de una factura:
// estado efectivo (vencida derivada en lectura), transiciones permitidas y barrido de vencidas.
package lifecycle

import (
	"fmt"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
)

// EffectiveStatus devuelve el estado de la factura en el instante now.
// Vencida si no está pagada y su fecha de vencimiento ya pasó; en otro caso, el estado almacenado.
// Es la única implementación: la usan tanto el listado como la analítica.
func EffectiveStatus(inv *entity.Invoice, now time.Time) entity.Status {
	if inv.Status == entity.StatusPaid {
		return entity.StatusPaid
	}
	if inv.Status == entity.StatusOverdue {
		return entity.StatusOverdue
	}
	if inv.DueDate != nil && inv.DueDate.Before(now) {
		return entity.StatusOverdue
	}
	return inv.Status
}

// IsPending indica si el estado efectivo cuenta como pendiente de cobro (borrador o enviada).
func IsPending(s entity.Status) bool {
	return s == entity.StatusDraft || s == entity.StatusSent
}

// CanTransition indica si se permite pasar del estado from al estado to.
//
//	draft   → sent
//	draft   → paid
//	sent    → paid
//	overdue → paid
//
// paid es terminal.
func CanTransition(from, to entity.Status) bool {
	switch to {
	case entity.StatusSent:
		return from == entity.StatusDraft
	case entity.StatusPaid:
		return from == entity.StatusDraft || from == entity.StatusSent || from == entity.StatusOverdue
	case entity.StatusOverdue:
		return from == entity.StatusDraft || from == entity.StatusSent
	}
	return false
}

// CheckTransition es CanTransition con error tipado para los casos de uso.
func CheckTransition(from, to entity.Status) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// SweepOverdue devuelve las facturas que el barrido debe marcar como vencidas:
// no pagadas, con vencimiento anterior a now y sin estado vencida almacenado.
// No modifica las facturas recibidas.
func SweepOverdue(invs []*entity.Invoice, now time.Time) []*entity.Invoice {
	var out []*entity.Invoice
	for _, inv := range invs {
		if inv.Status == entity.StatusPaid || inv.Status == entity.StatusOverdue {
			continue
		}
		if inv.DueDate != nil && inv.DueDate.Before(now) {
			out = append(out, inv)
		}
	}
	return out
}
