package entity

import (
	"fmt"
	"strings"
)

// Status es el estado de una factura. Enumeración cerrada.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue" // solo se persiste con el barrido opcional; normalmente es derivado
)

// ParseStatus normaliza un estado recibido desde fuera del sistema (HTTP, filas legadas).
// Es el único punto donde se toleran mayúsculas, espacios y el alias legado "pending".
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return StatusDraft, nil
	case "sent", "pending":
		return StatusSent, nil
	case "paid":
		return StatusPaid, nil
	case "overdue":
		return StatusOverdue, nil
	}
	return "", fmt.Errorf("estado de factura desconocido: %q", s)
}

// Valid indica si s pertenece a la enumeración.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue:
		return true
	}
	return false
}

func (s Status) String() string { return string(s) }
