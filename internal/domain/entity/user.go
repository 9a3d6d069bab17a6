package entity

import "time"

// User es la cuenta dueña de una partición de datos (tenant).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
