package entity

import "time"

// Client es un dato de referencia del usuario; las facturas guardan una copia (Party).
type Client struct {
	ID        string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot devuelve la instantánea desnormalizada para guardar en una factura.
func (c *Client) Snapshot() Party {
	return Party{Name: c.Name, Email: c.Email, Address: c.Address, Phone: c.Phone}
}
