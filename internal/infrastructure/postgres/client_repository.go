package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

const clientColumns = `id, user_id, name, email, phone, address, notes, created_at, updated_at`

// ClientRepo implementación de ClientRepository (usable con pool o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	query := `INSERT INTO clients (` + clientColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.UserID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address), nullIfEmpty(c.Notes),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente del usuario por ID.
func (r *ClientRepo) GetByID(ctx context.Context, userID, id string) (*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 AND id = $2`
	c, err := scanClient(r.q.QueryRow(ctx, query, userID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

// ListByUser lista los clientes del usuario ordenados por nombre.
func (r *ClientRepo) ListByUser(ctx context.Context, userID string) ([]*entity.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE user_id = $1 ORDER BY name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	query := `
		UPDATE clients SET name = $3, email = $4, phone = $5, address = $6, notes = $7, updated_at = $8
		WHERE user_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query,
		c.UserID, c.ID, c.Name, nullIfEmpty(c.Email), nullIfEmpty(c.Phone), nullIfEmpty(c.Address), nullIfEmpty(c.Notes),
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return expectAffected(tag, "cliente")
}

// Delete elimina un cliente. Las facturas conservan su instantánea.
func (r *ClientRepo) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM clients WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	return expectAffected(tag, "cliente")
}

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	var email, phone, address, notes *string
	if err := row.Scan(&c.ID, &c.UserID, &c.Name, &email, &phone, &address, &notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.Email = derefStr(email)
	c.Phone = derefStr(phone)
	c.Address = derefStr(address)
	c.Notes = derefStr(notes)
	return &c, nil
}
