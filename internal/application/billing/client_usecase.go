package billing

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
)

// ClientUseCase casos de uso para clientes. Editar un cliente no modifica facturas ya emitidas.
type ClientUseCase struct {
	repo  repository.ClientRepository
	audit AuditRecorder
	now   func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, audit AuditRecorder) *ClientUseCase {
	return &ClientUseCase{repo: repo, audit: audit, now: time.Now}
}

func validateClient(in dto.ClientRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return fmt.Errorf("%w: email inválido", domain.ErrInvalidInput)
		}
	}
	return nil
}

// Create crea un nuevo cliente.
func (uc *ClientUseCase) Create(ctx context.Context, userID string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	now := uc.now()
	c := &entity.Client{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.TrimSpace(in.Email),
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, entity.EntityClient, c.ID, c.Name)
	return toClientResponse(c), nil
}

// Get obtiene un cliente del usuario.
func (uc *ClientUseCase) Get(ctx context.Context, userID, id string) (*dto.ClientResponse, error) {
	c, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// List lista los clientes del usuario por nombre.
func (uc *ClientUseCase) List(ctx context.Context, userID string) ([]*dto.ClientResponse, error) {
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update reemplaza los datos del cliente.
func (uc *ClientUseCase) Update(ctx context.Context, userID, id string, in dto.ClientRequest) (*dto.ClientResponse, error) {
	if err := validateClient(in); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	c.Name = strings.TrimSpace(in.Name)
	c.Email = strings.TrimSpace(in.Email)
	c.Phone = in.Phone
	c.Address = in.Address
	c.Notes = in.Notes
	c.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, entity.EntityClient, c.ID, c.Name)
	return toClientResponse(c), nil
}

// Delete elimina el cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, userID, id string) error {
	c, err := uc.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, entity.EntityClient, id, c.Name)
	return nil
}

func (uc *ClientUseCase) load(ctx context.Context, userID, id string) (*entity.Client, error) {
	c, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}
