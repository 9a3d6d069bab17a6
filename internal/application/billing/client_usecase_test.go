package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/Facturas-api/internal/application/billing"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientUseCase_CRUD(t *testing.T) {
	repo := newFakeClients()
	audit := &fakeAudit{}
	uc := billing.NewClientUseCase(repo, audit)
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.ClientRequest{Name: " Zeta ", Email: "z@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Zeta", created.Name)

	_, err = uc.Create(ctx, "u1", dto.ClientRequest{Name: "alfa"})
	require.NoError(t, err)

	list, err := uc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alfa", list[0].Name)

	updated, err := uc.Update(ctx, "u1", created.ID, dto.ClientRequest{Name: "Zeta SA", Notes: "vip"})
	require.NoError(t, err)
	assert.Equal(t, "Zeta SA", updated.Name)

	require.NoError(t, uc.Delete(ctx, "u1", created.ID))
	_, err = uc.Get(ctx, "u1", created.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	assert.Equal(t, []string{
		entity.AuditActionCreate, entity.AuditActionCreate, entity.AuditActionUpdate, entity.AuditActionDelete,
	}, audit.actions)
}

func TestClientUseCase_Validacion(t *testing.T) {
	uc := billing.NewClientUseCase(newFakeClients(), &fakeAudit{})

	_, err := uc.Create(context.Background(), "u1", dto.ClientRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(context.Background(), "u1", dto.ClientRequest{Name: "x", Email: "no-es-email"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestClientUseCase_AislamientoPorUsuario(t *testing.T) {
	repo := newFakeClients(&entity.Client{ID: "c1", UserID: "u2", Name: "Ajeno"})
	uc := billing.NewClientUseCase(repo, &fakeAudit{})

	_, err := uc.Get(context.Background(), "u1", "c1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = uc.Delete(context.Background(), "u1", "c1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
