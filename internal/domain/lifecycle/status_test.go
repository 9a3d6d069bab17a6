package lifecycle_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/lifecycle"
	"github.com/stretchr/testify/assert"
)

var now = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func ptr(t time.Time) *time.Time { return &t }

func TestEffectiveStatus(t *testing.T) {
	yesterday := now.AddDate(0, 0, -1)
	tomorrow := now.AddDate(0, 0, 1)

	tests := []struct {
		name   string
		status entity.Status
		due    *time.Time
		want   entity.Status
	}{
		{"enviada vencida ayer", entity.StatusSent, ptr(yesterday), entity.StatusOverdue},
		{"pagada vencida ayer", entity.StatusPaid, ptr(yesterday), entity.StatusPaid},
		{"borrador vencido", entity.StatusDraft, ptr(yesterday), entity.StatusOverdue},
		{"enviada sin vencimiento", entity.StatusSent, nil, entity.StatusSent},
		{"enviada vence mañana", entity.StatusSent, ptr(tomorrow), entity.StatusSent},
		{"vence exactamente ahora", entity.StatusSent, ptr(now), entity.StatusSent},
		{"vencida almacenada sin fecha", entity.StatusOverdue, nil, entity.StatusOverdue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &entity.Invoice{Status: tt.status, DueDate: tt.due}
			got := lifecycle.EffectiveStatus(inv, now)
			assert.Equal(t, tt.want, got)
			// idempotente
			assert.Equal(t, got, lifecycle.EffectiveStatus(inv, now))
			assert.Equal(t, tt.status, inv.Status, "no debe mutar la factura")
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to entity.Status
		want     bool
	}{
		{entity.StatusDraft, entity.StatusSent, true},
		{entity.StatusDraft, entity.StatusPaid, true},
		{entity.StatusSent, entity.StatusPaid, true},
		{entity.StatusOverdue, entity.StatusPaid, true},
		{entity.StatusSent, entity.StatusOverdue, true},
		{entity.StatusOverdue, entity.StatusSent, false},
		{entity.StatusSent, entity.StatusDraft, false},
		{entity.StatusPaid, entity.StatusSent, false},
		{entity.StatusPaid, entity.StatusDraft, false},
		{entity.StatusPaid, entity.StatusPaid, false},
		{entity.StatusSent, entity.StatusSent, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, lifecycle.CanTransition(tt.from, tt.to))
			err := lifecycle.CheckTransition(tt.from, tt.to)
			if tt.want {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, domain.ErrInvalidTransition))
			}
		})
	}
}

func TestSweepOverdue(t *testing.T) {
	past := ptr(now.AddDate(0, 0, -3))
	future := ptr(now.AddDate(0, 0, 3))
	invs := []*entity.Invoice{
		{ID: "a", Status: entity.StatusSent, DueDate: past},
		{ID: "b", Status: entity.StatusPaid, DueDate: past},
		{ID: "c", Status: entity.StatusOverdue, DueDate: past},
		{ID: "d", Status: entity.StatusDraft, DueDate: past},
		{ID: "e", Status: entity.StatusSent, DueDate: future},
		{ID: "f", Status: entity.StatusSent},
	}

	got := lifecycle.SweepOverdue(invs, now)

	ids := make([]string, 0, len(got))
	for _, inv := range got {
		ids = append(ids, inv.ID)
	}
	assert.Equal(t, []string{"a", "d"}, ids)
	assert.Equal(t, entity.StatusSent, invs[0].Status)
}
