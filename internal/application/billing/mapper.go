package billing

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/lifecycle"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
)

func partyFromDTO(p dto.PartyDTO) entity.Party {
	return entity.Party{Name: p.Name, Email: p.Email, Address: p.Address, Phone: p.Phone}
}

func partyToDTO(p entity.Party) dto.PartyDTO {
	return dto.PartyDTO{Name: p.Name, Email: p.Email, Address: p.Address, Phone: p.Phone}
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		IssueDate:       inv.IssueDate.Format(dateLayout),
		Status:          string(inv.Status),
		EffectiveStatus: string(lifecycle.EffectiveStatus(inv, uc.now())),
		BilledTo:        partyToDTO(inv.BilledTo),
		BilledFrom:      partyToDTO(inv.BilledFrom),
		LineItems:       make([]dto.LineItemResponse, 0, len(inv.LineItems)),
		FlatTaxPercent:  inv.FlatTaxPercent,
		TaxModel:        string(money.ComputeTotals(inv.LineItems, inv.FlatTaxPercent).Model),
		Currency:        inv.Currency,
		Notes:           inv.Notes,
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		Total:           inv.Total,
		TotalFormatted:  money.Format(inv.Total, inv.Currency, uc.cfg.Locale),
		CreatedAt:       inv.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       inv.UpdatedAt.Format(time.RFC3339),
	}
	if inv.DueDate != nil {
		s := inv.DueDate.Format(dateLayout)
		resp.DueDate = &s
	}
	if inv.PaymentDate != nil {
		s := inv.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &s
	}
	for _, l := range inv.LineItems {
		resp.LineItems = append(resp.LineItems, dto.LineItemResponse{
			ID:             l.ID,
			CatalogItemID:  l.CatalogItemID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			TaxRatePercent: l.TaxRatePercent,
			CostPrice:      l.CostPrice,
			Amount:         l.Amount(),
		})
	}
	return resp
}
