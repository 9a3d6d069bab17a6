package localstore

import (
	"time"

	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Los decimales se guardan como TEXT: SQLite convertiría NUMERIC a REAL y perdería exactitud.

type userModel struct {
	ID           string `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (userModel) TableName() string { return "users" }

type clientModel struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (clientModel) TableName() string { return "clients" }

type catalogItemModel struct {
	ID                string `gorm:"primaryKey"`
	UserID            string `gorm:"index;not null"`
	ProductID         string
	Name              string `gorm:"not null"`
	Description       string
	UnitPrice         decimal.Decimal `gorm:"type:text"`
	CostPrice         decimal.Decimal `gorm:"type:text"`
	Unit              string
	Category          string
	TaxRatePercent    decimal.Decimal `gorm:"type:text"`
	QuantityOnHand    int
	LowStockThreshold int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (catalogItemModel) TableName() string { return "catalog_items" }

type partyModel struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

type invoiceModel struct {
	ID             string     `gorm:"primaryKey"`
	UserID         string     `gorm:"uniqueIndex:uq_invoices_user_number;not null"`
	InvoiceNumber  string     `gorm:"uniqueIndex:uq_invoices_user_number;not null"`
	IssueDate      time.Time  `gorm:"not null"`
	DueDate        *time.Time `gorm:"index"`
	Status         string     `gorm:"not null"`
	BilledTo       partyModel `gorm:"embedded;embeddedPrefix:billed_to_"`
	BilledFrom     partyModel `gorm:"embedded;embeddedPrefix:billed_from_"`
	FlatTaxPercent decimal.Decimal `gorm:"type:text"`
	Currency       string
	Notes          string
	Subtotal       decimal.Decimal `gorm:"type:text"`
	TaxAmount      decimal.Decimal `gorm:"type:text"`
	Total          decimal.Decimal `gorm:"type:text"`
	PaymentDate    *time.Time
	LineItems      []lineItemModel `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (invoiceModel) TableName() string { return "invoices" }

// lineItemModel: el id de línea solo es único dentro de su factura.
type lineItemModel struct {
	InvoiceID      string `gorm:"primaryKey"`
	ID             string `gorm:"primaryKey"`
	Position       int
	CatalogItemID  string
	Description    string
	Quantity       int
	UnitPrice      decimal.Decimal `gorm:"type:text"`
	TaxRatePercent decimal.Decimal `gorm:"type:text"`
	CostPrice      decimal.Decimal `gorm:"type:text"`
}

func (lineItemModel) TableName() string { return "invoice_line_items" }

type auditLogModel struct {
	ID         string `gorm:"primaryKey"`
	UserID     string `gorm:"index:idx_audit_user_created,priority:1;not null"`
	Action     string
	EntityType string
	EntityID   string
	Details    string
	CreatedAt  time.Time `gorm:"index:idx_audit_user_created,priority:2"`
}

func (auditLogModel) TableName() string { return "audit_logs" }

// ── Mapeo entidad <-> modelo ──────────────────────────────────────────────────

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

func toInvoiceModel(inv *entity.Invoice) *invoiceModel {
	m := &invoiceModel{
		ID:             inv.ID,
		UserID:         inv.UserID,
		InvoiceNumber:  inv.InvoiceNumber,
		IssueDate:      inv.IssueDate.UTC(),
		DueDate:        utcPtr(inv.DueDate),
		Status:         string(inv.Status),
		BilledTo:       partyModel(inv.BilledTo),
		BilledFrom:     partyModel(inv.BilledFrom),
		FlatTaxPercent: inv.FlatTaxPercent,
		Currency:       inv.Currency,
		Notes:          inv.Notes,
		Subtotal:       inv.Subtotal,
		TaxAmount:      inv.TaxAmount,
		Total:          inv.Total,
		PaymentDate:    utcPtr(inv.PaymentDate),
		CreatedAt:      inv.CreatedAt.UTC(),
		UpdatedAt:      inv.UpdatedAt.UTC(),
	}
	for i, l := range inv.LineItems {
		m.LineItems = append(m.LineItems, lineItemModel{
			ID:             l.ID,
			InvoiceID:      inv.ID,
			Position:       i,
			CatalogItemID:  l.CatalogItemID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			TaxRatePercent: l.TaxRatePercent,
			CostPrice:      l.CostPrice,
		})
	}
	return m
}

func (m *invoiceModel) toEntity() (*entity.Invoice, error) {
	status, err := entity.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		ID:             m.ID,
		UserID:         m.UserID,
		InvoiceNumber:  m.InvoiceNumber,
		IssueDate:      m.IssueDate,
		DueDate:        m.DueDate,
		Status:         status,
		BilledTo:       entity.Party(m.BilledTo),
		BilledFrom:     entity.Party(m.BilledFrom),
		FlatTaxPercent: m.FlatTaxPercent,
		Currency:       m.Currency,
		Notes:          m.Notes,
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		Total:          m.Total,
		PaymentDate:    m.PaymentDate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for _, l := range m.LineItems {
		inv.LineItems = append(inv.LineItems, entity.LineItem{
			ID:             l.ID,
			CatalogItemID:  l.CatalogItemID,
			Description:    l.Description,
			Quantity:       l.Quantity,
			UnitPrice:      l.UnitPrice,
			TaxRatePercent: l.TaxRatePercent,
			CostPrice:      l.CostPrice,
		})
	}
	return inv, nil
}

func toCatalogItemModel(it *entity.CatalogItem) *catalogItemModel {
	return &catalogItemModel{
		ID:                it.ID,
		UserID:            it.UserID,
		ProductID:         it.ProductID,
		Name:              it.Name,
		Description:       it.Description,
		UnitPrice:         it.UnitPrice,
		CostPrice:         it.CostPrice,
		Unit:              it.Unit,
		Category:          it.Category,
		TaxRatePercent:    it.TaxRatePercent,
		QuantityOnHand:    it.QuantityOnHand,
		LowStockThreshold: it.LowStockThreshold,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

func (m *catalogItemModel) toEntity() *entity.CatalogItem {
	return &entity.CatalogItem{
		ID:                m.ID,
		UserID:            m.UserID,
		ProductID:         m.ProductID,
		Name:              m.Name,
		Description:       m.Description,
		UnitPrice:         m.UnitPrice,
		CostPrice:         m.CostPrice,
		Unit:              m.Unit,
		Category:          m.Category,
		TaxRatePercent:    m.TaxRatePercent,
		QuantityOnHand:    m.QuantityOnHand,
		LowStockThreshold: m.LowStockThreshold,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
