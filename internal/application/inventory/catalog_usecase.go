package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Facturas-api/internal/application/dto"
	"github.com/jhoicas/Facturas-api/internal/domain"
	"github.com/jhoicas/Facturas-api/internal/domain/entity"
	"github.com/jhoicas/Facturas-api/internal/domain/inventory"
	"github.com/jhoicas/Facturas-api/internal/domain/money"
	"github.com/jhoicas/Facturas-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CatalogUseCase casos de uso del catálogo de artículos.
type CatalogUseCase struct {
	repo  repository.CatalogItemRepository
	audit AuditRecorder
	now   func() time.Time
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogItemRepository, audit AuditRecorder) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, audit: audit, now: time.Now}
}

func validateItem(in dto.CatalogItemRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if in.UnitPrice.IsNegative() || in.CostPrice.IsNegative() {
		return fmt.Errorf("%w: precios negativos", domain.ErrInvalidInput)
	}
	if in.QuantityOnHand < 0 || in.LowStockThreshold < 0 {
		return fmt.Errorf("%w: existencias negativas", domain.ErrInvalidInput)
	}
	if in.TaxRatePercent != nil {
		return money.ValidatePercent(*in.TaxRatePercent)
	}
	return nil
}

// Create crea un artículo. Sin tasa explícita se usa la de la categoría.
func (uc *CatalogUseCase) Create(ctx context.Context, userID string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	rate := money.DefaultTaxRateForCategory(in.Category)
	if in.TaxRatePercent != nil {
		rate = *in.TaxRatePercent
	}
	now := uc.now()
	item := &entity.CatalogItem{
		ID:                uuid.New().String(),
		UserID:            userID,
		ProductID:         strings.TrimSpace(in.ProductID),
		Name:              strings.TrimSpace(in.Name),
		Description:       in.Description,
		UnitPrice:         in.UnitPrice,
		CostPrice:         in.CostPrice,
		Unit:              in.Unit,
		Category:          in.Category,
		TaxRatePercent:    rate,
		QuantityOnHand:    in.QuantityOnHand,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionCreate, entity.EntityCatalogItem, item.ID, item.Name)
	return toItemResponse(item), nil
}

// Get obtiene un artículo del usuario.
func (uc *CatalogUseCase) Get(ctx context.Context, userID, id string) (*dto.CatalogItemResponse, error) {
	item, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// List lista el catálogo ordenado por nombre. lowStockOnly filtra los que están en o bajo el umbral.
func (uc *CatalogUseCase) List(ctx context.Context, userID string, lowStockOnly bool) ([]*dto.CatalogItemResponse, error) {
	items, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	out := make([]*dto.CatalogItemResponse, 0, len(items))
	for _, it := range items {
		if lowStockOnly && !inventory.IsLowStock(it) {
			continue
		}
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// CountLowStock cuenta los artículos en o bajo su umbral.
func (uc *CatalogUseCase) CountLowStock(ctx context.Context, userID string) (int, error) {
	items, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		if inventory.IsLowStock(it) {
			n++
		}
	}
	return n, nil
}

// Update reemplaza los datos editables del artículo, incluida la existencia (valor absoluto).
func (uc *CatalogUseCase) Update(ctx context.Context, userID, id string, in dto.CatalogItemRequest) (*dto.CatalogItemResponse, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	item, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	item.ProductID = strings.TrimSpace(in.ProductID)
	item.Name = strings.TrimSpace(in.Name)
	item.Description = in.Description
	item.UnitPrice = in.UnitPrice
	item.CostPrice = in.CostPrice
	item.Unit = in.Unit
	item.Category = in.Category
	if in.TaxRatePercent != nil {
		item.TaxRatePercent = *in.TaxRatePercent
	}
	item.QuantityOnHand = in.QuantityOnHand
	item.LowStockThreshold = in.LowStockThreshold
	item.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionUpdate, entity.EntityCatalogItem, item.ID, item.Name)
	return toItemResponse(item), nil
}

// Restock fija la existencia en valor absoluto. Si entra mercancía con costo unitario,
// el costo del artículo pasa a ser el promedio ponderado.
func (uc *CatalogUseCase) Restock(ctx context.Context, userID, id string, in dto.RestockRequest) (*dto.CatalogItemResponse, error) {
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: la existencia no puede ser negativa", domain.ErrInvalidInput)
	}
	if in.UnitCost != nil && in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
	}
	item, err := uc.load(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	prev := item.QuantityOnHand
	if incoming := in.Quantity - prev; incoming > 0 && in.UnitCost != nil {
		item.CostPrice = inventory.WeightedAverageCost(
			decimal.NewFromInt(int64(prev)), item.CostPrice,
			decimal.NewFromInt(int64(incoming)), *in.UnitCost,
		)
	}
	item.QuantityOnHand = in.Quantity
	item.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionRestock, entity.EntityCatalogItem, item.ID,
		fmt.Sprintf("%s: %d → %d", item.Name, prev, in.Quantity))
	return toItemResponse(item), nil
}

// Delete elimina el artículo. Las facturas existentes conservan sus líneas.
func (uc *CatalogUseCase) Delete(ctx context.Context, userID, id string) error {
	item, err := uc.load(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	uc.audit.Record(ctx, userID, entity.AuditActionDelete, entity.EntityCatalogItem, id, item.Name)
	return nil
}

func (uc *CatalogUseCase) load(ctx context.Context, userID, id string) (*entity.CatalogItem, error) {
	item, err := uc.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return item, nil
}

func toItemResponse(it *entity.CatalogItem) *dto.CatalogItemResponse {
	return &dto.CatalogItemResponse{
		ID:                it.ID,
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
		LowStock:          inventory.IsLowStock(it),
		CreatedAt:         it.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         it.UpdatedAt.Format(time.RFC3339),
	}
}
