package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/application/dto"
	"github.com/jhoicas/Comanda-api/internal/domain"
	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/inventory"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

// UsageUseCase calcula consumo de insumos y verifica stock para las líneas de un pedido.
type UsageUseCase struct {
	dishRepo repository.DishRepository
	itemRepo repository.InventoryItemRepository
}

// NewUsageUseCase construye el caso de uso.
func NewUsageUseCase(dishRepo repository.DishRepository, itemRepo repository.InventoryItemRepository) *UsageUseCase {
	return &UsageUseCase{dishRepo: dishRepo, itemRepo: itemRepo}
}

// OrderUsage devuelve el consumo agregado de las líneas.
func (uc *UsageUseCase) OrderUsage(ctx context.Context, merchantID string, in dto.OrderItemsRequest) (*dto.UsageResponse, error) {
	usage, err := uc.usageFor(ctx, merchantID, in.Items)
	if err != nil {
		return nil, err
	}
	return &dto.UsageResponse{Usage: usage}, nil
}

// CheckOrder compara el consumo de las líneas contra el inventario actual del comercio.
func (uc *UsageUseCase) CheckOrder(ctx context.Context, merchantID string, in dto.OrderItemsRequest) (*dto.SufficiencyResponse, error) {
	usage, err := uc.usageFor(ctx, merchantID, in.Items)
	if err != nil {
		return nil, err
	}
	available, err := uc.itemRepo.ListByIDs(ctx, merchantID, usageIDs(usage))
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}
	res := inventory.CheckSufficiency(usage, available)
	return &dto.SufficiencyResponse{
		IsSufficient:      res.IsSufficient,
		InsufficientItems: ToShortfallResponses(res.InsufficientItems),
		Usage:             usage,
	}, nil
}

// UsageDetails una fila por insumo consumido, haya o no déficit.
func (uc *UsageUseCase) UsageDetails(ctx context.Context, merchantID string, in dto.OrderItemsRequest) ([]dto.UsageDetailResponse, error) {
	usage, err := uc.usageFor(ctx, merchantID, in.Items)
	if err != nil {
		return nil, err
	}
	available, err := uc.itemRepo.ListByIDs(ctx, merchantID, usageIDs(usage))
	if err != nil {
		return nil, fmt.Errorf("listar insumos: %w", err)
	}
	details := inventory.UsageDetails(usage, available)
	out := make([]dto.UsageDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, dto.UsageDetailResponse{
			InventoryID:  d.InventoryID,
			Name:         d.Name,
			Category:     d.Category,
			Unit:         d.Unit,
			Required:     d.Required,
			Available:    d.Available,
			IsUnlimited:  d.IsUnlimited,
			IsKnown:      d.IsKnown,
			IsSufficient: d.IsSufficient,
		})
	}
	return out, nil
}

func (uc *UsageUseCase) usageFor(ctx context.Context, merchantID string, items []entity.OrderItem) (inventory.UsageMap, error) {
	if len(items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	resolved, err := uc.ResolveDishes(ctx, merchantID, items)
	if err != nil {
		return nil, err
	}
	return inventory.OrderInventoryUsage(resolved), nil
}

// ResolveDishes completa cada línea con el plato del menú del comercio. El menú es la
// fuente de verdad: si la línea trae dishId se usa el plato guardado; el plato embebido
// solo se usa en líneas sin id (simulaciones).
func (uc *UsageUseCase) ResolveDishes(ctx context.Context, merchantID string, items []entity.OrderItem) ([]entity.OrderItem, error) {
	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, it := range items {
		id := string(it.EffectiveDishID())
		if id == "" {
			if it.Dish == nil {
				return nil, fmt.Errorf("%w: línea sin plato", domain.ErrInvalidInput)
			}
			continue
		}
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	dishes := map[string]*entity.Dish{}
	if len(ids) > 0 {
		var err error
		dishes, err = uc.dishRepo.ListByIDs(ctx, merchantID, ids)
		if err != nil {
			return nil, fmt.Errorf("listar platos: %w", err)
		}
	}

	out := make([]entity.OrderItem, len(items))
	for i, it := range items {
		out[i] = it
		id := string(it.EffectiveDishID())
		if id == "" {
			continue
		}
		dish, ok := dishes[id]
		if !ok || dish == nil {
			return nil, fmt.Errorf("%w: plato %s", domain.ErrNotFound, id)
		}
		out[i].Dish = dish
	}
	return out, nil
}

// ToShortfallResponses adapta el reporte de déficit al DTO.
func ToShortfallResponses(entries []inventory.ShortfallEntry) []dto.ShortfallResponse {
	out := make([]dto.ShortfallResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ShortfallResponse{
			InventoryID: e.InventoryID,
			Name:        e.Name,
			Required:    e.Required,
			Available:   e.Available,
			Shortfall:   e.Shortfall,
		})
	}
	return out
}

func usageIDs(usage inventory.UsageMap) []string {
	ids := make([]string, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	return ids
}

// requiredUnits unidades enteras a descontar de un stock entero (redondeo hacia arriba).
func requiredUnits(qty decimal.Decimal) int64 {
	return qty.Ceil().IntPart()
}
