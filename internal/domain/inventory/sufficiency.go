package inventory

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// UnknownItemName nombre reportado cuando el insumo no existe en el inventario.
const UnknownItemName = "unknown"

// ShortfallEntry déficit de un insumo.
type ShortfallEntry struct {
	InventoryID string          `json:"inventoryId"`
	Name        string          `json:"name"`
	Required    decimal.Decimal `json:"required"`
	Available   decimal.Decimal `json:"available"`
	Shortfall   decimal.Decimal `json:"shortfall"`
}

// SufficiencyResult resultado de comparar consumo contra existencias.
type SufficiencyResult struct {
	IsSufficient      bool             `json:"isSufficient"`
	InsufficientItems []ShortfallEntry `json:"insufficientItems"`
}

// UsageDetail fila descriptiva de consumo por insumo, haya o no déficit.
type UsageDetail struct {
	InventoryID  string          `json:"inventoryId"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	IsUnlimited  bool            `json:"isUnlimited"`
	IsKnown      bool            `json:"isKnown"`
	IsSufficient bool            `json:"isSufficient"`
}

// CheckSufficiency compara el consumo contra las existencias disponibles. Nunca falla:
// un insumo desconocido se reporta con disponible 0 y déficit igual a lo requerido.
// Los insumos ilimitados (Stock == -1) nunca generan déficit.
func CheckSufficiency(usage UsageMap, available []entity.InventoryItem) SufficiencyResult {
	byID := indexByID(available)
	result := SufficiencyResult{InsufficientItems: []ShortfallEntry{}}

	for _, id := range sortedIDs(usage) {
		required := usage[id]
		item, ok := byID[id]
		if !ok {
			result.InsufficientItems = append(result.InsufficientItems, ShortfallEntry{
				InventoryID: id,
				Name:        UnknownItemName,
				Required:    required,
				Available:   decimal.Zero,
				Shortfall:   required,
			})
			continue
		}
		if item.IsUnlimited() {
			continue
		}
		stock := decimal.NewFromInt(item.Stock)
		if stock.LessThan(required) {
			result.InsufficientItems = append(result.InsufficientItems, ShortfallEntry{
				InventoryID: id,
				Name:        item.Name,
				Required:    required,
				Available:   stock,
				Shortfall:   required.Sub(stock),
			})
		}
	}
	result.IsSufficient = len(result.InsufficientItems) == 0
	return result
}

// UsageDetails devuelve una fila por insumo del consumo, ordenadas por id.
func UsageDetails(usage UsageMap, available []entity.InventoryItem) []UsageDetail {
	byID := indexByID(available)
	details := make([]UsageDetail, 0, len(usage))
	for _, id := range sortedIDs(usage) {
		required := usage[id]
		item, ok := byID[id]
		if !ok {
			details = append(details, UsageDetail{
				InventoryID: id,
				Name:        UnknownItemName,
				Required:    required,
				Available:   decimal.Zero,
			})
			continue
		}
		stock := decimal.NewFromInt(item.Stock)
		details = append(details, UsageDetail{
			InventoryID:  id,
			Name:         item.Name,
			Category:     item.Category,
			Unit:         item.Unit,
			Required:     required,
			Available:    stock,
			IsUnlimited:  item.IsUnlimited(),
			IsKnown:      true,
			IsSufficient: item.IsUnlimited() || !stock.LessThan(required),
		})
	}
	return details
}

func indexByID(items []entity.InventoryItem) map[string]entity.InventoryItem {
	byID := make(map[string]entity.InventoryItem, len(items))
	for _, it := range items {
		if _, dup := byID[it.ID]; !dup {
			byID[it.ID] = it
		}
	}
	return byID
}

func sortedIDs(usage UsageMap) []string {
	ids := make([]string, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
