// Package inventory contiene los servicios de dominio de consumo de insumos:
// resolución de opciones, agregación de uso por pedido y verificación de stock.
// Todas las funciones son puras; pueden llamarse en paralelo sin coordinación.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// UsageMap cantidad requerida por insumo (inventoryID → cantidad).
type UsageMap map[string]decimal.Decimal

// Add suma qty al total de inventoryID.
func (u UsageMap) Add(inventoryID string, qty decimal.Decimal) {
	u[inventoryID] = u[inventoryID].Add(qty)
}

// DishInventoryUsage calcula el consumo de una unidad del plato con las opciones elegidas.
//
// Base: suma Quantity por insumo (se omiten entradas sin id o sin cantidad).
// Condicional: parte de BaseQuantity y, por cada condición que coincide con la opción
// elegida, reemplaza la cantidad por cantidad*Multiplier + AdditionalQuantity.
// Las condiciones se aplican en orden sobre el valor anterior (no se suman entre sí).
func DishInventoryUsage(dish *entity.Dish, selected entity.SelectedOptions) UsageMap {
	usage := UsageMap{}
	if dish == nil || dish.InventoryConfig == nil {
		return usage
	}
	cfg := dish.InventoryConfig

	for _, base := range cfg.BaseInventory {
		if base.InventoryID == "" || !base.Quantity.IsPositive() {
			continue
		}
		usage.Add(base.InventoryID, base.Quantity)
	}

	for _, cond := range cfg.ConditionalInventory {
		if cond.InventoryID == "" {
			continue
		}
		qty := resolveConditional(cond, selected)
		usage.Add(cond.InventoryID, qty)
	}
	return usage
}

// resolveConditional aplica las condiciones que coinciden sobre BaseQuantity.
func resolveConditional(entry entity.ConditionalInventoryEntry, selected entity.SelectedOptions) decimal.Decimal {
	qty := entry.BaseQuantity
	for _, c := range entry.Conditions {
		chosen, ok := selected[c.OptionType]
		if !ok || chosen.IsObject() || chosen.Text() != c.OptionValue {
			continue
		}
		// TODO: confirmar con producto si las condiciones deben acumularse; hoy cada coincidencia sobrescribe.
		qty = qty.Mul(c.MultiplierOrDefault()).Add(c.AdditionalOrDefault())
	}
	return qty
}

// OrderInventoryUsage suma el consumo de todas las líneas del pedido, escalado por cantidad.
func OrderInventoryUsage(items []entity.OrderItem) UsageMap {
	total := UsageMap{}
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.EffectiveQuantity()))
		for id, perUnit := range DishInventoryUsage(item.Dish, item.SelectedOptions) {
			total.Add(id, perUnit.Mul(qty))
		}
	}
	return total
}
