package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem línea de un pedido: plato, opciones elegidas y cantidad.
// Dish puede venir embebido (con su InventoryConfig) o resolverse por DishID.
type OrderItem struct {
	DishID          DishID          `json:"dishId"`
	Dish            *Dish           `json:"dish,omitempty"`
	Name            string          `json:"name,omitempty"`
	SelectedOptions SelectedOptions `json:"selectedOptions,omitempty"`
	Quantity        int             `json:"quantity" validate:"gte=0"`
	Price           decimal.Decimal `json:"price"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
}

// EffectiveQuantity cantidad de la línea; ausente (0) cuenta como 1. Las negativas
// (anulaciones) se respetan; la API las rechaza en la validación.
func (it OrderItem) EffectiveQuantity() int {
	if it.Quantity == 0 {
		return 1
	}
	return it.Quantity
}

// EffectiveDishID identificador del plato, tomado del plato embebido si la línea no lo trae.
func (it OrderItem) EffectiveDishID() DishID {
	if it.DishID != "" {
		return it.DishID
	}
	if it.Dish != nil {
		return it.Dish.ID
	}
	return ""
}

// EffectiveUnitPrice Price si no es cero, si no UnitPrice.
func (it OrderItem) EffectiveUnitPrice() decimal.Decimal {
	if !it.Price.IsZero() {
		return it.Price
	}
	return it.UnitPrice
}

// DisplayName nombre para el recibo: el de la línea o el del plato embebido.
func (it OrderItem) DisplayName() string {
	if it.Name != "" {
		return it.Name
	}
	if it.Dish != nil {
		return it.Dish.Name
	}
	return ""
}

// Order cabecera de un pedido. Items == nil significa que el registro no trae ítems.
type Order struct {
	ID          string
	MerchantID  string
	OrderNumber string
	TableNumber string
	Items       []OrderItem
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
}
