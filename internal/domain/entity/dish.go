package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Dish es un plato vendible del menú, opcionalmente con reglas de consumo de inventario.
type Dish struct {
	ID              DishID           `json:"id"`
	MerchantID      string           `json:"merchantId,omitempty"`
	Name            string           `json:"name"`
	Price           decimal.Decimal  `json:"price"`
	InventoryConfig *InventoryConfig `json:"inventoryConfig,omitempty"`
}

// UnmarshalJSON acepta el identificador como "id" o "_id" (registros exportados desde Mongo).
func (d *Dish) UnmarshalJSON(b []byte) error {
	type alias Dish
	aux := struct {
		*alias
		MongoID DishID `json:"_id"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = aux.MongoID
	}
	return nil
}

// InventoryConfig reglas de consumo de insumos de un plato.
type InventoryConfig struct {
	BaseInventory        []BaseInventoryEntry        `json:"baseInventory,omitempty"`
	ConditionalInventory []ConditionalInventoryEntry `json:"conditionalInventory,omitempty"`
}

// BaseInventoryEntry consumo fijo por unidad del plato.
type BaseInventoryEntry struct {
	InventoryID string          `json:"inventoryId"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ConditionalInventoryEntry consumo que depende de las opciones elegidas por el cliente.
type ConditionalInventoryEntry struct {
	InventoryID  string               `json:"inventoryId"`
	BaseQuantity decimal.Decimal      `json:"baseQuantity"`
	Conditions   []InventoryCondition `json:"conditions,omitempty"`
}

// InventoryCondition ajusta la cantidad cuando la opción OptionType vale OptionValue.
// Multiplier por defecto 1, AdditionalQuantity por defecto 0.
type InventoryCondition struct {
	OptionType         string           `json:"optionType"`
	OptionValue        string           `json:"optionValue"`
	Multiplier         *decimal.Decimal `json:"multiplier,omitempty"`
	AdditionalQuantity *decimal.Decimal `json:"additionalQuantity,omitempty"`
}

// MultiplierOrDefault devuelve el multiplicador efectivo.
func (c InventoryCondition) MultiplierOrDefault() decimal.Decimal {
	if c.Multiplier == nil {
		return decimal.NewFromInt(1)
	}
	return *c.Multiplier
}

// AdditionalOrDefault devuelve la cantidad adicional efectiva.
func (c InventoryCondition) AdditionalOrDefault() decimal.Decimal {
	if c.AdditionalQuantity == nil {
		return decimal.Zero
	}
	return *c.AdditionalQuantity
}
