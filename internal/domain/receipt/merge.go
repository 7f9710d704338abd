// Package receipt agrupa las líneas repetidas de un pedido para el recibo y arma
// los datos del recibo con su número de cuenta.
package receipt

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// LineItem fila del recibo: un plato con unas opciones concretas.
type LineItem struct {
	DishID          string                 `json:"dishId"`
	Name            string                 `json:"name"`
	SelectedOptions entity.SelectedOptions `json:"selectedOptions,omitempty"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       decimal.Decimal        `json:"unitPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

// ItemKey identidad de una línea: id del plato + opciones ordenadas por tipo.
// Ids, tipos y valores van entre comillas para que ningún separador dentro de un valor
// produzca la clave de otra combinación.
func ItemKey(item entity.OrderItem) string {
	return strconv.Quote(string(item.EffectiveDishID())) + "|" + CanonicalOptions(item.SelectedOptions)
}

// CanonicalOptions representación estable de las opciones elegidas: "tipo":"valor" separados por coma.
func CanonicalOptions(opts entity.SelectedOptions) string {
	if len(opts) == 0 {
		return ""
	}
	types := make([]string, 0, len(opts))
	for t := range opts {
		types = append(types, t)
	}
	sort.Strings(types)

	parts := make([]string, 0, len(types))
	for _, t := range types {
		parts = append(parts, strconv.Quote(t)+":"+strconv.Quote(opts[t].Display()))
	}
	return strings.Join(parts, ",")
}

// MergeItems une las líneas con la misma identidad sumando cantidades. El total de cada
// fila es cantidad × precio unitario de la primera línea vista; el orden de salida es el
// de la primera aparición de cada identidad.
func MergeItems(items []entity.OrderItem) []LineItem {
	merged := make([]LineItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := ItemKey(item)
		qty := item.EffectiveQuantity()

		if pos, ok := index[key]; ok {
			line := &merged[pos]
			line.Quantity += qty
			line.TotalPrice = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			continue
		}

		unit := item.EffectiveUnitPrice()
		index[key] = len(merged)
		merged = append(merged, LineItem{
			DishID:          string(item.EffectiveDishID()),
			Name:            item.DisplayName(),
			SelectedOptions: item.SelectedOptions,
			Quantity:        qty,
			UnitPrice:       unit,
			TotalPrice:      unit.Mul(decimal.NewFromInt(int64(qty))),
		})
	}
	return merged
}
