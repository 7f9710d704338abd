package inventory_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// assertUsage compara dos mapas de consumo por valor decimal (1 == 1.0).
func assertUsage(t *testing.T, want map[string]string, got inventory.UsageMap) {
	t.Helper()
	require.Len(t, got, len(want), "cantidad de insumos: %v", got)
	for id, qty := range want {
		v, ok := got[id]
		require.True(t, ok, "falta el insumo %s", id)
		assert.True(t, dec(qty).Equal(v), "insumo %s: esperado %s, obtenido %s", id, qty, v)
	}
}

// riceCupDish plato del ejemplo: arroz fijo y vaso que se duplica en tamaño grande.
func riceCupDish() *entity.Dish {
	return &entity.Dish{
		ID:   "bowl",
		Name: "Bowl",
		InventoryConfig: &entity.InventoryConfig{
			BaseInventory: []entity.BaseInventoryEntry{{InventoryID: "rice", Quantity: dec("1")}},
			ConditionalInventory: []entity.ConditionalInventoryEntry{{
				InventoryID:  "cup",
				BaseQuantity: dec("1"),
				Conditions: []entity.InventoryCondition{
					{OptionType: "size", OptionValue: "large", Multiplier: decPtr("2")},
				},
			}},
		},
	}
}

func TestDishInventoryUsage_SinConfiguracion(t *testing.T) {
	assert.Empty(t, inventory.DishInventoryUsage(nil, nil))
	assert.Empty(t, inventory.DishInventoryUsage(&entity.Dish{ID: "x"}, nil))
	assert.Empty(t, inventory.DishInventoryUsage(&entity.Dish{InventoryConfig: &entity.InventoryConfig{}}, nil))
	assert.NotNil(t, inventory.DishInventoryUsage(nil, nil), "siempre devuelve un mapa utilizable")
}

func TestDishInventoryUsage_EjemploArrozVaso(t *testing.T) {
	usage := inventory.DishInventoryUsage(riceCupDish(), entity.SelectedOptions{"size": entity.TextOption("large")})
	assertUsage(t, map[string]string{"rice": "1", "cup": "2"}, usage)
}

func TestDishInventoryUsage_SinCoincidenciaUsaBase(t *testing.T) {
	usage := inventory.DishInventoryUsage(riceCupDish(), entity.SelectedOptions{"size": entity.TextOption("small")})
	assertUsage(t, map[string]string{"rice": "1", "cup": "1"}, usage)

	usage = inventory.DishInventoryUsage(riceCupDish(), nil)
	assertUsage(t, map[string]string{"rice": "1", "cup": "1"}, usage)
}

func TestDishInventoryUsage_OmiteEntradasIncompletas(t *testing.T) {
	dish := &entity.Dish{InventoryConfig: &entity.InventoryConfig{
		BaseInventory: []entity.BaseInventoryEntry{
			{InventoryID: "", Quantity: dec("3")},
			{InventoryID: "salt"},
			{InventoryID: "rice", Quantity: dec("0.5")},
			{InventoryID: "rice", Quantity: dec("0.25")},
		},
		ConditionalInventory: []entity.ConditionalInventoryEntry{{BaseQuantity: dec("9")}},
	}}
	usage := inventory.DishInventoryUsage(dish, nil)
	assertUsage(t, map[string]string{"rice": "0.75"}, usage)
}

// Las condiciones se aplican en secuencia, cada una sobre el valor anterior.
func TestDishInventoryUsage_CondicionesSobrescribenEnSecuencia(t *testing.T) {
	dish := &entity.Dish{InventoryConfig: &entity.InventoryConfig{
		ConditionalInventory: []entity.ConditionalInventoryEntry{{
			InventoryID:  "milk",
			BaseQuantity: dec("1"),
			Conditions: []entity.InventoryCondition{
				{OptionType: "size", OptionValue: "large", Multiplier: decPtr("2")},
				{OptionType: "extra", OptionValue: "milk", AdditionalQuantity: decPtr("0.5")},
				{OptionType: "sugar", OptionValue: "none", Multiplier: decPtr("10")},
			},
		}},
	}}
	selected := entity.SelectedOptions{
		"size":  entity.TextOption("large"),
		"extra": entity.TextOption("milk"),
		"sugar": entity.TextOption("normal"),
	}
	// (1*2 + 0) -> (2*1 + 0.5) = 2.5; la tercera no coincide
	assertUsage(t, map[string]string{"milk": "2.5"}, inventory.DishInventoryUsage(dish, selected))
}

func TestDishInventoryUsage_ValoresObjetoNoCoinciden(t *testing.T) {
	var selected entity.SelectedOptions
	require.NoError(t, json.Unmarshal([]byte(`{"size":{"label":"Grande","value":"large"}}`), &selected))
	usage := inventory.DishInventoryUsage(riceCupDish(), selected)
	assertUsage(t, map[string]string{"rice": "1", "cup": "1"}, usage)
}

func TestDishInventoryUsage_ValorNumericoComparaTexto(t *testing.T) {
	dish := &entity.Dish{InventoryConfig: &entity.InventoryConfig{
		ConditionalInventory: []entity.ConditionalInventoryEntry{{
			InventoryID:  "shot",
			BaseQuantity: dec("1"),
			Conditions: []entity.InventoryCondition{
				{OptionType: "shots", OptionValue: "2", Multiplier: decPtr("1"), AdditionalQuantity: decPtr("1")},
			},
		}},
	}}
	var selected entity.SelectedOptions
	require.NoError(t, json.Unmarshal([]byte(`{"shots":2}`), &selected))
	assertUsage(t, map[string]string{"shot": "2"}, inventory.DishInventoryUsage(dish, selected))
}

func TestOrderInventoryUsage_EscalaPorCantidad(t *testing.T) {
	large := entity.SelectedOptions{"size": entity.TextOption("large")}
	items := []entity.OrderItem{
		{DishID: "bowl", Dish: riceCupDish(), SelectedOptions: large, Quantity: 3},
		{DishID: "bowl", Dish: riceCupDish(), Quantity: 0}, // cantidad ausente = 1
		{DishID: "water", Dish: &entity.Dish{ID: "water"}, Quantity: 5},
	}
	usage := inventory.OrderInventoryUsage(items)
	// rice: 3 + 1 ; cup: 2*3 + 1
	assertUsage(t, map[string]string{"rice": "4", "cup": "7"}, usage)
}

// El total del pedido es la suma por ítem del consumo del plato multiplicado por la cantidad.
func TestOrderInventoryUsage_IgualASumaPorItem(t *testing.T) {
	items := []entity.OrderItem{
		{Dish: riceCupDish(), SelectedOptions: entity.SelectedOptions{"size": entity.TextOption("large")}, Quantity: 2},
		{Dish: riceCupDish(), Quantity: 4},
	}
	want := inventory.UsageMap{}
	for _, it := range items {
		for id, q := range inventory.DishInventoryUsage(it.Dish, it.SelectedOptions) {
			want.Add(id, q.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	got := inventory.OrderInventoryUsage(items)
	require.Len(t, got, len(want))
	for id, q := range want {
		assert.True(t, q.Equal(got[id]), "insumo %s", id)
	}
}

func TestOrderInventoryUsage_PedidoVacio(t *testing.T) {
	assert.Empty(t, inventory.OrderInventoryUsage(nil))
}
