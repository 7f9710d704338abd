package inventory_test

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

// bowlDish arroz fijo y vaso que se duplica en tamaño grande.
func bowlDish() *entity.Dish {
	return &entity.Dish{
		ID:         "bowl",
		MerchantID: "m1",
		Name:       "Bowl",
		Price:      dec("50"),
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

type fakeDishRepo struct {
	dishes map[string]*entity.Dish
	calls  int
}

func (f *fakeDishRepo) ListByIDs(_ context.Context, _ string, ids []string) (map[string]*entity.Dish, error) {
	f.calls++
	out := map[string]*entity.Dish{}
	for _, id := range ids {
		if d, ok := f.dishes[id]; ok {
			out[id] = d
		}
	}
	return out, nil
}

type fakeItemRepo struct {
	items []entity.InventoryItem
}

func (f *fakeItemRepo) ListByIDs(_ context.Context, _ string, ids []string) ([]entity.InventoryItem, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []entity.InventoryItem
	for _, it := range f.items {
		if want[it.ID] {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (f *fakeOrderRepo) GetByID(_ context.Context, _, id string) (*entity.Order, error) {
	return f.orders[id], nil
}

// memStock inventario en memoria; la tx trabaja sobre una copia que se confirma solo si fn no falla.
type memStock struct {
	stock     map[string]entity.InventoryItem
	movements []entity.InventoryMovement
	locked    []string
	failOn    string
}

func newMemStock(items ...entity.InventoryItem) *memStock {
	m := &memStock{stock: map[string]entity.InventoryItem{}}
	for _, it := range items {
		m.stock[it.ID] = it
	}
	return m
}

type txStock struct {
	parent    *memStock
	stock     map[string]entity.InventoryItem
	movements []entity.InventoryMovement
}

func (t *txStock) GetForUpdate(_ context.Context, _, id string) (*entity.InventoryItem, error) {
	t.parent.locked = append(t.parent.locked, id)
	it, ok := t.stock[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (t *txStock) UpdateStock(_ context.Context, _, id string, stock int64) error {
	if id == t.parent.failOn {
		return errors.New("fallo de escritura")
	}
	it := t.stock[id]
	it.Stock = stock
	t.stock[id] = it
	return nil
}

func (t *txStock) Create(_ context.Context, mov *entity.InventoryMovement) error {
	t.movements = append(t.movements, *mov)
	return nil
}

func (t *txStock) ExistsForOrder(_ context.Context, _, orderID string) (bool, error) {
	for _, m := range append(t.parent.movements, t.movements...) {
		if m.OrderID == orderID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStock) Run(ctx context.Context, fn func(context.Context, repository.StockRepository, repository.InventoryMovementRepository) error) error {
	tx := &txStock{parent: m, stock: map[string]entity.InventoryItem{}}
	for k, v := range m.stock {
		tx.stock[k] = v
	}
	if err := fn(ctx, tx, tx); err != nil {
		return err
	}
	m.stock = tx.stock
	m.movements = append(m.movements, tx.movements...)
	return nil
}
