package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo lectura de insumos. stock = -1 representa insumo ilimitado.
type InventoryItemRepo struct {
	q Querier
}

// NewInventoryItemRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryItemRepository(q Querier) *InventoryItemRepo {
	return &InventoryItemRepo{q: q}
}

const itemColumns = `id, merchant_id, name, COALESCE(category, ''), COALESCE(unit, ''), stock`

func scanItem(row pgx.Row) (entity.InventoryItem, error) {
	var it entity.InventoryItem
	err := row.Scan(&it.ID, &it.MerchantID, &it.Name, &it.Category, &it.Unit, &it.Stock)
	return it, err
}

func (r *InventoryItemRepo) list(ctx context.Context, query string, args ...any) ([]entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer rows.Close()
	var out []entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// ListByIDs insumos del comercio con los ids dados; los inexistentes se omiten.
func (r *InventoryItemRepo) ListByIDs(ctx context.Context, merchantID string, ids []string) ([]entity.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.list(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE merchant_id = $1 AND id = ANY($2)`, merchantID, ids)
}
