package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE); (nil, nil) si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, merchantID, inventoryID string) (*entity.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items WHERE merchant_id = $1 AND id = $2 FOR UPDATE`
	it, err := scanItem(r.q.QueryRow(ctx, query, merchantID, inventoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &it, nil
}

// UpdateStock fija la existencia del insumo.
func (r *StockRepo) UpdateStock(ctx context.Context, merchantID, inventoryID string, stock int64) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE inventory_items SET stock = $3, updated_at = now() WHERE merchant_id = $1 AND id = $2`,
		merchantID, inventoryID, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock: insumo %s no encontrado", inventoryID)
	}
	return nil
}
