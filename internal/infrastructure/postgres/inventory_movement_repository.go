package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, transaction_id, merchant_id, inventory_id, order_id, type, quantity, stock_after, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.TransactionID, movement.MerchantID, movement.InventoryID,
		nullIfEmpty(movement.OrderID), movement.Type, movement.Quantity, movement.StockAfter,
		movement.CreatedAt, nullIfEmpty(movement.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ExistsForOrder indica si el pedido ya tiene salidas registradas.
func (r *InventoryMovementRepo) ExistsForOrder(ctx context.Context, merchantID, orderID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM inventory_movements
			WHERE merchant_id = $1 AND order_id = $2 AND type = $3
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, merchantID, orderID, entity.MovementTypeOUT).Scan(&exists); err != nil {
		return false, fmt.Errorf("check order movements: %w", err)
	}
	return exists, nil
}
