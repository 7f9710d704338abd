package repository

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	// ExistsForOrder indica si el pedido ya tiene salidas registradas.
	ExistsForOrder(ctx context.Context, merchantID, orderID string) (bool, error)
}
