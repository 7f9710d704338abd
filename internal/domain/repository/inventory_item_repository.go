package repository

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// InventoryItemRepository define el puerto de lectura de insumos del comercio.
type InventoryItemRepository interface {
	ListByIDs(ctx context.Context, merchantID string, ids []string) ([]entity.InventoryItem, error)
}
