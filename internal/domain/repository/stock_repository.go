package repository

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// StockRepository define el puerto para leer y actualizar existencias de un insumo.
// Se usa dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate obtiene el insumo bloqueando su fila; (nil, nil) si no existe.
	GetForUpdate(ctx context.Context, merchantID, inventoryID string) (*entity.InventoryItem, error)
	UpdateStock(ctx context.Context, merchantID, inventoryID string, stock int64) error
}
