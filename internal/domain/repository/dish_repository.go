package repository

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// DishRepository define el puerto de lectura del menú (platos con su InventoryConfig).
type DishRepository interface {
	// ListByIDs devuelve los platos encontrados indexados por id; los ausentes se omiten.
	ListByIDs(ctx context.Context, merchantID string, ids []string) (map[string]*entity.Dish, error)
}
