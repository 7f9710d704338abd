package repository

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// OrderRepository define el puerto de lectura de pedidos.
type OrderRepository interface {
	// GetByID devuelve (nil, nil) si el pedido no existe para el comercio.
	GetByID(ctx context.Context, merchantID, id string) (*entity.Order, error)
}
