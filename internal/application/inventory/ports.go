package inventory

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// fn debe usar el ctx recibido (en Mongo lleva la sesión de la transacción).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		stockRepo repository.StockRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
