package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de pedidos. Las líneas viven en la columna JSONB items; NULL significa sin ítems.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// GetByID obtiene un pedido del comercio.
func (r *OrderRepo) GetByID(ctx context.Context, merchantID, id string) (*entity.Order, error) {
	query := `
		SELECT id, merchant_id, COALESCE(order_number, ''), COALESCE(table_number, ''), items, total_amount, created_at
		FROM orders WHERE merchant_id = $1 AND id = $2`
	var (
		o     entity.Order
		items []byte
	)
	err := r.q.QueryRow(ctx, query, merchantID, id).Scan(
		&o.ID, &o.MerchantID, &o.OrderNumber, &o.TableNumber, &items, &o.TotalAmount, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := decodeJSONB(items, &o.Items, "order items"); err != nil {
		return nil, err
	}
	return &o, nil
}
