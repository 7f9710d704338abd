package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.DishRepository = (*DishRepo)(nil)

// DishRepo lectura del menú; inventory_config se guarda como JSONB con el mismo formato del API.
type DishRepo struct {
	q Querier
}

// NewDishRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDishRepository(q Querier) *DishRepo {
	return &DishRepo{q: q}
}

const dishColumns = `id, merchant_id, name, price, inventory_config`

func scanDish(row pgx.Row) (*entity.Dish, error) {
	var (
		d      entity.Dish
		id     string
		config []byte
	)
	if err := row.Scan(&id, &d.MerchantID, &d.Name, &d.Price, &config); err != nil {
		return nil, err
	}
	d.ID = entity.DishID(id)
	if len(config) > 0 {
		d.InventoryConfig = &entity.InventoryConfig{}
		if err := decodeJSONB(config, d.InventoryConfig, "inventory_config"); err != nil {
			return nil, err
		}
	}
	return &d, nil
}

// ListByIDs obtiene los platos pedidos en una sola consulta.
func (r *DishRepo) ListByIDs(ctx context.Context, merchantID string, ids []string) (map[string]*entity.Dish, error) {
	out := make(map[string]*entity.Dish, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	query := `SELECT ` + dishColumns + ` FROM dishes WHERE merchant_id = $1 AND id = ANY($2)`
	rows, err := r.q.Query(ctx, query, merchantID, ids)
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dish: %w", err)
		}
		out[string(d.ID)] = d
	}
	return out, rows.Err()
}
