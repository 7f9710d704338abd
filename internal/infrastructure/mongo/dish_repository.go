package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.DishRepository = (*DishRepo)(nil)

// DishRepo lectura del menú sobre la colección dishes.
type DishRepo struct {
	col *mongo.Collection
}

// NewDishRepository construye el adaptador.
func NewDishRepository(db *mongo.Database) *DishRepo {
	return &DishRepo{col: db.Collection(CollectionDishes)}
}

type dishDoc struct {
	ID              bson.RawValue `bson:"_id"`
	MerchantID      string        `bson:"merchantId"`
	Name            string        `bson:"name"`
	Price           bson.RawValue `bson:"price"`
	InventoryConfig bson.RawValue `bson:"inventoryConfig"`
}

func (d dishDoc) toEntity() (*entity.Dish, error) {
	price, err := decimalFromRaw(d.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	dish := &entity.Dish{
		ID:         entity.DishID(idString(d.ID)),
		MerchantID: d.MerchantID,
		Name:       d.Name,
		Price:      price,
	}
	if d.InventoryConfig.Type == bson.TypeEmbeddedDocument {
		dish.InventoryConfig = &entity.InventoryConfig{}
		if err := decodeViaJSON(d.InventoryConfig, dish.InventoryConfig); err != nil {
			return nil, fmt.Errorf("inventoryConfig: %w", err)
		}
	}
	return dish, nil
}

// ListByIDs obtiene los platos pedidos en una sola consulta.
func (r *DishRepo) ListByIDs(ctx context.Context, merchantID string, ids []string) (map[string]*entity.Dish, error) {
	out := make(map[string]*entity.Dish, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := r.col.Find(ctx, byMerchantAndIDs(merchantID, ids...))
	if err != nil {
		return nil, fmt.Errorf("list dishes: %w", err)
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var doc dishDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode dish: %w", err)
		}
		d, err := doc.toEntity()
		if err != nil {
			return nil, fmt.Errorf("dish %s: %w", idString(doc.ID), err)
		}
		out[string(d.ID)] = d
	}
	return out, cur.Err()
}
