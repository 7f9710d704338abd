package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.InventoryItemRepository = (*InventoryItemRepo)(nil)

// InventoryItemRepo lectura de insumos sobre la colección inventory_items.
type InventoryItemRepo struct {
	col *mongo.Collection
}

// NewInventoryItemRepository construye el adaptador.
func NewInventoryItemRepository(db *mongo.Database) *InventoryItemRepo {
	return &InventoryItemRepo{col: db.Collection(CollectionInventory)}
}

type itemDoc struct {
	ID                   bson.RawValue `bson:"_id"`
	entity.InventoryItem `bson:",inline"`
}

func (d itemDoc) toEntity() entity.InventoryItem {
	it := d.InventoryItem
	it.ID = idString(d.ID)
	return it
}

func (r *InventoryItemRepo) find(ctx context.Context, filter bson.M) ([]entity.InventoryItem, error) {
	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	defer cur.Close(ctx)
	var out []entity.InventoryItem
	for cur.Next(ctx) {
		var doc itemDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode inventory item: %w", err)
		}
		out = append(out, doc.toEntity())
	}
	return out, cur.Err()
}

// ListByIDs insumos del comercio con los ids dados; los inexistentes se omiten.
func (r *InventoryItemRepo) ListByIDs(ctx context.Context, merchantID string, ids []string) ([]entity.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, byMerchantAndIDs(merchantID, ids...))
}
