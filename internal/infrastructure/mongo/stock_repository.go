package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo existencias de insumos. Pensado para usarse con el ctx de sesión de TxRunner.
type StockRepo struct {
	col *mongo.Collection
}

// NewStockRepository construye el adaptador.
func NewStockRepository(db *mongo.Database) *StockRepo {
	return &StockRepo{col: db.Collection(CollectionInventory)}
}

// GetForUpdate escribe lockedAt en el documento para tomar su bloqueo de escritura dentro de la
// transacción; un descuento concurrente sobre el mismo insumo falla con write conflict y se reintenta.
func (r *StockRepo) GetForUpdate(ctx context.Context, merchantID, inventoryID string) (*entity.InventoryItem, error) {
	var doc itemDoc
	err := r.col.FindOneAndUpdate(ctx,
		byMerchantAndIDs(merchantID, inventoryID),
		bson.M{"$set": bson.M{"lockedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	it := doc.toEntity()
	return &it, nil
}

// UpdateStock fija la existencia del insumo.
func (r *StockRepo) UpdateStock(ctx context.Context, merchantID, inventoryID string, stock int64) error {
	res, err := r.col.UpdateOne(ctx,
		byMerchantAndIDs(merchantID, inventoryID),
		bson.M{"$set": bson.M{"stock": stock, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update stock: insumo %s no encontrado", inventoryID)
	}
	return nil
}
