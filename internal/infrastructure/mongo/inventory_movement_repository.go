package mongo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo auditoría de descuentos sobre la colección inventory_movements.
type InventoryMovementRepo struct {
	col *mongo.Collection
}

// NewInventoryMovementRepository construye el adaptador.
func NewInventoryMovementRepository(db *mongo.Database) *InventoryMovementRepo {
	return &InventoryMovementRepo{col: db.Collection(CollectionMovements)}
}

func movementDoc(m *entity.InventoryMovement) bson.M {
	return bson.M{
		"_id":           m.ID,
		"transactionId": m.TransactionID,
		"merchantId":    m.MerchantID,
		"inventoryId":   m.InventoryID,
		"orderId":       m.OrderID,
		"type":          m.Type,
		"quantity":      m.Quantity.String(),
		"stockAfter":    m.StockAfter,
		"createdAt":     m.CreatedAt,
		"createdBy":     m.CreatedBy,
	}
}

// Create persiste un movimiento de inventario. La cantidad se guarda como string decimal exacto.
func (r *InventoryMovementRepo) Create(ctx context.Context, movement *entity.InventoryMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if _, err := r.col.InsertOne(ctx, movementDoc(movement)); err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ExistsForOrder indica si el pedido ya tiene salidas registradas.
func (r *InventoryMovementRepo) ExistsForOrder(ctx context.Context, merchantID, orderID string) (bool, error) {
	filter := bson.M{"merchantId": merchantID, "orderId": orderID, "type": entity.MovementTypeOUT}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check order movements: %w", err)
	}
	return n > 0, nil
}
