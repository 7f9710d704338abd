package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo lectura de pedidos sobre la colección orders.
type OrderRepo struct {
	col *mongo.Collection
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(db *mongo.Database) *OrderRepo {
	return &OrderRepo{col: db.Collection(CollectionOrders)}
}

type orderDoc struct {
	ID          bson.RawValue `bson:"_id"`
	MerchantID  string        `bson:"merchantId"`
	OrderNumber bson.RawValue `bson:"orderNumber"`
	TableNumber bson.RawValue `bson:"tableNumber"`
	Items       bson.RawValue `bson:"items"`
	TotalAmount bson.RawValue `bson:"totalAmount"`
	CreatedAt   time.Time     `bson:"createdAt"`
}

func (d orderDoc) toEntity() (*entity.Order, error) {
	total, err := decimalFromRaw(d.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("totalAmount: %w", err)
	}
	o := &entity.Order{
		ID:          idString(d.ID),
		MerchantID:  d.MerchantID,
		OrderNumber: textFromRaw(d.OrderNumber),
		TableNumber: textFromRaw(d.TableNumber),
		TotalAmount: total,
		CreatedAt:   d.CreatedAt,
	}
	// items ausente o null deja Items en nil (pedido sin ítems).
	if d.Items.Type == bson.TypeArray {
		o.Items = []entity.OrderItem{}
		if err := decodeViaJSON(d.Items, &o.Items); err != nil {
			return nil, fmt.Errorf("items: %w", err)
		}
	}
	return o, nil
}

// GetByID obtiene un pedido del comercio.
func (r *OrderRepo) GetByID(ctx context.Context, merchantID, id string) (*entity.Order, error) {
	var doc orderDoc
	err := r.col.FindOne(ctx, byMerchantAndIDs(merchantID, id)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return doc.toEntity()
}
