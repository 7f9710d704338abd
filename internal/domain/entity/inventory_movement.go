package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeOUT = "OUT" // consumo por pedido
)

// InventoryMovement registro de auditoría de un descuento de stock.
// TransactionID agrupa los movimientos de un mismo descuento; OrderID referencia el pedido.
type InventoryMovement struct {
	ID            string
	TransactionID string
	MerchantID    string
	InventoryID   string
	OrderID       string
	Type          string
	Quantity      decimal.Decimal // negativo en salidas
	StockAfter    int64
	CreatedAt     time.Time
	CreatedBy     string
}
