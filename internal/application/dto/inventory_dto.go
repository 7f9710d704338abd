package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// OrderItemsRequest body para POST /api/inventory/{usage,check,usage-details} y /api/receipts/merge.
// Cada línea trae el plato embebido o su dishId (se resuelve contra el menú del comercio).
type OrderItemsRequest struct {
	Items []entity.OrderItem `json:"items" validate:"required,min=1,max=200,dive"`
}

// UsageResponse consumo agregado por insumo.
type UsageResponse struct {
	Usage map[string]decimal.Decimal `json:"usage"`
}

// ShortfallResponse déficit de un insumo.
type ShortfallResponse struct {
	InventoryID string          `json:"inventoryId"`
	Name        string          `json:"name"`
	Required    decimal.Decimal `json:"required"`
	Available   decimal.Decimal `json:"available"`
	Shortfall   decimal.Decimal `json:"shortfall"`
}

// SufficiencyResponse resultado de la verificación de stock de un pedido.
type SufficiencyResponse struct {
	IsSufficient      bool                       `json:"isSufficient"`
	InsufficientItems []ShortfallResponse        `json:"insufficientItems"`
	Usage             map[string]decimal.Decimal `json:"usage"`
}

// UsageDetailResponse fila descriptiva de consumo.
type UsageDetailResponse struct {
	InventoryID  string          `json:"inventoryId"`
	Name         string          `json:"name"`
	Category     string          `json:"category,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Required     decimal.Decimal `json:"required"`
	Available    decimal.Decimal `json:"available"`
	IsUnlimited  bool            `json:"isUnlimited"`
	IsKnown      bool            `json:"isKnown"`
	IsSufficient bool            `json:"isSufficient"`
}

// UsageDetailsResponse resultado de POST /api/inventory/usage-details.
type UsageDetailsResponse struct {
	Total int                   `json:"total"`
	Items []UsageDetailResponse `json:"items"`
}

// MovementResponse salida registrada para un insumo. Required es el consumo calculado;
// Quantity las unidades enteras descontadas (negativas).
type MovementResponse struct {
	InventoryID string          `json:"inventoryId"`
	Required    decimal.Decimal `json:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockAfter  int64           `json:"stockAfter"`
}

// DeductStockResponse resultado de POST /api/orders/:id/deduct-stock.
type DeductStockResponse struct {
	TransactionID string             `json:"transactionId"`
	OrderID       string             `json:"orderId"`
	Movements     []MovementResponse `json:"movements"`
}

// InsufficientStockResponse cuerpo 409 con el detalle del déficit.
type InsufficientStockResponse struct {
	Code              string              `json:"code"`
	Message           string              `json:"message"`
	InsufficientItems []ShortfallResponse `json:"insufficientItems"`
}
