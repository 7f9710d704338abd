package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// GenerateReceiptRequest body para POST /api/orders/:id/receipt (y receipt.pdf).
// BillNumber reimprime un recibo existente; vacío genera uno nuevo.
// TableNumber vacío usa la mesa registrada en el pedido.
type GenerateReceiptRequest struct {
	TableNumber string `json:"tableNumber" validate:"max=20"`
	StoreName   string `json:"storeName" validate:"max=120"`
	BillNumber  string `json:"billNumber" validate:"omitempty,billnumber"`
}

// ReceiptLineResponse fila agrupada del recibo.
type ReceiptLineResponse struct {
	DishID          string                 `json:"dishId"`
	Name            string                 `json:"name"`
	SelectedOptions entity.SelectedOptions `json:"selectedOptions,omitempty"`
	Quantity        int                    `json:"quantity"`
	UnitPrice       decimal.Decimal        `json:"unitPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
}

// MergeItemsResponse resultado de POST /api/receipts/merge.
type MergeItemsResponse struct {
	Items []ReceiptLineResponse `json:"items"`
}

// ReceiptResponse recibo completo.
type ReceiptResponse struct {
	BillNumber  string                `json:"billNumber"`
	OrderID     string                `json:"orderId"`
	OrderNumber string                `json:"orderNumber,omitempty"`
	EmployeeID  string                `json:"employeeId"`
	TableNumber string                `json:"tableNumber"`
	StoreName   string                `json:"storeName"`
	Items       []ReceiptLineResponse `json:"items"`
	Subtotal    decimal.Decimal       `json:"subtotal"`
	Total       decimal.Decimal       `json:"total"`
	IssuedAt    time.Time             `json:"issuedAt"`
}
