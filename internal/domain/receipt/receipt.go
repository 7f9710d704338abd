package receipt

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/domain"
	"github.com/jhoicas/Comanda-api/internal/domain/entity"
)

// Receipt datos de un recibo de caja listos para imprimir o exportar.
type Receipt struct {
	BillNumber  string          `json:"billNumber"`
	OrderID     string          `json:"orderId"`
	OrderNumber string          `json:"orderNumber,omitempty"`
	EmployeeID  string          `json:"employeeId"`
	TableNumber string          `json:"tableNumber"`
	StoreName   string          `json:"storeName"`
	Items       []LineItem      `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Total       decimal.Decimal `json:"total"`
	IssuedAt    time.Time       `json:"issuedAt"`
}

// Generator arma recibos con una fuente de números de cuenta y un reloj inyectables.
type Generator struct {
	Bills BillNumberSource
	Now   func() time.Time
}

// NewGenerator construye el generador. bills nil usa números aleatorios.
func NewGenerator(bills BillNumberSource) *Generator {
	if bills == nil {
		bills = RandomBillNumbers{}
	}
	return &Generator{Bills: bills, Now: time.Now}
}

// Generate agrupa los ítems del pedido y calcula subtotal y total. Falla si el pedido
// es nil o no trae ítems. Usa existingBillNumber si viene (debe ser un número de cuenta
// válido), si no pide uno nuevo.
func (g *Generator) Generate(
	ctx context.Context,
	order *entity.Order,
	employeeID, tableNumber, storeName, existingBillNumber string,
) (*Receipt, error) {
	if order == nil {
		return nil, domain.ErrOrderRequired
	}
	if order.Items == nil {
		return nil, domain.ErrOrderItemsMissing
	}
	if existingBillNumber != "" && !IsBillNumber(existingBillNumber) {
		return nil, fmt.Errorf("%w: número de cuenta %q", domain.ErrInvalidInput, existingBillNumber)
	}

	items := MergeItems(order.Items)
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.TotalPrice)
	}

	billNumber := existingBillNumber
	if billNumber == "" {
		n, err := g.Bills.Next(ctx)
		if err != nil {
			return nil, fmt.Errorf("número de cuenta: %w", err)
		}
		billNumber = n
	}

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	return &Receipt{
		BillNumber:  billNumber,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		EmployeeID:  employeeID,
		TableNumber: tableNumber,
		StoreName:   storeName,
		Items:       items,
		Subtotal:    subtotal,
		Total:       subtotal,
		IssuedAt:    now(),
	}, nil
}

// GenerateReceiptData variante sin dependencias: números de cuenta aleatorios y reloj del sistema.
func GenerateReceiptData(order *entity.Order, employeeID, tableNumber, storeName, existingBillNumber string) (*Receipt, error) {
	return NewGenerator(nil).Generate(context.Background(), order, employeeID, tableNumber, storeName, existingBillNumber)
}
