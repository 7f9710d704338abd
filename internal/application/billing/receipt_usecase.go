package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comanda-api/internal/application/dto"
	"github.com/jhoicas/Comanda-api/internal/domain"
	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// ReceiptUseCase agrupa líneas de pedido y arma recibos de caja.
type ReceiptUseCase struct {
	orderRepo        repository.OrderRepository
	generator        *receipt.Generator
	defaultStoreName string
	log              *logger.Logger
}

// NewReceiptUseCase construye el caso de uso. generator nil usa números de cuenta aleatorios.
func NewReceiptUseCase(
	orderRepo repository.OrderRepository,
	generator *receipt.Generator,
	defaultStoreName string,
	log *logger.Logger,
) *ReceiptUseCase {
	if generator == nil {
		generator = receipt.NewGenerator(nil)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReceiptUseCase{
		orderRepo:        orderRepo,
		generator:        generator,
		defaultStoreName: defaultStoreName,
		log:              log.Component("receipts"),
	}
}

// MergeItems agrupa las líneas iguales (mismo plato y opciones) sumando cantidades.
func (uc *ReceiptUseCase) MergeItems(in dto.OrderItemsRequest) dto.MergeItemsResponse {
	return dto.MergeItemsResponse{Items: toLineResponses(receipt.MergeItems(in.Items))}
}

// BuildReceipt carga el pedido del comercio y arma su recibo.
// La mesa y el nombre del local del request tienen prioridad sobre los del pedido y la configuración.
func (uc *ReceiptUseCase) BuildReceipt(
	ctx context.Context,
	merchantID, employeeID, orderID string,
	in dto.GenerateReceiptRequest,
) (*receipt.Receipt, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, merchantID, orderID)
	if err != nil {
		return nil, fmt.Errorf("obtener pedido: %w", err)
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}

	table := in.TableNumber
	if table == "" {
		table = order.TableNumber
	}
	store := in.StoreName
	if store == "" {
		store = uc.defaultStoreName
	}

	r, err := uc.generator.Generate(ctx, order, employeeID, table, store, in.BillNumber)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("order_id", orderID).
		Str("merchant_id", merchantID).
		Str("bill_number", r.BillNumber).
		Bool("reprint", in.BillNumber != "").
		Msg("recibo generado")
	return r, nil
}

// GenerateForOrder arma el recibo del pedido y lo adapta al DTO de respuesta.
func (uc *ReceiptUseCase) GenerateForOrder(
	ctx context.Context,
	merchantID, employeeID, orderID string,
	in dto.GenerateReceiptRequest,
) (*dto.ReceiptResponse, error) {
	r, err := uc.BuildReceipt(ctx, merchantID, employeeID, orderID, in)
	if err != nil {
		return nil, err
	}
	return &dto.ReceiptResponse{
		BillNumber:  r.BillNumber,
		OrderID:     r.OrderID,
		OrderNumber: r.OrderNumber,
		EmployeeID:  r.EmployeeID,
		TableNumber: r.TableNumber,
		StoreName:   r.StoreName,
		Items:       toLineResponses(r.Items),
		Subtotal:    r.Subtotal,
		Total:       r.Total,
		IssuedAt:    r.IssuedAt,
	}, nil
}

func toLineResponses(lines []receipt.LineItem) []dto.ReceiptLineResponse {
	out := make([]dto.ReceiptLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ReceiptLineResponse{
			DishID:          l.DishID,
			Name:            l.Name,
			SelectedOptions: l.SelectedOptions,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.TotalPrice,
		})
	}
	return out
}
