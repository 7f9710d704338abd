package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comanda-api/internal/application/dto"
)

// ReceiptPDFUseCase genera el PDF imprimible del recibo de un pedido.
type ReceiptPDFUseCase struct {
	receipts  *ReceiptUseCase
	generator ReceiptPDFGenerator
}

// NewReceiptPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptPDFUseCase(receipts *ReceiptUseCase, generator ReceiptPDFGenerator) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{receipts: receipts, generator: generator}
}

// DownloadReceiptPDF arma el recibo del pedido y lo renderiza.
//
// Retorna:
//   - (pdfBytes, filename, nil)       si todo sale bien.
//   - domain.ErrNotFound              si el pedido no existe para el comercio.
//   - domain.ErrOrderItemsMissing     si el pedido no trae ítems.
//   - domain.ErrBillNumberExhausted   si no se pudo reservar número de cuenta.
func (uc *ReceiptPDFUseCase) DownloadReceiptPDF(
	ctx context.Context,
	merchantID, employeeID, orderID string,
	in dto.GenerateReceiptRequest,
) (pdfBytes []byte, filename string, err error) {
	r, err := uc.receipts.BuildReceipt(ctx, merchantID, employeeID, orderID, in)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err = uc.generator.GenerateReceiptPDF(ctx, r)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("recibo_%s.pdf", r.BillNumber)
	return pdfBytes, filename, nil
}
