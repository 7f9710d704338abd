package billing

import (
	"context"

	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
)

// ReceiptPDFGenerator genera la representación PDF de un recibo de caja.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, r *receipt.Receipt) ([]byte, error)
}
