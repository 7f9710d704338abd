package inventory

import (
	"fmt"

	"github.com/jhoicas/Comanda-api/internal/domain"
)

// InsufficientStockError acompaña a domain.ErrInsufficientStock con el detalle del déficit.
type InsufficientStockError struct {
	Items []ShortfallEntry
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %d insumo(s) con déficit", domain.ErrInsufficientStock, len(e.Items))
}

// Unwrap permite errors.Is(err, domain.ErrInsufficientStock).
func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }
