package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comanda-api/internal/application/dto"
	"github.com/jhoicas/Comanda-api/internal/domain"
	"github.com/jhoicas/Comanda-api/internal/domain/entity"
	"github.com/jhoicas/Comanda-api/internal/domain/inventory"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// DeductStockUseCase descuenta del inventario el consumo de un pedido de forma transaccional,
// con bloqueo de fila (SELECT FOR UPDATE) por insumo y Commit/Rollback.
type DeductStockUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	usage     *UsageUseCase
	log       *logger.Logger
	now       func() time.Time
}

// NewDeductStockUseCase construye el caso de uso. log puede ser nil.
func NewDeductStockUseCase(
	txRunner TxRunner,
	orderRepo repository.OrderRepository,
	usage *UsageUseCase,
	log *logger.Logger,
) *DeductStockUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &DeductStockUseCase{
		txRunner:  txRunner,
		orderRepo: orderRepo,
		usage:     usage,
		log:       log.Component("deduct_stock"),
		now:       time.Now,
	}
}

// DeductForOrder bloquea los insumos que consume el pedido, verifica existencias y, si alcanzan,
// descuenta y registra un movimiento OUT por insumo. Si falta alguno no se descuenta nada y se
// devuelve *inventory.InsufficientStockError con el déficit completo.
// Un pedido ya descontado devuelve domain.ErrStockAlreadyDeducted.
// Los insumos ilimitados no se descuentan ni generan movimiento.
func (uc *DeductStockUseCase) DeductForOrder(ctx context.Context, merchantID, userID, orderID string) (*dto.DeductStockResponse, error) {
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
	if order.Items == nil {
		return nil, domain.ErrOrderItemsMissing
	}

	items, err := uc.usage.ResolveDishes(ctx, merchantID, order.Items)
	if err != nil {
		return nil, err
	}
	usage := inventory.OrderInventoryUsage(items)

	// Orden fijo de bloqueo para evitar deadlocks entre descuentos concurrentes.
	ids := usageIDs(usage)
	sort.Strings(ids)

	now := uc.now()
	txID := uuid.New().String()
	resp := &dto.DeductStockResponse{TransactionID: txID, OrderID: orderID, Movements: []dto.MovementResponse{}}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, stockRepo repository.StockRepository, movRepo repository.InventoryMovementRepository) error {
		locked := make([]entity.InventoryItem, 0, len(ids))
		for _, id := range ids {
			item, err := stockRepo.GetForUpdate(ctx, merchantID, id)
			if err != nil {
				return err
			}
			if item != nil {
				locked = append(locked, *item)
			}
		}

		// Se consulta con las filas ya bloqueadas: un segundo descuento concurrente espera al primero.
		done, err := movRepo.ExistsForOrder(ctx, merchantID, orderID)
		if err != nil {
			return err
		}
		if done {
			return domain.ErrStockAlreadyDeducted
		}

		check := inventory.CheckSufficiency(usage, locked)
		if !check.IsSufficient {
			return &inventory.InsufficientStockError{Items: check.InsufficientItems}
		}

		for _, item := range locked {
			if item.IsUnlimited() {
				continue
			}
			required := usage[item.ID]
			units := requiredUnits(required)
			if units <= 0 {
				continue
			}
			stockAfter := item.Stock - units
			if err := stockRepo.UpdateStock(ctx, merchantID, item.ID, stockAfter); err != nil {
				return err
			}
			mov := &entity.InventoryMovement{
				ID:            uuid.New().String(),
				TransactionID: txID,
				MerchantID:    merchantID,
				InventoryID:   item.ID,
				OrderID:       orderID,
				Type:          entity.MovementTypeOUT,
				Quantity:      decimal.NewFromInt(-units),
				StockAfter:    stockAfter,
				CreatedAt:     now,
				CreatedBy:     userID,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
			resp.Movements = append(resp.Movements, dto.MovementResponse{
				InventoryID: item.ID,
				Required:    required,
				Quantity:    mov.Quantity,
				StockAfter:  stockAfter,
			})
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("order_id", orderID).Str("merchant_id", merchantID).Msg("descuento de stock rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("order_id", orderID).
		Str("merchant_id", merchantID).
		Str("transaction_id", txID).
		Int("movements", len(resp.Movements)).
		Msg("stock descontado")
	return resp, nil
}
