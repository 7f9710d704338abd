package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Comanda-api/internal/domain"
	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
)

var _ receipt.BillNumberSource = (*BillNumberAllocator)(nil)

const billKeyPrefix = "comanda:bill:"

// reserver subconjunto de *redis.Client usado para reservar claves.
type reserver interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.BoolCmd
}

// BillNumberAllocator reserva números de cuenta con SET NX: un número ya emitido dentro del TTL
// no se vuelve a entregar. Tras maxAttempts colisiones devuelve domain.ErrBillNumberExhausted.
type BillNumberAllocator struct {
	client      reserver
	ttl         time.Duration
	maxAttempts int
	candidate   func() string
}

// NewBillNumberAllocator construye el asignador. maxAttempts < 1 se trata como 1.
func NewBillNumberAllocator(client *goredis.Client, ttl time.Duration, maxAttempts int) *BillNumberAllocator {
	return newAllocator(client, ttl, maxAttempts, receipt.NewBillNumber)
}

func newAllocator(client reserver, ttl time.Duration, maxAttempts int, candidate func() string) *BillNumberAllocator {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &BillNumberAllocator{client: client, ttl: ttl, maxAttempts: maxAttempts, candidate: candidate}
}

// Next devuelve un número de cuenta de 10 dígitos reservado en Redis.
func (a *BillNumberAllocator) Next(ctx context.Context) (string, error) {
	for i := 0; i < a.maxAttempts; i++ {
		n := a.candidate()
		ok, err := a.client.SetNX(ctx, billKeyPrefix+n, time.Now().Unix(), a.ttl).Result()
		if err != nil {
			return "", fmt.Errorf("reservar número de cuenta: %w", err)
		}
		if ok {
			return n, nil
		}
	}
	return "", domain.ErrBillNumberExhausted
}
