package receipt

import (
	"context"
	"math/rand/v2"
	"strconv"
)

// Rango de números de cuenta: 10 dígitos decimales.
const (
	MinBillNumber int64 = 1_000_000_000
	MaxBillNumber int64 = 9_999_999_999
)

// BillNumberSource entrega números de cuenta para recibos nuevos.
type BillNumberSource interface {
	Next(ctx context.Context) (string, error)
}

// RandomBillNumbers genera números al azar sin verificar colisiones.
type RandomBillNumbers struct{}

// Next implementa BillNumberSource.
func (RandomBillNumbers) Next(_ context.Context) (string, error) {
	return NewBillNumber(), nil
}

// NewBillNumber número de cuenta aleatorio en [MinBillNumber, MaxBillNumber].
func NewBillNumber() string {
	n := MinBillNumber + rand.Int64N(MaxBillNumber-MinBillNumber+1)
	return strconv.FormatInt(n, 10)
}

// IsBillNumber indica si s tiene la forma de un número de cuenta válido.
func IsBillNumber(s string) bool {
	if len(s) != 10 {
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	return err == nil && n >= MinBillNumber && n <= MaxBillNumber
}
