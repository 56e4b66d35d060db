package payments

import (
	"context"
	"errors"
)

// ErrDeclined indica que el proveedor rechazó el cobro.
var ErrDeclined = errors.New("payment declined")

// Charge describe una compra de comida. Price está en la unidad que use el proveedor.
type Charge struct {
	UserID string
	Amount int
	Price  float64
}

// Authorizer autoriza un cobro antes de acreditar comida.
type Authorizer interface {
	Authorize(ctx context.Context, c Charge) error
}
