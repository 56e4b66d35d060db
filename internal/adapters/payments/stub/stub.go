// Package stub aprueba todos los cobros (no hay proveedor real configurado).
package stub

import (
	"context"

	"virtual-pet/internal/platform/logger"
	"virtual-pet/internal/ports/payments"
)

type Authorizer struct {
	log logger.Logger
}

func New(log logger.Logger) *Authorizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Authorizer{log: log}
}

func (a *Authorizer) Authorize(ctx context.Context, c payments.Charge) error {
	a.log.Debug("payment approved (stub)", map[string]any{
		"user_id": c.UserID,
		"amount":  c.Amount,
		"price":   c.Price,
	})
	return nil
}
