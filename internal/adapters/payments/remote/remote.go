// Package remote autoriza cobros contra un proveedor HTTP.
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"virtual-pet/internal/platform/httpclient"
	"virtual-pet/internal/ports/payments"
)

const chargesPath = "/charges"

var ErrNotConfigured = errors.New("payments: provider url not configured")

type chargeRequest struct {
	UserID string  `json:"userId"`
	Amount int     `json:"amount"`
	Price  float64 `json:"price"`
}

type chargeResponse struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}

type Authorizer struct {
	client *httpclient.Client
}

// New arma el cliente; apiKey (opcional) va como Bearer.
func New(baseURL, apiKey string, timeout time.Duration) (*Authorizer, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNotConfigured
	}
	c, err := httpclient.New(baseURL, timeout)
	if err != nil {
		return nil, err
	}
	if apiKey = strings.TrimSpace(apiKey); apiKey != "" {
		c.Headers["Authorization"] = "Bearer " + apiKey
	}
	return &Authorizer{client: c}, nil
}

// Authorize: 402/403 o approved=false => payments.ErrDeclined. Cualquier otra falla se propaga.
func (a *Authorizer) Authorize(ctx context.Context, c payments.Charge) error {
	var out chargeResponse
	err := a.client.PostJSON(ctx, chargesPath, chargeRequest{
		UserID: c.UserID,
		Amount: c.Amount,
		Price:  c.Price,
	}, &out)
	if err != nil {
		switch httpclient.StatusCode(err) {
		case http.StatusPaymentRequired, http.StatusForbidden:
			return fmt.Errorf("%w: %v", payments.ErrDeclined, err)
		}
		return fmt.Errorf("payments: authorize: %w", err)
	}
	if !out.Approved {
		return payments.ErrDeclined
	}
	return nil
}
