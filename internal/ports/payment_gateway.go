package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// PaymentGateway: внешний платёжный провайдер.
// Ошибки классифицируются через domain.ErrGatewayUnavailable и domain.ErrPaymentNotFound,
// всё остальное считается ошибкой шлюза.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, req domain.IntentRequest) (domain.PaymentIntent, error)
	GetPaymentIntent(ctx context.Context, id string) (domain.PaymentStatus, error)
}
