package payments

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
)

var _ ports.PaymentGateway = Unconfigured{}

// Unconfigured: шлюз-заглушка, когда ключ Stripe не задан.
// Сервис продолжает работать (каталог, валидация), а платежи отвечают GatewayUnavailable.
type Unconfigured struct{}

func (Unconfigured) CreatePaymentIntent(context.Context, domain.IntentRequest) (domain.PaymentIntent, error) {
	return domain.PaymentIntent{}, fmt.Errorf("%w: stripe is not configured", domain.ErrGatewayUnavailable)
}

func (Unconfigured) GetPaymentIntent(context.Context, string) (domain.PaymentStatus, error) {
	return domain.PaymentStatus{}, fmt.Errorf("%w: stripe is not configured", domain.ErrGatewayUnavailable)
}
