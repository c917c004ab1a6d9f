package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// CheckoutService: сценарии оформления, которые нужны транспортному слою.
type CheckoutService interface {
	CreatePaymentIntent(ctx context.Context, lines []domain.CartLine) (*domain.CheckoutResult, error)
	PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatus, error)
}
