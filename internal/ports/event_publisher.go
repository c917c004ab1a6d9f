package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// EventPublisher: публикация доменных событий. Не должна блокировать запрос.
type EventPublisher interface {
	PublishPaymentIntentCreated(ctx context.Context, event *domain.PaymentIntentCreated) error
}
