package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// PaymentStatusCache: кэш финальных статусов платежей.
// Требования к реализации: потокобезопасность; доступ по ключу не хуже O(1); возврат копий.
type PaymentStatusCache interface {
	// Get: (status, true) при попадании, (nil, false) при промахе/истечении.
	Get(ctx context.Context, paymentID string) (*domain.PaymentStatus, bool)

	// Set: сохранить/обновить статус.
	Set(ctx context.Context, status *domain.PaymentStatus) error
}
