package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// CartPricer: проверка корзины и расчёт итогов по каталогу.
// При ошибке возвращает *domain.Error с видом EmptyCart/UnknownProduct/InvalidQuantity/InvalidSize.
type CartPricer interface {
	Price(ctx context.Context, lines []domain.CartLine) (*domain.PricedOrder, error)
}
