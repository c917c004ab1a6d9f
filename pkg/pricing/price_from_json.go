package pricing

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
)

// PriceCartFromJSON: разбор корзины из JSON и расчёт по каталогу.
func PriceCartFromJSON(ctx context.Context, pricer ports.CartPricer, raw []byte) (*domain.PricedOrder, error) {
	lines, err := DecodeCart(raw)
	if err != nil {
		return nil, err
	}
	return pricer.Price(ctx, lines)
}
