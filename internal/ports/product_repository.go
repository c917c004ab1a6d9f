package ports

import (
	"context"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// ProductRepository: внешнее хранилище каталога, читается один раз при старте.
type ProductRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
}
