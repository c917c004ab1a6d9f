package ports

import "github.com/Gunvolt24/jersey_checkout/internal/domain"

// ProductCatalog: доверенный источник цен и названий (только чтение).
// Реализация должна быть безопасна для конкурентного чтения без блокировок.
type ProductCatalog interface {
	Lookup(productID string) (domain.Product, bool)
	List() []domain.Product
}
