// Пакет catalog: доверенный каталог товаров, единственный источник цен и названий
// для ценового движка, API каталога и проверки статуса платежа.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
)

var _ ports.ProductCatalog = (*Catalog)(nil)

// ErrInvalidCatalog: базовая ошибка построения каталога.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog: неизменяемая таблица id -> товар.
// После New не модифицируется, поэтому конкурентное чтение не требует блокировок.
type Catalog struct {
	byID  map[string]domain.Product
	order []string // порядок выдачи в List совпадает с порядком загрузки
}

// New строит каталог и проверяет инварианты: уникальный непустой id,
// непустое название, строго положительная цена.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		byID:  make(map[string]domain.Product, len(products)),
		order: make([]string, 0, len(products)),
	}
	for i, p := range products {
		id := strings.TrimSpace(p.ID)
		if id == "" || id != p.ID {
			return nil, fmt.Errorf("%w: products[%d].id %q is empty or padded", ErrInvalidCatalog, i, p.ID)
		}
		if _, dup := c.byID[id]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %q", ErrInvalidCatalog, id)
		}
		if strings.TrimSpace(p.DisplayName) == "" {
			return nil, fmt.Errorf("%w: product %q has no display name", ErrInvalidCatalog, id)
		}
		if !p.UnitPrice.IsPositive() {
			return nil, fmt.Errorf("%w: product %q price must be positive, got %s", ErrInvalidCatalog, id, p.UnitPrice)
		}
		c.byID[id] = p
		c.order = append(c.order, id)
	}
	return c, nil
}

// MustNew: как New, но паникует; для статических таблиц.
func MustNew(products []domain.Product) *Catalog {
	c, err := New(products)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup: товар по id. Сравнение точное, без нормализации регистра.
func (c *Catalog) Lookup(productID string) (domain.Product, bool) {
	p, ok := c.byID[productID]
	return p, ok
}

// List: копия всех товаров в порядке загрузки.
func (c *Catalog) List() []domain.Product {
	out := make([]domain.Product, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByCategory: товары одной категории; пустая категория возвращает весь каталог.
func ByCategory(c ports.ProductCatalog, category string) []domain.Product {
	all := c.List()
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return all
	}
	out := all[:0]
	for _, p := range all {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Len: число товаров.
func (c *Catalog) Len() int { return len(c.order) }

// Load: снимок каталога из репозитория (Postgres) на момент старта.
// Дальше каталог неизменен, как и встроенный.
func Load(ctx context.Context, repo ports.ProductRepository) (*Catalog, error) {
	products, err := repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: repository returned no products", ErrInvalidCatalog)
	}
	return New(products)
}
