package postgres

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Проверка, что CatalogRepository удовлетворяет интерфейсу ProductRepository.
var _ ports.ProductRepository = (*CatalogRepository)(nil)

// CatalogRepository: источник каталога в Postgres. Читается один раз при старте.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

// NewCatalogRepository - конструктор CatalogRepository.
func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

// ListProducts: активные товары в порядке витрины.
// Цена читается текстом: numeric -> decimal без потери точности.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, display_name, unit_price::text, category
		FROM products
		WHERE active
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	products, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Product, error) {
		var (
			p     domain.Product
			price string
		)
		if err := row.Scan(&p.ID, &p.DisplayName, &price, &p.Category); err != nil {
			return domain.Product{}, err
		}
		d, err := decimal.NewFromString(price)
		if err != nil {
			return domain.Product{}, fmt.Errorf("product %s: parse price %q: %w", p.ID, price, err)
		}
		p.UnitPrice = d
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan products: %w", err)
	}
	return products, nil
}
