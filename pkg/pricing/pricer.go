package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/shopspring/decimal"
)

// Проверка, что CartPricer удовлетворяет интерфейсу CartPricer.
var _ ports.CartPricer = (*CartPricer)(nil)

// Значения политики по умолчанию.
const DefaultMaxQuantity = 10

// DefaultSizes: допустимые размеры (P, M, G, GG).
func DefaultSizes() []string { return []string{"P", "M", "G", "GG"} }

// Policy: бизнес-правила проверки строки корзины.
type Policy struct {
	MaxQuantity int      // верхняя граница количества в одной строке (включительно)
	Sizes       []string // закрытый список размеров
}

// DefaultPolicy: политика магазина по умолчанию.
func DefaultPolicy() Policy {
	return Policy{MaxQuantity: DefaultMaxQuantity, Sizes: DefaultSizes()}
}

// CartPricer: проверяет корзину по доверенному каталогу и считает итоги.
// Чистая функция от (каталог, политика, строки): побочных эффектов нет.
type CartPricer struct {
	catalog     ports.ProductCatalog
	maxQuantity decimal.Decimal
	sizes       map[string]struct{}
	sizesHint   string
}

// NewCartPricer: DI-конструктор. Некорректные значения политики заменяются дефолтами.
func NewCartPricer(catalog ports.ProductCatalog, policy Policy) *CartPricer {
	maxQty := policy.MaxQuantity
	if maxQty <= 0 {
		maxQty = DefaultMaxQuantity
	}

	sizes := make(map[string]struct{}, len(policy.Sizes))
	for _, s := range policy.Sizes {
		if s = strings.TrimSpace(s); s != "" {
			sizes[s] = struct{}{}
		}
	}
	if len(sizes) == 0 {
		for _, s := range DefaultSizes() {
			sizes[s] = struct{}{}
		}
	}

	hint := make([]string, 0, len(sizes))
	for s := range sizes {
		hint = append(hint, s)
	}
	sort.Strings(hint)

	return &CartPricer{
		catalog:     catalog,
		maxQuantity: decimal.NewFromInt(int64(maxQty)),
		sizes:       sizes,
		sizesHint:   strings.Join(hint, ", "),
	}
}

// MaxQuantity: действующая верхняя граница количества.
func (p *CartPricer) MaxQuantity() int { return int(p.maxQuantity.IntPart()) }

// Price проверяет строки в порядке: существование товара, количество, размер.
// Первая ошибка прерывает весь запрос. Цены и названия берутся только из каталога.
func (p *CartPricer) Price(_ context.Context, lines []domain.CartLine) (*domain.PricedOrder, error) {
	if len(lines) == 0 {
		return nil, domain.NewError(domain.KindEmptyCart, "cart must contain at least one item", nil)
	}

	order := &domain.PricedOrder{
		Lines:      make([]domain.ValidatedLine, 0, len(lines)),
		GrandTotal: decimal.Zero,
	}

	for i := range lines {
		line := &lines[i]

		product, ok := p.catalog.Lookup(line.ProductID)
		if !ok {
			return nil, &domain.Error{
				Kind:      domain.KindUnknownProduct,
				Message:   fmt.Sprintf("unknown product: %s", line.ProductID),
				Field:     fmt.Sprintf("items[%d].productId", i),
				Line:      i,
				ProductID: line.ProductID,
			}
		}

		qty, ok := p.parseQuantity(line.Quantity)
		if !ok {
			return nil, &domain.Error{
				Kind:    domain.KindInvalidQuantity,
				Message: fmt.Sprintf("quantity must be an integer between 1 and %s", p.maxQuantity),
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Line:    i,
			}
		}

		if _, ok := p.sizes[line.SelectedSize]; !ok {
			return nil, &domain.Error{
				Kind:    domain.KindInvalidSize,
				Message: fmt.Sprintf("size must be one of %s", p.sizesHint),
				Field:   fmt.Sprintf("items[%d].selectedSize", i),
				Line:    i,
			}
		}

		subtotal := product.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
		order.Lines = append(order.Lines, domain.ValidatedLine{
			ProductID:    product.ID,
			DisplayName:  product.DisplayName,
			UnitPrice:    product.UnitPrice,
			Quantity:     qty,
			SelectedSize: line.SelectedSize,
			LineSubtotal: subtotal,
		})
		order.GrandTotal = order.GrandTotal.Add(subtotal)
	}

	return order, nil
}

// maxQuantityExp: допустимый модуль десятичной экспоненты количества.
// "2.0" и "1e1" проходят; 1e99999999 отсекается до любой арифметики над decimal.
const maxQuantityExp = 2

// parseQuantity: целое число в [1, maxQuantity]. "2.0" считается целым, "2.5" нет.
func (p *CartPricer) parseQuantity(raw json.Number) (int, bool) {
	s := strings.TrimSpace(raw.String())
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return p.quantityInRange(n)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	// сравнение с большой экспонентой масштабирует через big.Int до 10^exp
	if exp := d.Exponent(); exp > maxQuantityExp || exp < -maxQuantityExp {
		return 0, false
	}
	if !d.IsInteger() || d.LessThan(decimal.NewFromInt(1)) || d.GreaterThan(p.maxQuantity) {
		return 0, false
	}
	return int(d.IntPart()), true
}

func (p *CartPricer) quantityInRange(n int64) (int, bool) {
	if n < 1 || n > p.maxQuantity.IntPart() {
		return 0, false
	}
	return int(n), true
}
