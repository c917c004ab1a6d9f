package pricing_test

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/catalog"
	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func line(id string, qty json.Number, size string) domain.CartLine {
	return domain.CartLine{ProductID: id, Quantity: qty, SelectedSize: size}
}

func newPricer() *pricing.CartPricer {
	return pricing.NewCartPricer(catalog.Builtin(), pricing.DefaultPolicy())
}

func mustKind(t *testing.T, err error, want domain.ErrorKind) *domain.Error {
	t.Helper()
	var de *domain.Error
	if !errors.As(err, &de) {
		t.Fatalf("want *domain.Error of kind %s, got %v", want, err)
	}
	if de.Kind != want {
		t.Fatalf("want kind %s, got %s (%v)", want, de.Kind, err)
	}
	return de
}

func TestPrice_FlamengoTwoShirts(t *testing.T) {
	order, err := newPricer().Price(context.Background(), []domain.CartLine{
		line("flamengo-2024", domain.Qty(2), "M"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !order.GrandTotal.Equal(dec("459.80")) {
		t.Fatalf("grand total: want 459.80, got %s", order.GrandTotal)
	}
	if len(order.Lines) != 1 {
		t.Fatalf("want 1 line, got %d", len(order.Lines))
	}
	l := order.Lines[0]
	if !l.LineSubtotal.Equal(dec("459.80")) || !l.UnitPrice.Equal(dec("229.90")) {
		t.Fatalf("unexpected line: %+v", l)
	}
	if l.DisplayName != "Flamengo Home 2024 - Oficial" || l.Quantity != 2 || l.SelectedSize != "M" {
		t.Fatalf("unexpected line: %+v", l)
	}
}

func TestPrice_EveryProductQuantityAndSize(t *testing.T) {
	c := catalog.Builtin()
	p := pricing.NewCartPricer(c, pricing.DefaultPolicy())
	ctx := context.Background()

	for _, prod := range c.List() {
		for qty := 1; qty <= pricing.DefaultMaxQuantity; qty++ {
			for _, size := range pricing.DefaultSizes() {
				order, err := p.Price(ctx, []domain.CartLine{line(prod.ID, domain.Qty(qty), size)})
				if err != nil {
					t.Fatalf("%s x%d %s: unexpected error %v", prod.ID, qty, size, err)
				}
				want := prod.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
				if !order.Lines[0].LineSubtotal.Equal(want) || !order.GrandTotal.Equal(want) {
					t.Fatalf("%s x%d: want %s, got line=%s total=%s",
						prod.ID, qty, want, order.Lines[0].LineSubtotal, order.GrandTotal)
				}
			}
		}
	}
}

func TestPrice_MultipleLinesSumAndKeepOrder(t *testing.T) {
	order, err := newPricer().Price(context.Background(), []domain.CartLine{
		line("real-madrid-2024", domain.Qty(1), "G"),
		line("brasil-retro-70", domain.Qty(3), "GG"),
		line("real-madrid-2024", domain.Qty(2), "P"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 299.90 + 3*179.90 + 2*299.90 = 1439.40
	if !order.GrandTotal.Equal(dec("1439.40")) {
		t.Fatalf("grand total: want 1439.40, got %s", order.GrandTotal)
	}
	ids := []string{order.Lines[0].ProductID, order.Lines[1].ProductID, order.Lines[2].ProductID}
	if !reflect.DeepEqual(ids, []string{"real-madrid-2024", "brasil-retro-70", "real-madrid-2024"}) {
		t.Fatalf("line order changed: %v", ids)
	}
}

func TestPrice_EmptyCart(t *testing.T) {
	for _, lines := range [][]domain.CartLine{nil, {}} {
		_, err := newPricer().Price(context.Background(), lines)
		mustKind(t, err, domain.KindEmptyCart)
	}
}

func TestPrice_UnknownProduct(t *testing.T) {
	_, err := newPricer().Price(context.Background(), []domain.CartLine{
		line("flamengo-2024", domain.Qty(1), "M"),
		line("nonexistent", domain.Qty(1), "M"),
	})
	de := mustKind(t, err, domain.KindUnknownProduct)
	if de.ProductID != "nonexistent" || de.Line != 1 || de.Field != "items[1].productId" {
		t.Fatalf("unexpected error details: %+v", de)
	}
}

func TestPrice_InvalidQuantity(t *testing.T) {
	cases := []json.Number{"0", "-1", "11", "100", "2.5", "0.1", "", "1e400", "abc", "1e99999999", "1e999999", "1e-99999999", "99999999999999999999"}
	for _, qty := range cases {
		t.Run(string(qty), func(t *testing.T) {
			start := time.Now()
			_, err := newPricer().Price(context.Background(), []domain.CartLine{line("flamengo-2024", qty, "M")})
			if elapsed := time.Since(start); elapsed > time.Second {
				t.Fatalf("quantity %q rejected too slowly: %s", qty, elapsed)
			}
			de := mustKind(t, err, domain.KindInvalidQuantity)
			if de.Field != "items[0].quantity" {
				t.Fatalf("unexpected field: %q", de.Field)
			}
		})
	}
}

func TestPrice_ExponentQuantityWithinBounds(t *testing.T) {
	order, err := newPricer().Price(context.Background(), []domain.CartLine{line("gremio-2024", "1e1", "P")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Lines[0].Quantity != 10 {
		t.Fatalf("want quantity 10, got %d", order.Lines[0].Quantity)
	}
}

func TestPrice_IntegralDecimalQuantityAccepted(t *testing.T) {
	order, err := newPricer().Price(context.Background(), []domain.CartLine{line("gremio-2024", "2.0", "P")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.Lines[0].Quantity != 2 || !order.GrandTotal.Equal(dec("439.80")) {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestPrice_InvalidSize(t *testing.T) {
	for _, size := range []string{"", "XL", "m", "PP", " M"} {
		t.Run(size, func(t *testing.T) {
			_, err := newPricer().Price(context.Background(), []domain.CartLine{line("flamengo-2024", domain.Qty(1), size)})
			mustKind(t, err, domain.KindInvalidSize)
		})
	}
}

// Порядок проверок: товар -> количество -> размер.
func TestPrice_CheckOrderIsFailFast(t *testing.T) {
	ctx := context.Background()
	p := newPricer()

	_, err := p.Price(ctx, []domain.CartLine{line("nonexistent", "0", "XL")})
	mustKind(t, err, domain.KindUnknownProduct)

	_, err = p.Price(ctx, []domain.CartLine{line("flamengo-2024", "0", "XL")})
	mustKind(t, err, domain.KindInvalidQuantity)

	// первая же плохая строка прерывает запрос, вторая не проверяется
	_, err = p.Price(ctx, []domain.CartLine{
		line("flamengo-2024", domain.Qty(1), "XL"),
		line("nonexistent", domain.Qty(1), "M"),
	})
	mustKind(t, err, domain.KindInvalidSize)
}

func TestPrice_Idempotent(t *testing.T) {
	lines := []domain.CartLine{
		line("psg-2024", domain.Qty(4), "G"),
		line("italia-2024", domain.Qty(1), "M"),
	}
	p := newPricer()
	first, err1 := p.Price(context.Background(), lines)
	second, err2 := p.Price(context.Background(), lines)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v / %v", err1, err2)
	}
	if !first.GrandTotal.Equal(second.GrandTotal) {
		t.Fatalf("totals differ: %s vs %s", first.GrandTotal, second.GrandTotal)
	}
	if !reflect.DeepEqual(pricing.NewOrderView(first), pricing.NewOrderView(second)) {
		t.Fatalf("line breakdown differs")
	}
}

func TestPolicy_CustomLimitsAndFallbacks(t *testing.T) {
	ctx := context.Background()
	c := catalog.Builtin()

	strict := pricing.NewCartPricer(c, pricing.Policy{MaxQuantity: 3, Sizes: []string{"M"}})
	if _, err := strict.Price(ctx, []domain.CartLine{line("flamengo-2024", domain.Qty(4), "M")}); err == nil {
		t.Fatalf("quantity 4 must be rejected with MaxQuantity=3")
	}
	_, err := strict.Price(ctx, []domain.CartLine{line("flamengo-2024", domain.Qty(1), "G")})
	mustKind(t, err, domain.KindInvalidSize)

	fallback := pricing.NewCartPricer(c, pricing.Policy{MaxQuantity: 0, Sizes: []string{" ", ""}})
	if fallback.MaxQuantity() != pricing.DefaultMaxQuantity {
		t.Fatalf("MaxQuantity fallback: want %d, got %d", pricing.DefaultMaxQuantity, fallback.MaxQuantity())
	}
	if _, err := fallback.Price(ctx, []domain.CartLine{line("flamengo-2024", domain.Qty(10), "GG")}); err != nil {
		t.Fatalf("default policy must accept 10 x GG, got %v", err)
	}
}
