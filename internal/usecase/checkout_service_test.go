package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/catalog"
	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/payments"
	"github.com/Gunvolt24/jersey_checkout/internal/ports/mocks"
	"github.com/Gunvolt24/jersey_checkout/internal/usecase"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
)

const intentID = "pi_3Abc"

type noopLogger struct{}

func (noopLogger) Debugf(context.Context, string, ...any) {}
func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func realPricer() *pricing.CartPricer {
	return pricing.NewCartPricer(catalog.Builtin(), pricing.DefaultPolicy())
}

func flamengoCart() []domain.CartLine {
	return []domain.CartLine{{ProductID: "flamengo-2024", Quantity: domain.Qty(2), SelectedSize: "M"}}
}

type deps struct {
	gateway *mocks.MockPaymentGateway
	cache   *mocks.MockPaymentStatusCache
	events  *mocks.MockEventPublisher
}

func newService(t *testing.T, opts usecase.CheckoutOptions) (*usecase.CheckoutService, deps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := deps{
		gateway: mocks.NewMockPaymentGateway(ctrl),
		cache:   mocks.NewMockPaymentStatusCache(ctrl),
		events:  mocks.NewMockEventPublisher(ctrl),
	}
	return usecase.NewCheckoutService(realPricer(), d.gateway, d.cache, d.events, noopLogger{}, opts), d
}

func wantKind(t *testing.T, err error, kind domain.ErrorKind) {
	t.Helper()
	if got := domain.KindOf(err); got != kind {
		t.Fatalf("want kind %s, got %s (%v)", kind, got, err)
	}
}

func TestCreatePaymentIntent_Success(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})

	d.gateway.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req domain.IntentRequest) (domain.PaymentIntent, error) {
			if req.AmountMinor != 45980 || req.Currency != "brl" {
				t.Fatalf("unexpected amount/currency: %d %s", req.AmountMinor, req.Currency)
			}
			if req.Metadata[usecase.MetaTotal] != "459.80" || req.Metadata[usecase.MetaLineCount] != "1" {
				t.Fatalf("unexpected metadata: %v", req.Metadata)
			}
			var items []map[string]any
			if err := json.Unmarshal([]byte(req.Metadata[usecase.MetaOrderItems]), &items); err != nil || len(items) != 1 {
				t.Fatalf("order_items must be a JSON array of 1 line: %q err=%v", req.Metadata[usecase.MetaOrderItems], err)
			}
			if _, ok := ctx.Deadline(); !ok {
				t.Fatalf("gateway call must be bounded by a deadline")
			}
			return domain.PaymentIntent{ID: intentID, ClientSecret: intentID + "_secret_x", AmountMinor: 45980, Currency: "brl"}, nil
		})

	d.events.EXPECT().
		PublishPaymentIntentCreated(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, ev *domain.PaymentIntentCreated) error {
			if ev.PaymentIntentID != intentID || ev.AmountMinor != 45980 || !ev.Total.Equal(decimal.RequireFromString("459.80")) {
				t.Fatalf("unexpected event: %+v", ev)
			}
			if ev.EventID == "" || ev.CreatedAt.IsZero() {
				t.Fatalf("event id and timestamp must be set: %+v", ev)
			}
			return nil
		})

	res, err := svc.CreatePaymentIntent(context.Background(), flamengoCart())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PaymentIntentID != intentID || res.ClientSecret != intentID+"_secret_x" || res.Currency != "brl" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !res.Order.GrandTotal.Equal(decimal.RequireFromString("459.80")) {
		t.Fatalf("grand total: %s", res.Order.GrandTotal)
	}
}

func TestCreatePaymentIntent_ValidationFailure_NoGatewayCall(t *testing.T) {
	cases := map[string]struct {
		lines []domain.CartLine
		kind  domain.ErrorKind
	}{
		"empty":       {nil, domain.KindEmptyCart},
		"unknown":     {[]domain.CartLine{{ProductID: "nonexistent", Quantity: domain.Qty(1), SelectedSize: "M"}}, domain.KindUnknownProduct},
		"zero qty":    {[]domain.CartLine{{ProductID: "flamengo-2024", Quantity: domain.Qty(0), SelectedSize: "M"}}, domain.KindInvalidQuantity},
		"too many":    {[]domain.CartLine{{ProductID: "flamengo-2024", Quantity: domain.Qty(11), SelectedSize: "M"}}, domain.KindInvalidQuantity},
		"fractional":  {[]domain.CartLine{{ProductID: "flamengo-2024", Quantity: "2.5", SelectedSize: "M"}}, domain.KindInvalidQuantity},
		"bad size":    {[]domain.CartLine{{ProductID: "flamengo-2024", Quantity: domain.Qty(1), SelectedSize: "XL"}}, domain.KindInvalidSize},
		"second line": {append(flamengoCart(), domain.CartLine{ProductID: "nonexistent", Quantity: domain.Qty(1), SelectedSize: "M"}), domain.KindUnknownProduct},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, d := newService(t, usecase.CheckoutOptions{})
			d.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Times(0)
			d.events.EXPECT().PublishPaymentIntentCreated(gomock.Any(), gomock.Any()).Times(0)

			_, err := svc.CreatePaymentIntent(context.Background(), tc.lines)
			wantKind(t, err, tc.kind)
		})
	}
}

func TestCreatePaymentIntent_UnconfiguredGateway(t *testing.T) {
	svc := usecase.NewCheckoutService(realPricer(), payments.Unconfigured{}, nil, nil, noopLogger{}, usecase.CheckoutOptions{})

	_, err := svc.CreatePaymentIntent(context.Background(), flamengoCart())
	wantKind(t, err, domain.KindGatewayUnavailable)
}

func TestCreatePaymentIntent_GatewayFailures(t *testing.T) {
	cases := map[string]struct {
		intent domain.PaymentIntent
		err    error
		kind   domain.ErrorKind
	}{
		"unavailable":    {err: domain.ErrGatewayUnavailable, kind: domain.KindGatewayUnavailable},
		"deadline":       {err: context.DeadlineExceeded, kind: domain.KindGatewayUnavailable},
		"processor said": {err: errors.New("stripe: amount too small"), kind: domain.KindGatewayError},
		"not found":      {err: domain.ErrPaymentNotFound, kind: domain.KindGatewayError},
		"no secret":      {intent: domain.PaymentIntent{ID: intentID}, kind: domain.KindGatewayError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, d := newService(t, usecase.CheckoutOptions{})
			d.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Return(tc.intent, tc.err)
			d.events.EXPECT().PublishPaymentIntentCreated(gomock.Any(), gomock.Any()).Times(0)

			res, err := svc.CreatePaymentIntent(context.Background(), flamengoCart())
			if res != nil {
				t.Fatalf("failure must never look like success: %+v", res)
			}
			wantKind(t, err, tc.kind)
		})
	}
}

func TestCreatePaymentIntent_GatewayTimeout(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{GatewayTimeout: 20 * time.Millisecond})

	d.gateway.EXPECT().
		CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ domain.IntentRequest) (domain.PaymentIntent, error) {
			<-ctx.Done()
			return domain.PaymentIntent{}, ctx.Err()
		})

	_, err := svc.CreatePaymentIntent(context.Background(), flamengoCart())
	wantKind(t, err, domain.KindGatewayUnavailable)
}

// levelLogger: запоминает уровни записей.
type levelLogger struct{ levels []string }

func (l *levelLogger) Debugf(context.Context, string, ...any) { l.levels = append(l.levels, "debug") }
func (l *levelLogger) Infof(context.Context, string, ...any)  { l.levels = append(l.levels, "info") }
func (l *levelLogger) Warnf(context.Context, string, ...any)  { l.levels = append(l.levels, "warn") }
func (l *levelLogger) Errorf(context.Context, string, ...any) { l.levels = append(l.levels, "error") }

// Клиент закрыл соединение: шлюз не считается недоступным, в логе warn.
func TestPaymentStatus_CallerCanceled(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := mocks.NewMockPaymentGateway(ctrl)
	cache := mocks.NewMockPaymentStatusCache(ctrl)
	log := &levelLogger{}

	ctx, cancel := context.WithCancel(context.Background())
	cache.EXPECT().Get(gomock.Any(), intentID).Return(nil, false)
	gateway.EXPECT().GetPaymentIntent(gomock.Any(), intentID).
		DoAndReturn(func(gctx context.Context, _ string) (domain.PaymentStatus, error) {
			cancel()
			<-gctx.Done()
			return domain.PaymentStatus{}, gctx.Err()
		})

	canceledBefore := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "canceled"))
	unavailableBefore := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "unavailable"))

	svc := usecase.NewCheckoutService(realPricer(), gateway, cache, nil, log, usecase.CheckoutOptions{})
	_, err := svc.PaymentStatus(ctx, intentID)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled in chain, got %v", err)
	}

	if got := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "canceled")) - canceledBefore; got != 1 {
		t.Fatalf("canceled outcome: want +1, got %+v", got)
	}
	if got := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "unavailable")) - unavailableBefore; got != 0 {
		t.Fatalf("cancellation must not count as unavailable, got %+v", got)
	}
	for _, l := range log.levels {
		if l == "error" {
			t.Fatalf("cancellation must not be logged at error level: %v", log.levels)
		}
	}
}

func TestPaymentStatus_GatewayDeadlineIsUnavailable(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{GatewayTimeout: 20 * time.Millisecond})
	d.cache.EXPECT().Get(gomock.Any(), intentID).Return(nil, false)
	d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), intentID).
		DoAndReturn(func(gctx context.Context, _ string) (domain.PaymentStatus, error) {
			<-gctx.Done()
			return domain.PaymentStatus{}, gctx.Err()
		})

	before := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "unavailable"))
	_, err := svc.PaymentStatus(context.Background(), intentID)
	wantKind(t, err, domain.KindGatewayUnavailable)
	if got := testutil.ToFloat64(metrics.GatewayCalls.WithLabelValues("get", "unavailable")) - before; got != 1 {
		t.Fatalf("gateway timeout must count as unavailable, got %+v", got)
	}
}

func TestCreatePaymentIntent_PricerInternalError(t *testing.T) {
	ctrl := gomock.NewController(t)
	pricer := mocks.NewMockCartPricer(ctrl)
	gateway := mocks.NewMockPaymentGateway(ctrl)

	pricer.EXPECT().Price(gomock.Any(), gomock.Any()).Return(nil, errors.New("catalog exploded"))
	gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewCheckoutService(pricer, gateway, nil, nil, noopLogger{}, usecase.CheckoutOptions{})
	_, err := svc.CreatePaymentIntent(context.Background(), flamengoCart())
	wantKind(t, err, domain.KindInternal)
}

func TestCreatePaymentIntent_PublishErrorDoesNotFail(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})
	d.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
		Return(domain.PaymentIntent{ID: intentID, ClientSecret: "s"}, nil)
	d.events.EXPECT().PublishPaymentIntentCreated(gomock.Any(), gomock.Any()).Return(errors.New("queue full"))

	if _, err := svc.CreatePaymentIntent(context.Background(), flamengoCart()); err != nil {
		t.Fatalf("publish failure must not affect checkout: %v", err)
	}
}

// Повторная отправка той же корзины: одинаковая сумма, но два разных вызова шлюза.
func TestCreatePaymentIntent_NotDeduplicated(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})
	var amounts []int64
	d.gateway.EXPECT().CreatePaymentIntent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.IntentRequest) (domain.PaymentIntent, error) {
			amounts = append(amounts, req.AmountMinor)
			return domain.PaymentIntent{ID: intentID, ClientSecret: "s"}, nil
		}).Times(2)
	d.events.EXPECT().PublishPaymentIntentCreated(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	for i := 0; i < 2; i++ {
		if _, err := svc.CreatePaymentIntent(context.Background(), flamengoCart()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if len(amounts) != 2 || amounts[0] != amounts[1] {
		t.Fatalf("amounts: %v", amounts)
	}
}

func TestPaymentStatus_CacheHit(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})
	cached := &domain.PaymentStatus{ID: intentID, Status: domain.PaymentStatusSucceeded, AmountMinor: 45980}

	d.cache.EXPECT().Get(gomock.Any(), intentID).Return(cached, true)
	d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.PaymentStatus(context.Background(), intentID)
	if err != nil || got != cached {
		t.Fatalf("expected cached status, got %+v err=%v", got, err)
	}
}

func TestPaymentStatus_TerminalIsCached(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})
	st := domain.PaymentStatus{ID: intentID, Status: domain.PaymentStatusSucceeded, AmountMinor: 45980, Currency: "brl"}

	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), intentID).Return(nil, false),
		d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), intentID).Return(st, nil),
		d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil),
	)

	got, err := svc.PaymentStatus(context.Background(), intentID)
	if err != nil || got.Status != "succeeded" || got.AmountMinor != 45980 {
		t.Fatalf("unexpected result: %+v err=%v", got, err)
	}
}

func TestPaymentStatus_NonTerminalNotCached(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})

	d.cache.EXPECT().Get(gomock.Any(), intentID).Return(nil, false)
	d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), intentID).
		Return(domain.PaymentStatus{ID: intentID, Status: "requires_payment_method"}, nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any()).Times(0)

	if _, err := svc.PaymentStatus(context.Background(), intentID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPaymentStatus_Errors(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind domain.ErrorKind
	}{
		"not found":   {domain.ErrPaymentNotFound, domain.KindPaymentNotFound},
		"unavailable": {domain.ErrGatewayUnavailable, domain.KindGatewayUnavailable},
		"other":       {errors.New("boom"), domain.KindGatewayError},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			svc, d := newService(t, usecase.CheckoutOptions{})
			d.cache.EXPECT().Get(gomock.Any(), intentID).Return(nil, false)
			d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), intentID).Return(domain.PaymentStatus{}, tc.err)

			_, err := svc.PaymentStatus(context.Background(), intentID)
			wantKind(t, err, tc.kind)
		})
	}
}

func TestPaymentStatus_EmptyID(t *testing.T) {
	svc, d := newService(t, usecase.CheckoutOptions{})
	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Times(0)
	d.gateway.EXPECT().GetPaymentIntent(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.PaymentStatus(context.Background(), "  ")
	wantKind(t, err, domain.KindMalformedRequest)
}
