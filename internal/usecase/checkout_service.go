package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/Gunvolt24/jersey_checkout/pkg/ctxmeta"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/Gunvolt24/jersey_checkout/internal/usecase"

// Ключи metadata платежа.
const (
	MetaOrderItems = "order_items"
	MetaTotal      = "total_brl"
	MetaLineCount  = "line_count"
)

// Значения по умолчанию для CheckoutOptions.
const (
	DefaultCurrency       = "brl"
	DefaultGatewayTimeout = 10 * time.Second
)

// CheckoutOptions: параметры сценария оформления.
type CheckoutOptions struct {
	Currency       string        // валюта платежа (brl)
	GatewayTimeout time.Duration // граница одного вызова шлюза
}

// CheckoutService: прикладная логика оформления (без знаний о транспорте).
type CheckoutService struct {
	pricer  ports.CartPricer         // проверка и расчёт корзины
	gateway ports.PaymentGateway     // платёжный провайдер
	cache   ports.PaymentStatusCache // кэш финальных статусов
	events  ports.EventPublisher     // может быть nil: события не публикуются
	log     ports.Logger

	currency       string
	gatewayTimeout time.Duration
	now            func() time.Time
	tracer         trace.Tracer
}

// NewCheckoutService: DI-конструктор.
func NewCheckoutService(
	pricer ports.CartPricer,
	gateway ports.PaymentGateway,
	cache ports.PaymentStatusCache,
	events ports.EventPublisher,
	log ports.Logger,
	opts CheckoutOptions,
) *CheckoutService {
	currency := strings.ToLower(strings.TrimSpace(opts.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	timeout := opts.GatewayTimeout
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &CheckoutService{
		pricer:         pricer,
		gateway:        gateway,
		cache:          cache,
		events:         events,
		log:            log,
		currency:       currency,
		gatewayTimeout: timeout,
		now:            time.Now,
		tracer:         otel.Tracer(tracerName),
	}
}

// CreatePaymentIntent: проверка корзины по каталогу, расчёт суммы и создание платежа.
// При ошибке проверки шлюз не вызывается.
func (s *CheckoutService) CreatePaymentIntent(ctx context.Context, lines []domain.CartLine) (*domain.CheckoutResult, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.CreatePaymentIntent")
	defer span.End()

	res, err := s.createPaymentIntent(ctx, span, lines)
	kind := domain.KindOf(err)
	if err != nil {
		span.SetStatus(codes.Error, string(kind))
		metrics.CheckoutRequests.WithLabelValues(string(kind)).Inc()
		return nil, err
	}
	metrics.CheckoutRequests.WithLabelValues("ok").Inc()
	return res, nil
}

func (s *CheckoutService) createPaymentIntent(ctx context.Context, span trace.Span, lines []domain.CartLine) (*domain.CheckoutResult, error) {
	order, err := s.price(ctx, lines)
	if err != nil {
		return nil, err
	}

	amountMinor, err := pricing.ToMinorUnits(order.GrandTotal)
	if err != nil {
		s.log.Errorf(ctx, "convert total=%s to minor units: %v", order.GrandTotal, err)
		return nil, domain.NewError(domain.KindInternal, "internal error", err)
	}
	total := pricing.FormatAmount(order.GrandTotal)
	span.SetAttributes(
		attribute.Int("checkout.lines", len(order.Lines)),
		attribute.Int64("checkout.amount_minor", amountMinor),
	)

	metadata, err := buildMetadata(order, total)
	if err != nil {
		s.log.Errorf(ctx, "build payment metadata: %v", err)
		return nil, domain.NewError(domain.KindInternal, "internal error", err)
	}

	intent, err := s.createIntent(ctx, domain.IntentRequest{
		AmountMinor: amountMinor,
		Currency:    s.currency,
		Metadata:    metadata,
	})
	if err != nil {
		return nil, err
	}

	ctx = ctxmeta.WithPaymentIntentID(ctx, intent.ID)
	s.log.Infof(ctx, "payment intent created id=%s total=%s", intent.ID, total)
	metrics.OrderTotal.Observe(order.GrandTotal.InexactFloat64())
	s.publishCreated(ctx, intent.ID, amountMinor, order)

	return &domain.CheckoutResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Currency:        s.currency,
		Order:           order,
	}, nil
}

func (s *CheckoutService) price(ctx context.Context, lines []domain.CartLine) (*domain.PricedOrder, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.price")
	defer span.End()

	order, err := s.pricer.Price(ctx, lines)
	if err == nil {
		return order, nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		s.log.Warnf(ctx, "cart rejected kind=%s field=%s msg=%s", de.Kind, de.Field, de.Message)
		return nil, de
	}
	s.log.Errorf(ctx, "pricer failed: %v", err)
	return nil, domain.NewError(domain.KindInternal, "internal error", err)
}

func (s *CheckoutService) createIntent(ctx context.Context, req domain.IntentRequest) (domain.PaymentIntent, error) {
	ctx, span := s.tracer.Start(ctx, "gateway.CreatePaymentIntent")
	defer span.End()

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	start := time.Now()
	intent, err := s.gateway.CreatePaymentIntent(gctx, req)
	metrics.GatewayLatency.WithLabelValues("create").Observe(time.Since(start).Seconds())

	if err == nil && (intent.ID == "" || intent.ClientSecret == "") {
		err = errors.New("gateway returned an intent without id or client secret")
	}
	if err != nil {
		span.RecordError(err)
		derr := s.gatewayError(ctx, "create", err)
		// на создании «не найдено» не имеет смысла: это ответ шлюза
		if derr.Kind == domain.KindPaymentNotFound {
			derr = domain.NewError(domain.KindGatewayError, "payment gateway rejected the request", err)
		}
		return domain.PaymentIntent{}, derr
	}

	metrics.GatewayCalls.WithLabelValues("create", "ok").Inc()
	span.SetAttributes(attribute.String("payment_intent.id", intent.ID))
	return intent, nil
}

// PaymentStatus: статус ранее созданного платежа. Корзину не перепроверяет.
// Финальные статусы берутся из кэша.
func (s *CheckoutService) PaymentStatus(ctx context.Context, paymentID string) (*domain.PaymentStatus, error) {
	ctx, span := s.tracer.Start(ctx, "checkout.PaymentStatus")
	defer span.End()

	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		e := domain.NewError(domain.KindMalformedRequest, "payment intent id is required", nil)
		e.Field = "paymentIntentId"
		return nil, e
	}
	span.SetAttributes(attribute.String("payment_intent.id", paymentID))
	ctx = ctxmeta.WithPaymentIntentID(ctx, paymentID)

	if st, ok := s.cache.Get(ctx, paymentID); ok {
		s.log.Debugf(ctx, "status cache hit id=%s", paymentID)
		return st, nil
	}

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	start := time.Now()
	st, err := s.gateway.GetPaymentIntent(gctx, paymentID)
	metrics.GatewayLatency.WithLabelValues("get").Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		return nil, s.gatewayError(ctx, "get", err)
	}
	metrics.GatewayCalls.WithLabelValues("get", "ok").Inc()

	if st.ID == "" {
		st.ID = paymentID
	}
	if st.IsTerminal() {
		if setErr := s.cache.Set(ctx, &st); setErr != nil {
			s.log.Warnf(ctx, "status cache set failed id=%s err=%v", paymentID, setErr)
		}
	}
	return &st, nil
}

// gatewayError: классификация ошибки шлюза; детали только в лог.
func (s *CheckoutService) gatewayError(ctx context.Context, op string, err error) *domain.Error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		// клиент ушёл раньше шлюза: это не отказ шлюза
		metrics.GatewayCalls.WithLabelValues(op, "canceled").Inc()
		s.log.Warnf(ctx, "gateway %s aborted: caller canceled: %v", op, err)
		return domain.NewError(domain.KindGatewayUnavailable, "request canceled", err)

	case errors.Is(err, domain.ErrPaymentNotFound):
		metrics.GatewayCalls.WithLabelValues(op, "not_found").Inc()
		s.log.Infof(ctx, "gateway %s: payment not found: %v", op, err)
		return domain.NewError(domain.KindPaymentNotFound, "payment intent not found", err)

	case errors.Is(err, domain.ErrGatewayUnavailable),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		metrics.GatewayCalls.WithLabelValues(op, "unavailable").Inc()
		s.log.Errorf(ctx, "gateway %s unavailable: %v", op, err)
		return domain.NewError(domain.KindGatewayUnavailable, "payment gateway is unavailable", err)

	default:
		metrics.GatewayCalls.WithLabelValues(op, "error").Inc()
		s.log.Errorf(ctx, "gateway %s failed: %v", op, err)
		return domain.NewError(domain.KindGatewayError, "payment gateway rejected the request", err)
	}
}

func (s *CheckoutService) publishCreated(ctx context.Context, intentID string, amountMinor int64, order *domain.PricedOrder) {
	if s.events == nil {
		return
	}
	rid, _ := ctxmeta.RequestIDFromContext(ctx)
	ev := &domain.PaymentIntentCreated{
		EventID:         uuid.NewString(),
		PaymentIntentID: intentID,
		AmountMinor:     amountMinor,
		Currency:        s.currency,
		Total:           order.GrandTotal,
		Lines:           order.Lines,
		RequestID:       rid,
		CreatedAt:       s.now().UTC(),
	}
	if err := s.events.PublishPaymentIntentCreated(ctx, ev); err != nil {
		s.log.Warnf(ctx, "publish payment_intent.created id=%s: %v", intentID, err)
	}
}

// orderItemMeta: компактная строка заказа для metadata платежа.
type orderItemMeta struct {
	ProductID    string      `json:"id"`
	Quantity     int         `json:"qty"`
	SelectedSize string      `json:"size"`
	UnitPrice    json.Number `json:"price"`
}

func buildMetadata(order *domain.PricedOrder, total string) (map[string]string, error) {
	items := make([]orderItemMeta, 0, len(order.Lines))
	for i := range order.Lines {
		l := &order.Lines[i]
		items = append(items, orderItemMeta{
			ProductID:    l.ProductID,
			Quantity:     l.Quantity,
			SelectedSize: l.SelectedSize,
			UnitPrice:    pricing.AmountNumber(l.UnitPrice),
		})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	return map[string]string{
		MetaOrderItems: string(raw),
		MetaTotal:      total,
		MetaLineCount:  strconv.Itoa(len(order.Lines)),
	}, nil
}
