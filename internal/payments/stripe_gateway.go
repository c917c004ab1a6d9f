package payments

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
)

var _ ports.PaymentGateway = (*StripeGateway)(nil)

// Ограничения Stripe на metadata.
const (
	maxMetadataKeyLen   = 40
	maxMetadataValueLen = 500
)

// intentAPI: подмножество paymentintent.Client, которое нужно шлюзу.
type intentAPI interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	Get(id string, params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// StripeConfig: параметры подключения к Stripe.
type StripeConfig struct {
	SecretKey string
	Timeout   time.Duration
	// Logger: логгер SDK (подходит *zap.SugaredLogger). nil, логи SDK отключены.
	Logger stripe.LeveledLoggerInterface
}

// StripeGateway: платёжный шлюз поверх Stripe PaymentIntents.
type StripeGateway struct {
	intents intentAPI
}

// NewStripeGateway создаёт клиент Stripe без автоматических повторов:
// повтор создания платежа мог бы списать деньги дважды.
func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" {
		return nil, fmt.Errorf("%w: stripe secret key is empty", domain.ErrGatewayUnavailable)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	bcfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.Logger != nil {
		bcfg.LeveledLogger = cfg.Logger
	} else {
		bcfg.LeveledLogger = &stripe.LeveledLogger{Level: stripe.LevelNull}
	}

	sc := client.New(key, stripe.NewBackendsWithConfig(bcfg))
	return newStripeGateway(sc.PaymentIntents), nil
}

func newStripeGateway(api intentAPI) *StripeGateway {
	return &StripeGateway{intents: api}
}

// CreatePaymentIntent: создаёт PaymentIntent только для карт.
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, req domain.IntentRequest) (domain.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(strings.ToLower(req.Currency)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(truncate(k, maxMetadataKeyLen), truncate(v, maxMetadataValueLen))
	}

	pi, err := g.intents.New(params)
	if err != nil {
		return domain.PaymentIntent{}, classify("create payment intent", err)
	}

	return domain.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		AmountMinor:  pi.Amount,
		Currency:     string(pi.Currency),
		Status:       string(pi.Status),
	}, nil
}

// GetPaymentIntent: текущее состояние платежа.
func (g *StripeGateway) GetPaymentIntent(ctx context.Context, id string) (domain.PaymentStatus, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := g.intents.Get(id, params)
	if err != nil {
		return domain.PaymentStatus{}, classify("get payment intent", err)
	}

	md := make(map[string]string, len(pi.Metadata))
	for k, v := range pi.Metadata {
		md[k] = v
	}
	return domain.PaymentStatus{
		ID:          pi.ID,
		Status:      string(pi.Status),
		AmountMinor: pi.Amount,
		Currency:    string(pi.Currency),
		Metadata:    md,
	}, nil
}

// classify: сводит ошибки SDK к sentinel-ошибкам домена.
// Неверный ключ, сеть и таймауты -> недоступность; 404 -> нет такого платежа;
// прочие ответы Stripe остаются ошибкой шлюза.
func classify(op string, err error) error {
	var se *stripe.Error
	if errors.As(err, &se) {
		switch {
		case se.HTTPStatusCode == http.StatusUnauthorized || se.HTTPStatusCode == http.StatusForbidden:
			return fmt.Errorf("%w: stripe: %s: %s", domain.ErrGatewayUnavailable, op, se.Msg)
		case se.HTTPStatusCode == http.StatusNotFound || se.Code == stripe.ErrorCodeResourceMissing:
			return fmt.Errorf("%w: stripe: %s: %s", domain.ErrPaymentNotFound, op, se.Msg)
		default:
			return fmt.Errorf("stripe: %s: %w", op, err)
		}
	}

	var (
		netErr net.Error
		urlErr *url.Error
	)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return fmt.Errorf("%w: stripe: %s: %w", domain.ErrGatewayUnavailable, op, err)
	}
	return fmt.Errorf("stripe: %s: %w", op, err)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
