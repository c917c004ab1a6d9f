package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/segmentio/kafka-go"
)

// EventTypePaymentIntentCreated: тип события в заголовке и теле сообщения.
const EventTypePaymentIntentCreated = "payment_intent.created"

// Заголовки сообщения.
const (
	HeaderEventType = "event-type"
	HeaderRequestID = "request-id"
)

// PaymentIntentCreatedMessage: формат события на проводе.
// Суммы: JSON-числа с двумя знаками, как в HTTP-ответе.
type PaymentIntentCreatedMessage struct {
	Type            string             `json:"type"`
	EventID         string             `json:"eventId"`
	PaymentIntentID string             `json:"paymentIntentId"`
	AmountMinor     int64              `json:"amountMinor"`
	Currency        string             `json:"currency"`
	TotalAmount     json.Number        `json:"totalAmount"`
	Lines           []pricing.LineView `json:"lines"`
	RequestID       string             `json:"requestId,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
}

// encodeCreated: сообщение Kafka с ключом = id платежа.
func encodeCreated(ev *domain.PaymentIntentCreated) (kafka.Message, error) {
	body := PaymentIntentCreatedMessage{
		Type:            EventTypePaymentIntentCreated,
		EventID:         ev.EventID,
		PaymentIntentID: ev.PaymentIntentID,
		AmountMinor:     ev.AmountMinor,
		Currency:        ev.Currency,
		TotalAmount:     pricing.AmountNumber(ev.Total),
		Lines:           pricing.NewLineViews(ev.Lines),
		RequestID:       ev.RequestID,
		CreatedAt:       ev.CreatedAt.UTC(),
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s: %w", EventTypePaymentIntentCreated, err)
	}

	headers := []kafka.Header{{Key: HeaderEventType, Value: []byte(EventTypePaymentIntentCreated)}}
	if ev.RequestID != "" {
		headers = append(headers, kafka.Header{Key: HeaderRequestID, Value: []byte(ev.RequestID)})
	}
	return kafka.Message{
		Key:     []byte(ev.PaymentIntentID),
		Value:   raw,
		Headers: headers,
		Time:    ev.CreatedAt,
	}, nil
}
