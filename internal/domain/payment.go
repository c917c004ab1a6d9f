package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// IntentRequest: запрос к платёжному шлюзу на создание платежа.
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// PaymentIntent: ответ шлюза на создание платежа.
type PaymentIntent struct {
	ID           string
	ClientSecret string
	AmountMinor  int64
	Currency     string
	Status       string
}

// PaymentStatus: состояние ранее созданного платежа.
type PaymentStatus struct {
	ID          string
	Status      string
	AmountMinor int64
	Currency    string
	Metadata    map[string]string
}

// Статусы, после которых платёж уже не меняется.
const (
	PaymentStatusSucceeded = "succeeded"
	PaymentStatusCanceled  = "canceled"
)

// IsTerminal: платёж в финальном состоянии.
func (s *PaymentStatus) IsTerminal() bool {
	return s.Status == PaymentStatusSucceeded || s.Status == PaymentStatusCanceled
}

// CheckoutResult: то, что получает клиент после успешного создания платежа.
type CheckoutResult struct {
	PaymentIntentID string
	ClientSecret    string
	Currency        string
	Order           *PricedOrder
}

// PaymentIntentCreated: событие для нижестоящих систем (фулфилмент, аналитика).
type PaymentIntentCreated struct {
	EventID         string          `json:"event_id"`
	PaymentIntentID string          `json:"payment_intent_id"`
	AmountMinor     int64           `json:"amount_minor"`
	Currency        string          `json:"currency"`
	Total           decimal.Decimal `json:"total"`
	Lines           []ValidatedLine `json:"lines"`
	RequestID       string          `json:"request_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}
