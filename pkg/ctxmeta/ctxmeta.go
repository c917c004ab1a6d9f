// Пакет ctxmeta хранит метаданные запроса в context.Context: request_id, id платежа,
// trace/span. HTTP-слой, use case и логгер знают только этот пакет, но не друг друга.
package ctxmeta

import "context"

type ctxKey string

// Ключи контекста. Тип ключа неэкспортируемый по значению, коллизий со строками нет.
const (
	KeyRequestID       ctxKey = "request_id"
	KeyPaymentIntentID ctxKey = "payment_intent_id"
)

func with(ctx context.Context, key ctxKey, v string) context.Context {
	if ctx == nil || v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func get(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(key).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID: request_id в контекст; пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return with(ctx, KeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	return get(ctx, KeyRequestID)
}

// WithPaymentIntentID: id платежа, к которому относится дальнейшая работа.
func WithPaymentIntentID(ctx context.Context, id string) context.Context {
	return with(ctx, KeyPaymentIntentID, id)
}

func PaymentIntentIDFromContext(ctx context.Context) (string, bool) {
	return get(ctx, KeyPaymentIntentID)
}

// Fields: пары ключ/значение для структурного логгера (только заполненные).
func Fields(ctx context.Context) []any {
	var out []any
	if v, ok := RequestIDFromContext(ctx); ok {
		out = append(out, string(KeyRequestID), v)
	}
	if v, ok := PaymentIntentIDFromContext(ctx); ok {
		out = append(out, string(KeyPaymentIntentID), v)
	}
	if v, ok := TraceIDFromContext(ctx); ok {
		out = append(out, "trace_id", v)
	}
	return out
}
