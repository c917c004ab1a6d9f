package domain

import (
	"errors"
	"fmt"
)

// ErrorKind: классификация ошибок оформления заказа, видимая клиенту.
type ErrorKind string

const (
	KindEmptyCart          ErrorKind = "EmptyCart"
	KindUnknownProduct     ErrorKind = "UnknownProduct"
	KindInvalidQuantity    ErrorKind = "InvalidQuantity"
	KindInvalidSize        ErrorKind = "InvalidSize"
	KindMalformedRequest   ErrorKind = "MalformedRequest"
	KindGatewayUnavailable ErrorKind = "GatewayUnavailable"
	KindGatewayError       ErrorKind = "GatewayError"
	KindPaymentNotFound    ErrorKind = "PaymentNotFound"
	KindInternal           ErrorKind = "InternalError"
)

// Sentinel-ошибки, которыми адаптеры шлюза сообщают о классе проблемы.
var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrPaymentNotFound    = errors.New("payment not found")
)

// NoLine: ошибка не относится к конкретной строке корзины.
const NoLine = -1

// Error: классифицированная ошибка с деталями для клиента.
type Error struct {
	Kind      ErrorKind
	Message   string
	Field     string // путь до поля, например items[1].quantity
	Line      int    // индекс строки корзины или NoLine
	ProductID string // только для UnknownProduct
	Err       error  // внутренняя причина (клиенту не отдаётся)
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError: ошибка без привязки к строке корзины.
func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Line: NoLine, Err: cause}
}

// KindOf: вид ошибки; всё неклассифицированное считается внутренней ошибкой.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsValidation: ошибка обнаружена локально по входным данным (шлюз не вызывался).
func (k ErrorKind) IsValidation() bool {
	switch k {
	case KindEmptyCart, KindUnknownProduct, KindInvalidQuantity, KindInvalidSize, KindMalformedRequest:
		return true
	default:
		return false
	}
}
