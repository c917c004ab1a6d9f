package pricing

import (
	"bytes"
	"encoding/json"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// cartLineWire: строка корзины на проводе. Поля цены и названия, которые шлёт
// витрина для отображения, сюда не попадают: они игнорируются при декодировании.
type cartLineWire struct {
	ProductID    json.RawMessage `json:"productId"`
	LegacyID     json.RawMessage `json:"id"`
	Quantity     json.RawMessage `json:"quantity"`
	SelectedSize json.RawMessage `json:"selectedSize"`
}

type cartWire struct {
	Items json.RawMessage `json:"items"`
}

// DecodeCart: разбор тела запроса {"items":[...]} в строки корзины.
// Синтаксически битый JSON -> MalformedRequest; отсутствующий, пустой или
// не-массив items -> EmptyCart. Неверные типы полей строки не считаются ошибкой
// разбора: строка уходит в валидатор и отклоняется там в штатном порядке проверок.
func DecodeCart(raw []byte) ([]domain.CartLine, error) {
	if !json.Valid(raw) {
		return nil, domain.NewError(domain.KindMalformedRequest, "request body is not valid JSON", nil)
	}

	var body cartWire
	if err := json.Unmarshal(raw, &body); err != nil {
		// валидный JSON, но не объект
		return nil, emptyCart("request body must be an object with an items array")
	}

	items := bytes.TrimSpace(body.Items)
	if len(items) == 0 || bytes.Equal(items, []byte("null")) {
		return nil, emptyCart("items is required")
	}
	if items[0] != '[' {
		return nil, emptyCart("items must be an array")
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(items, &elems); err != nil {
		return nil, emptyCart("items must be an array")
	}
	if len(elems) == 0 {
		return nil, emptyCart("cart must contain at least one item")
	}

	lines := make([]domain.CartLine, 0, len(elems))
	for _, elem := range elems {
		lines = append(lines, decodeLine(elem))
	}
	return lines, nil
}

func emptyCart(msg string) *domain.Error {
	e := domain.NewError(domain.KindEmptyCart, msg, nil)
	e.Field = "items"
	return e
}

func decodeLine(raw json.RawMessage) domain.CartLine {
	var w cartLineWire
	if err := json.Unmarshal(raw, &w); err != nil {
		// не объект: пустая строка будет отклонена как UnknownProduct
		return domain.CartLine{}
	}

	id := w.ProductID
	if isAbsent(id) {
		id = w.LegacyID
	}

	return domain.CartLine{
		ProductID:    scalarText(id),
		Quantity:     numberLiteral(w.Quantity),
		SelectedSize: stringValue(w.SelectedSize),
	}
}

func isAbsent(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// scalarText: строка как есть; прочие значения, их JSON-текст (чтобы
// в UnknownProduct попал именно тот id, что прислал клиент).
func scalarText(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(raw))
}

// numberLiteral: только JSON-числа; строки вида "2" количеством не считаются.
func numberLiteral(raw json.RawMessage) json.Number {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return ""
	}
	return json.Number(raw)
}

func stringValue(raw json.RawMessage) string {
	if isAbsent(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
