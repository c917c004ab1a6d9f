package domain

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// CartLine: строка корзины в том виде, в каком её прислал клиент.
// Поля цены/названия здесь нет намеренно: цена берётся только из каталога.
// Quantity хранит исходный числовой литерал, чтобы валидатор сам решал,
// является ли он целым.
type CartLine struct {
	ProductID    string
	Quantity     json.Number
	SelectedSize string
}

// Qty: удобный конструктор количества для кода и тестов.
func Qty(n int) json.Number { return json.Number(strconv.Itoa(n)) }

// ValidatedLine: проверенная и оценённая строка заказа.
type ValidatedLine struct {
	ProductID    string          `json:"productId"`
	DisplayName  string          `json:"displayName"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Quantity     int             `json:"quantity"`
	SelectedSize string          `json:"selectedSize"`
	LineSubtotal decimal.Decimal `json:"lineSubtotal"`
}

// PricedOrder: результат работы ценового движка.
type PricedOrder struct {
	Lines      []ValidatedLine `json:"validatedLines"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}
