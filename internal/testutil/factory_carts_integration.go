//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// CartItem: строка корзины в том виде, в каком её шлёт витрина.
type CartItem struct {
	ProductID    string `json:"productId"`
	Quantity     any    `json:"quantity"`
	SelectedSize string `json:"selectedSize"`
	// Price: цена витрины; сервер её игнорирует.
	Price any `json:"price,omitempty"`
}

// Cart: тело запроса POST /api/create-payment-intent.
type Cart struct {
	Items []CartItem `json:"items"`
}

// MakeCart собирает валидную корзину: flamengo-2024 ×2, размер M (итого 459.80).
func MakeCart(opts ...func(*Cart)) Cart {
	c := Cart{Items: []CartItem{{ProductID: "flamengo-2024", Quantity: 2, SelectedSize: "M"}}}
	for _, fn := range opts {
		fn(&c)
	}
	return c
}

// JSON: тело запроса.
func (c Cart) JSON() []byte {
	b, _ := json.Marshal(c)
	return b
}

// WithItem: добавить строку.
func WithItem(productID string, qty any, size string) func(*Cart) {
	return func(c *Cart) {
		c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: qty, SelectedSize: size})
	}
}

// WithClientPrice: подложить «цену витрины» во все строки.
func WithClientPrice(price any) func(*Cart) {
	return func(c *Cart) {
		for i := range c.Items {
			c.Items[i].Price = price
		}
	}
}

// WithoutItems: пустая корзина.
func WithoutItems() func(*Cart) {
	return func(c *Cart) { c.Items = []CartItem{} }
}
