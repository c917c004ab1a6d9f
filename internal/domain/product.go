package domain

import "github.com/shopspring/decimal"

// Product: запись доверенного каталога. Цена в основных единицах валюты (реалы).
type Product struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Category    string          `json:"category,omitempty"`
}
