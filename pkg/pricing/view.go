package pricing

import (
	"encoding/json"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
)

// LineView: проводное представление проверенной строки.
type LineView struct {
	ProductID    string      `json:"productId"`
	DisplayName  string      `json:"displayName"`
	UnitPrice    json.Number `json:"unitPrice"`
	Quantity     int         `json:"quantity"`
	SelectedSize string      `json:"selectedSize"`
	LineSubtotal json.Number `json:"lineSubtotal"`
}

// OrderView: проводное представление оценённого заказа.
type OrderView struct {
	TotalAmount    json.Number `json:"totalAmount"`
	ValidatedLines []LineView  `json:"validatedLines"`
}

// NewLineViews: строки заказа в проводном виде.
func NewLineViews(lines []domain.ValidatedLine) []LineView {
	out := make([]LineView, 0, len(lines))
	for i := range lines {
		l := &lines[i]
		out = append(out, LineView{
			ProductID:    l.ProductID,
			DisplayName:  l.DisplayName,
			UnitPrice:    AmountNumber(l.UnitPrice),
			Quantity:     l.Quantity,
			SelectedSize: l.SelectedSize,
			LineSubtotal: AmountNumber(l.LineSubtotal),
		})
	}
	return out
}

// NewOrderView: заказ в проводном виде.
func NewOrderView(order *domain.PricedOrder) OrderView {
	if order == nil {
		return OrderView{ValidatedLines: []LineView{}}
	}
	return OrderView{
		TotalAmount:    AmountNumber(order.GrandTotal),
		ValidatedLines: NewLineViews(order.Lines),
	}
}
