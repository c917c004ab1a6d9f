package rest

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/gin-gonic/gin"
)

// checkoutResponse: ответ на успешное создание платежа.
type checkoutResponse struct {
	PaymentHandle   string             `json:"paymentHandle"`
	PaymentIntentID string             `json:"paymentIntentId"`
	TotalAmount     json.Number        `json:"totalAmount"`
	Currency        string             `json:"currency"`
	ValidatedLines  []pricing.LineView `json:"validatedLines"`
}

// paymentStatusResponse: состояние платежа, суммы в основных единицах.
type paymentStatusResponse struct {
	PaymentIntentID string            `json:"paymentIntentId"`
	Status          string            `json:"status"`
	Amount          json.Number       `json:"amount"`
	Currency        string            `json:"currency"`
	Metadata        map[string]string `json:"metadata"`
}

func (h *Handler) createPaymentIntent(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			metrics.CheckoutRequests.WithLabelValues(string(domain.KindMalformedRequest)).Inc()
			c.JSON(http.StatusRequestEntityTooLarge, errorBody{
				ErrorKind: domain.KindMalformedRequest,
				Message:   "request body too large",
			})
			return
		}
		h.log.Warnf(ctx, "read checkout body: %v", err)
		h.writeError(c, domain.NewError(domain.KindMalformedRequest, "cannot read request body", err))
		return
	}

	lines, err := pricing.DecodeCart(raw)
	if err != nil {
		metrics.CheckoutRequests.WithLabelValues(string(domain.KindOf(err))).Inc()
		h.writeError(c, err)
		return
	}

	res, err := h.service.CreatePaymentIntent(ctx, lines)
	if err != nil {
		h.writeError(c, err)
		return
	}

	view := pricing.NewOrderView(res.Order)
	c.JSON(http.StatusOK, checkoutResponse{
		PaymentHandle:   res.ClientSecret,
		PaymentIntentID: res.PaymentIntentID,
		TotalAmount:     view.TotalAmount,
		Currency:        res.Currency,
		ValidatedLines:  view.ValidatedLines,
	})
}

func (h *Handler) paymentStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	st, err := h.service.PaymentStatus(ctx, c.Param("paymentIntentId"))
	if err != nil {
		h.writeError(c, err)
		return
	}

	md := st.Metadata
	if md == nil {
		md = map[string]string{}
	}
	c.JSON(http.StatusOK, paymentStatusResponse{
		PaymentIntentID: st.ID,
		Status:          st.Status,
		Amount:          pricing.AmountNumber(pricing.FromMinorUnits(st.AmountMinor)),
		Currency:        st.Currency,
		Metadata:        md,
	})
}
