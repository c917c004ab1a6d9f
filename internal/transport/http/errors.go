package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/gin-gonic/gin"
)

// errorBody: тело ответа об ошибке. Внутренняя причина клиенту не отдаётся.
type errorBody struct {
	ErrorKind      domain.ErrorKind `json:"errorKind"`
	Message        string           `json:"message"`
	OffendingField string           `json:"offendingField,omitempty"`
	LineIndex      *int             `json:"lineIndex,omitempty"`
	ProductID      string           `json:"productId,omitempty"`
}

// statusFor: HTTP-статус для вида ошибки.
func statusFor(kind domain.ErrorKind) int {
	switch {
	case kind.IsValidation():
		return http.StatusBadRequest
	case kind == domain.KindGatewayUnavailable:
		return http.StatusServiceUnavailable
	case kind == domain.KindGatewayError:
		return http.StatusBadGateway
	case kind == domain.KindPaymentNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// newErrorBody: проводное представление ошибки.
func newErrorBody(err error) errorBody {
	var de *domain.Error
	if !errors.As(err, &de) {
		return errorBody{ErrorKind: domain.KindInternal, Message: "internal error"}
	}

	body := errorBody{
		ErrorKind:      de.Kind,
		Message:        de.Message,
		OffendingField: de.Field,
		ProductID:      de.ProductID,
	}
	if de.Kind == domain.KindInternal {
		body.Message = "internal error"
	}
	if de.Line != domain.NoLine {
		line := de.Line
		body.LineIndex = &line
	}
	return body
}

func (h *Handler) writeError(c *gin.Context, err error) {
	body := newErrorBody(err)
	status := statusFor(body.ErrorKind)
	switch ctx := c.Request.Context(); {
	case errors.Is(ctx.Err(), context.Canceled):
		h.log.Warnf(ctx, "%s %s aborted by client kind=%s err=%v", c.Request.Method, c.FullPath(), body.ErrorKind, err)
	case status >= http.StatusInternalServerError:
		h.log.Errorf(ctx, "%s %s failed kind=%s err=%v", c.Request.Method, c.FullPath(), body.ErrorKind, err)
	}
	c.JSON(status, body)
}
