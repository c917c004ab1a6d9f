package httpx

import (
	"github.com/Gunvolt24/jersey_checkout/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID: заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// maxRequestIDLen: длиннее клиентский id не принимаем.
const maxRequestIDLen = 64

// RequestIDMiddleware:
// - принимает X-Request-ID от витрины, если он похож на идентификатор, иначе генерирует UUID
// - кладёт request_id в контекст (его видят логгер, use case и события Kafka)
// - возвращает его в ответном заголовке X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !validRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		ctx := ctxmeta.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// validRequestID: непустой, до maxRequestIDLen символов из [A-Za-z0-9._-].
// Иначе произвольный заголовок попал бы в логи и заголовки сообщений Kafka.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		switch c := id[i]; {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
		default:
			return false
		}
	}
	return true
}
