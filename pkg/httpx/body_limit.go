package httpx

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit: ограничивает размер тела запроса. При превышении чтение тела
// возвращает *http.MaxBytesError; обработчик решает, как ответить.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 && c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
