package httpx

import (
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/gin-gonic/gin"
)

// RequestLogger: access-лог. Уровень по статусу ответа: 5xx error, 4xx warn.
// request_id и trace_id добавляет сам логгер из контекста.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		if skipAccessLog(path) {
			return
		}

		logf := log.Infof
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			logf = log.Errorf
		case status >= http.StatusBadRequest:
			logf = log.Warnf
		}

		logf(
			c.Request.Context(),
			"request method=%s path=%s status=%d ip=%s duration=%s size=%d",
			c.Request.Method,
			path,
			c.Writer.Status(),
			c.ClientIP(),
			time.Since(start),
			c.Writer.Size(),
		)
	}
}

// не логируем служебные маршруты и статику витрины
func skipAccessLog(path string) bool {
	switch path {
	case "/metrics", "/ping", "/":
		return true
	}
	return strings.HasPrefix(path, "/static/")
}
