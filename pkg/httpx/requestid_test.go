package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gunvolt24/jersey_checkout/pkg/ctxmeta"
	"github.com/Gunvolt24/jersey_checkout/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// serveWithRequestID: прогоняет запрос через middleware и возвращает (заголовок ответа, id из контекста).
func serveWithRequestID(t *testing.T, provided string) (header, fromCtx string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(httpx.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if provided != "" {
		req.Header.Set(httpx.HeaderRequestID, provided)
	}
	r.ServeHTTP(w, req)
	return w.Header().Get(httpx.HeaderRequestID), fromCtx
}

func TestRequestIDMiddleware_GeneratesWhenMissing(t *testing.T) {
	rid, gotID := serveWithRequestID(t, "")

	if rid == "" {
		t.Fatalf("header X-Request-ID должен быть установлен")
	}
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("сгенерированный X-Request-ID должен быть UUID, got=%q err=%v", rid, err)
	}
	if gotID != rid {
		t.Fatalf("request id в контексте должен совпадать с заголовком: ctx=%q header=%q", gotID, rid)
	}
}

func TestRequestIDMiddleware_UsesProvidedHeader(t *testing.T) {
	const provided = "storefront-42.a_b"
	rid, gotID := serveWithRequestID(t, provided)

	if rid != provided {
		t.Fatalf("middleware должен сохранять переданный X-Request-ID: got=%q want=%q", rid, provided)
	}
	if gotID != provided {
		t.Fatalf("в контексте должен лежать переданный X-Request-ID: ctx=%q want=%q", gotID, provided)
	}
}

func TestRequestIDMiddleware_ReplacesSuspiciousHeader(t *testing.T) {
	for _, provided := range []string{
		"id with spaces",
		"id\"quoted",
		strings.Repeat("a", 65),
	} {
		rid, gotID := serveWithRequestID(t, provided)
		if rid == provided {
			t.Fatalf("подозрительный X-Request-ID %q не должен приниматься", provided)
		}
		if _, err := uuid.Parse(rid); err != nil || gotID != rid {
			t.Fatalf("вместо %q ожидается новый UUID, got header=%q ctx=%q", provided, rid, gotID)
		}
	}
}
