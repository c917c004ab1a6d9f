package rest

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/Gunvolt24/jersey_checkout/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Границы выдачи каталога.
const (
	defaultProductsLimit = 50
	maxProductsLimit     = 100
)

// Handler: HTTP-обработчики витрины и оформления заказа.
type Handler struct {
	service      ports.CheckoutService
	catalog      ports.ProductCatalog
	log          ports.Logger
	timeout      time.Duration
	maxBodyBytes int64
}

// Options: параметры обработчиков.
type Options struct {
	Timeout      time.Duration // граница обработки одного запроса; 0: без ограничения
	MaxBodyBytes int64         // лимит тела POST /api/create-payment-intent; 0: без ограничения
}

// NewHandler: конструктор.
func NewHandler(service ports.CheckoutService, catalog ports.ProductCatalog, log ports.Logger, opts Options) *Handler {
	return &Handler{
		service:      service,
		catalog:      catalog,
		log:          log,
		timeout:      opts.Timeout,
		maxBodyBytes: opts.MaxBodyBytes,
	}
}

// RouterOptions: внешние параметры роутера.
type RouterOptions struct {
	StaticDir       string   // каталог фронтенда; пусто: статика не раздаётся
	OtelServiceName string   // имя сервиса для otelgin; пусто: без трейсинга
	AllowedOrigins  []string // CORS; пусто или "*": любой origin
}

// NewRouter: gin-роутер со всеми маршрутами и middleware.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if opts.OtelServiceName != "" {
		r.Use(otelgin.Middleware(opts.OtelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))
	r.Use(httpx.CORS(opts.AllowedOrigins))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/create-payment-intent", httpx.BodyLimit(h.maxBodyBytes), h.createPaymentIntent)
	api.GET("/payment-status/:paymentIntentId", h.paymentStatus)
	api.GET("/products", h.listProducts)
	api.GET("/products/:id", h.getProduct)

	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
		r.StaticFile("/", filepath.Join(opts.StaticDir, "index.html"))
	}

	return r
}

// requestContext: контекст запроса с ограничением по времени обработки.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}
