package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/jersey_checkout/config"
	cachemem "github.com/Gunvolt24/jersey_checkout/internal/cache/memory"
	"github.com/Gunvolt24/jersey_checkout/internal/catalog"
	"github.com/Gunvolt24/jersey_checkout/internal/kafka"
	"github.com/Gunvolt24/jersey_checkout/internal/payments"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/Gunvolt24/jersey_checkout/internal/repo/postgres"
	rest "github.com/Gunvolt24/jersey_checkout/internal/transport/http"
	"github.com/Gunvolt24/jersey_checkout/internal/usecase"
	"github.com/Gunvolt24/jersey_checkout/pkg/logger"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
	"github.com/Gunvolt24/jersey_checkout/pkg/pricing"
	"github.com/Gunvolt24/jersey_checkout/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Источники каталога.
const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// ErrStripeRequired: ключ Stripe не задан, а конфигурация требует рабочий шлюз.
var ErrStripeRequired = errors.New("stripe secret key is required")

// App: собранное приложение и его внешние интерфейсы (HTTP, фоновые воркеры).
type App struct {
	Logger          ports.Logger             // логгер
	HTTPServer      *http.Server             // HTTP-сервер API
	MetricsServer   *http.Server             // отдельный сервер /metrics; nil: не запускается
	Workers         []ports.BackgroundWorker // фоновые компоненты (публикация событий)
	gracefulTimeout time.Duration            // время ожидания завершения HTTP-сервера
}

// Cleanup: функция освобождения ресурсов.
type Cleanup func()

// applyGinMode: устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap: собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Функции очистки копятся по мере сборки и вызываются в обратном порядке.
	var cleanups []func()
	cleanupAll := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		logg.Errorf(ctx, "bootstrap failed: %v", err)
		cleanupAll()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию: no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.Config{
			ServiceName: cfg.Tracing.ServiceName,
			Environment: cfg.Tracing.Environment,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Currency:    cfg.Stripe.Currency,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			cleanups = append(cleanups, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Доверенный каталог.
	cat, err := buildCatalog(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}

	// Платёжный шлюз.
	gateway, err := buildGateway(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}

	// Публикация событий (выключена без брокеров).
	var (
		events  ports.EventPublisher
		workers []ports.BackgroundWorker
	)
	pubCfg := kafka.PublisherConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		QueueSize:    cfg.Kafka.QueueSize,
		WriteTimeout: cfg.Kafka.WriteTimeout,
		RetryInitial: cfg.Kafka.RetryInitial,
		RetryMax:     cfg.Kafka.RetryMax,
		MaxAttempts:  cfg.Kafka.MaxAttempts,
	}
	if pubCfg.Enabled() {
		pub := kafka.NewPublisher(&pubCfg, logg)
		events = pub
		workers = append(workers, pub)
		logg.Infof(ctx, "kafka publisher enabled brokers=%v topic=%s", pubCfg.Brokers, pubCfg.Topic)
	} else {
		logg.Infof(ctx, "kafka publisher disabled: no brokers configured")
	}

	// Сборка зависимостей доменного слоя.
	pricer := pricing.NewCartPricer(cat, pricing.Policy{
		MaxQuantity: cfg.Pricing.MaxQuantity,
		Sizes:       cfg.Pricing.Sizes,
	})
	statusCache := cachemem.NewStatusCache(cfg.Cache.Capacity, cfg.Cache.TTL)
	checkout := usecase.NewCheckoutService(pricer, gateway, statusCache, events, logg, usecase.CheckoutOptions{
		Currency:       cfg.Stripe.Currency,
		GatewayTimeout: cfg.Stripe.Timeout,
	})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(checkout, cat, logg, rest.Options{
		Timeout:      cfg.HTTP.HandlerTimeout,
		MaxBodyBytes: cfg.HTTP.MaxBodyBytes,
	})
	router := rest.NewRouter(httpHandler, rest.RouterOptions{
		StaticDir:       cfg.HTTP.StaticDir,
		OtelServiceName: otelServiceName,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   newMetricsServer(cfg.Metrics.Addr, cfg.HTTP.Addr),
		Workers:         workers,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		for _, w := range workers {
			if err := w.Close(); err != nil {
				logg.Warnf(ctx, "worker close error: %v", err)
			}
		}
		cleanupAll()
	}

	return app, cleanup, nil
}

// buildCatalog: встроенный каталог или снимок из Postgres.
// Снимок неизменен, поэтому пул закрывается сразу после загрузки.
func buildCatalog(ctx context.Context, cfg *config.Config, log ports.Logger) (*catalog.Catalog, error) {
	source := strings.ToLower(strings.TrimSpace(cfg.Catalog.Source))
	switch source {
	case "", CatalogSourceStatic:
		cat := catalog.Builtin()
		log.Infof(ctx, "catalog source=static products=%d", cat.Len())
		return cat, nil

	case CatalogSourcePostgres:
		loadCtx := ctx
		if cfg.Postgres.LoadTimeout > 0 {
			var cancel context.CancelFunc
			loadCtx, cancel = context.WithTimeout(ctx, cfg.Postgres.LoadTimeout)
			defer cancel()
		}

		pool, err := postgres.NewPool(loadCtx, postgres.PoolConfig{
			DSN:              cfg.Postgres.DSN,
			MaxConns:         cfg.Postgres.MaxConns,
			StatementTimeout: cfg.Postgres.LoadTimeout,
		})
		if err != nil {
			return nil, err
		}
		defer pool.Close()

		if cfg.Postgres.Migrate {
			applied, err := postgres.Migrate(loadCtx, pool)
			if err != nil {
				return nil, err
			}
			log.Infof(ctx, "catalog migrations applied=%d", applied)
		}

		cat, err := catalog.Load(loadCtx, postgres.NewCatalogRepository(pool))
		if err != nil {
			return nil, err
		}
		log.Infof(ctx, "catalog source=postgres products=%d", cat.Len())
		return cat, nil

	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// buildGateway: Stripe при заданном ключе; иначе заглушка (или ошибка, если шлюз обязателен).
func buildGateway(ctx context.Context, cfg *config.Config, log *logger.ZapLogger) (ports.PaymentGateway, error) {
	if strings.TrimSpace(cfg.Stripe.SecretKey) == "" {
		if cfg.Stripe.Required {
			return nil, ErrStripeRequired
		}
		log.Warnf(ctx, "stripe secret key is not set: payments will answer GatewayUnavailable")
		return payments.Unconfigured{}, nil
	}

	gw, err := payments.NewStripeGateway(payments.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		Timeout:   cfg.Stripe.Timeout,
		Logger:    log.Sugared(),
	})
	if err != nil {
		return nil, err
	}
	log.Infof(ctx, "stripe gateway configured currency=%s", cfg.Stripe.Currency)
	return gw, nil
}

// newMetricsServer: отдельный листенер для /metrics, если адрес задан и отличается от API.
func newMetricsServer(addr, apiAddr string) *http.Server {
	if addr == "" || addr == apiAddr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run: запускает HTTP-сервер и фоновые воркеры; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, len(a.Workers)+2)

	// Воркеры живут до отмены runCtx.
	runCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	done := make(chan struct{}, len(a.Workers))
	for _, w := range a.Workers {
		go func(w ports.BackgroundWorker) {
			defer func() { done <- struct{}{} }()
			a.Logger.Infof(ctx, "background worker starting")
			if err := w.Run(runCtx); err != nil {
				errCh <- err
			}
		}(w)
	}

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if a.MetricsServer != nil {
		go func() {
			a.Logger.Infof(ctx, "metrics server starting (addr=%s)", a.MetricsServer.Addr)
			if err := a.MetricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера: новые платежи больше не создаются.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}
	if a.MetricsServer != nil {
		if err := a.MetricsServer.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "metrics server shutdown failed: %v", err)
		}
	}

	// Остановка воркеров: они дописывают очередь и выходят.
	cancelWorkers()
wait:
	for range a.Workers {
		select {
		case <-done:
		case <-shutdownCtx.Done():
			a.Logger.Warnf(ctx, "background workers did not stop in %s", gt)
			break wait
		}
	}
	for _, w := range a.Workers {
		if err := w.Close(); err != nil {
			a.Logger.Warnf(ctx, "worker close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
