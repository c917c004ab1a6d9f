package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Итог обработки запроса на создание платёжного намерения.
var (
	CheckoutRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_requests_total",
			Help: "Checkout requests by result kind (ok or error kind)",
		},
		[]string{"result"},
	)
	OrderTotal = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "checkout_order_total_brl",
			Help:    "Grand total of priced orders in major units",
			Buckets: []float64{100, 200, 300, 500, 750, 1000, 1500, 2500, 5000},
		},
	)
)

// Вызовы платёжного шлюза.
var (
	GatewayCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_gateway_calls_total",
			Help: "Payment gateway calls by operation and outcome",
		},
		[]string{"op", "outcome"}, // op: create|get; outcome: ok|unavailable|error|not_found|canceled
	)
	GatewayLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_gateway_latency_seconds",
			Help:    "Payment gateway call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

// Публикация событий в Kafka.
var (
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_events_published_total",
			Help: "Events written to Kafka",
		},
		[]string{"topic"},
	)
	EventsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_events_failed_total",
			Help: "Events dropped after retries",
		},
		[]string{"topic"},
	)
	EventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_events_dropped_total",
			Help: "Events dropped because the publish queue was full or closed",
		},
		[]string{"topic"},
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister: регистрация всех метрик в DefaultRegisterer; повторный вызов безопасен.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			CheckoutRequests, OrderTotal,
			GatewayCalls, GatewayLatency,
			EventsPublished, EventsFailed, EventsDropped,
			CacheOps, CacheSize,
		)
	})
}
