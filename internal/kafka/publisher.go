package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Gunvolt24/jersey_checkout/internal/domain"
	"github.com/Gunvolt24/jersey_checkout/internal/ports"
	"github.com/Gunvolt24/jersey_checkout/pkg/metrics"
	"github.com/segmentio/kafka-go"
)

// Проверка, что Publisher удовлетворяет портам приложения.
var (
	_ ports.EventPublisher   = (*Publisher)(nil)
	_ ports.BackgroundWorker = (*Publisher)(nil)
)

var (
	// ErrQueueFull: очередь публикации переполнена, событие отброшено.
	ErrQueueFull = errors.New("kafka publish queue is full")
	// ErrPublisherClosed: публикатор остановлен.
	ErrPublisherClosed = errors.New("kafka publisher is closed")
)

// messageWriter: минимальный контракт над kafka.Writer,
// чтобы легко подменять его моками в тестах.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует события асинхронно: запрос кладёт событие в очередь
// и не ждёт брокера; фоновый Run пишет в Kafka с повторами.
type Publisher struct {
	writer       messageWriter
	topic        string
	log          ports.Logger
	queue        chan kafka.Message
	writeTimeout time.Duration
	retryInitial time.Duration
	retryMax     time.Duration
	maxAttempts  int
	jitterRand   *rand.Rand
	stopped      atomic.Bool
	closeOnce    sync.Once
}

// NewPublisher: конструктор с kafka.Writer из конфига.
func NewPublisher(cfg *PublisherConfig, log ports.Logger) *Publisher {
	return newPublisher(cfg.Writer(), cfg, log)
}

func newPublisher(w messageWriter, cfg *PublisherConfig, log ports.Logger) *Publisher {
	// Параметры по умолчанию (если не заданы в конфиге)
	qs := cfg.QueueSize
	if qs <= 0 {
		qs = 256
	}
	wt := cfg.WriteTimeout
	if wt <= 0 {
		wt = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = 200 * time.Millisecond
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 5 * time.Second
	}
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 5
	}

	return &Publisher{
		writer:       w,
		topic:        cfg.Topic,
		log:          log,
		queue:        make(chan kafka.Message, qs),
		writeTimeout: wt,
		retryInitial: rInit,
		retryMax:     rMax,
		maxAttempts:  attempts,
		jitterRand:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// PublishPaymentIntentCreated: кладёт событие в очередь; не блокируется.
func (p *Publisher) PublishPaymentIntentCreated(ctx context.Context, ev *domain.PaymentIntentCreated) error {
	if p.stopped.Load() {
		metrics.EventsDropped.WithLabelValues(p.topic).Inc()
		return ErrPublisherClosed
	}
	msg, err := encodeCreated(ev)
	if err != nil {
		return err
	}

	select {
	case p.queue <- msg:
		return nil
	default:
		metrics.EventsDropped.WithLabelValues(p.topic).Inc()
		p.log.Warnf(ctx, "kafka queue full, event dropped payment_intent=%s", ev.PaymentIntentID)
		return ErrQueueFull
	}
}

// Run, основной цикл: берём событие из очереди и пишем в Kafka с повторами.
// После отмены контекста дописываем то, что осталось в очереди (одна попытка на событие).
func (p *Publisher) Run(ctx context.Context) error {
	p.log.Infof(ctx, "kafka publisher started topic=%s", p.topic)

	for {
		select {
		case <-ctx.Done():
			p.stopped.Store(true)
			p.drain()
			return ctx.Err()
		case msg := <-p.queue:
			p.deliver(ctx, &msg)
		}
	}
}

// Close: закрывает writer. Вызывается при остановке приложения.
func (p *Publisher) Close() (retErr error) {
	p.closeOnce.Do(func() {
		p.stopped.Store(true)
		retErr = p.writer.Close()
	})
	return retErr
}

// deliver: запись с экспоненциальным backoff и equal-jitter между попытками.
func (p *Publisher) deliver(ctx context.Context, msg *kafka.Message) {
	retry := p.retryInitial
	for attempt := 1; ; attempt++ {
		err := p.write(ctx, msg)
		if err == nil {
			metrics.EventsPublished.WithLabelValues(p.topic).Inc()
			return
		}
		if attempt >= p.maxAttempts || ctx.Err() != nil {
			metrics.EventsFailed.WithLabelValues(p.topic).Inc()
			p.log.Errorf(ctx, "kafka write failed key=%s attempts=%d: %v (event dropped)", msg.Key, attempt, err)
			return
		}

		sleep := p.withJitterEqual(retry)
		p.log.Warnf(ctx, "kafka write failed key=%s: %v (will retry in %s)", msg.Key, err, sleep)
		if !p.sleepWithBackoff(ctx, sleep) {
			metrics.EventsFailed.WithLabelValues(p.topic).Inc()
			return
		}
		retry = p.nextBackoff(retry)
	}
}

func (p *Publisher) write(ctx context.Context, msg *kafka.Message) error {
	wctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()
	return p.writer.WriteMessages(wctx, *msg)
}

// drain: остаток очереди при остановке; контекст запуска уже отменён.
func (p *Publisher) drain() {
	for {
		select {
		case msg := <-p.queue:
			if err := p.write(context.Background(), &msg); err != nil {
				metrics.EventsFailed.WithLabelValues(p.topic).Inc()
				p.log.Warnf(context.Background(), "kafka write on shutdown failed key=%s: %v", msg.Key, err)
				continue
			}
			metrics.EventsPublished.WithLabelValues(p.topic).Inc()
		default:
			return
		}
	}
}
