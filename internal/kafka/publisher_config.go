package kafka

import (
	"time"

	"github.com/segmentio/kafka-go"
)

type PublisherConfig struct {
	Brokers      []string
	Topic        string
	QueueSize    int
	WriteTimeout time.Duration
	RetryInitial time.Duration
	RetryMax     time.Duration
	MaxAttempts  int
}

// Enabled: публикация включена, если заданы брокеры и топик.
func (c *PublisherConfig) Enabled() bool {
	return len(c.Brokers) > 0 && c.Topic != ""
}

// Writer: kafka.Writer с ключевым партиционированием (все события одного
// платежа попадают в одну партицию). Повторы делает Publisher, поэтому MaxAttempts=1.
func (c *PublisherConfig) Writer() *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  c.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            1,
		WriteTimeout:           c.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
}
