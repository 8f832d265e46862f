package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"
)

// Message represents a Kafka message.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer wraps a kafka-go writer for publishing messages.
// Writers are created lazily per topic and reused.
type Producer struct {
	cfg     Config
	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer creates a Producer for the given broker configuration.
func NewProducer(cfg Config) *Producer {
	return &Producer{
		cfg:     cfg,
		writers: make(map[string]*kafkago.Writer),
	}
}

func (p *Producer) writerFor(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	transport := &kafkago.Transport{}
	if p.cfg.TLS {
		transport.TLS = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	if p.cfg.SASLEnabled {
		transport.SASL = resolveSASL(p.cfg)
	}

	w := &kafkago.Writer{
		Addr:         kafkago.TCP(p.cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		WriteTimeout: 10 * time.Second,
		Transport:    transport,
	}
	p.writers[topic] = w
	return w
}

func resolveSASL(cfg Config) sasl.Mechanism {
	switch cfg.SASLMechanism {
	case "SCRAM-SHA-256":
		m, err := scram.Mechanism(scram.SHA256, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "SCRAM-SHA-512":
		m, err := scram.Mechanism(scram.SHA512, cfg.SASLUsername, cfg.SASLPassword)
		if err != nil {
			return nil
		}
		return m
	case "PLAIN", "":
		return &plain.Mechanism{
			Username: cfg.SASLUsername,
			Password: cfg.SASLPassword,
		}
	default:
		return nil
	}
}

// Publish writes messages to the given topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}

	kafkaMessages := make([]kafkago.Message, 0, len(messages))
	for _, m := range messages {
		headers := make([]kafkago.Header, 0, len(m.Headers))
		for k, v := range m.Headers {
			headers = append(headers, kafkago.Header{Key: k, Value: []byte(v)})
		}
		kafkaMessages = append(kafkaMessages, kafkago.Message{
			Key:     m.Key,
			Value:   m.Value,
			Headers: headers,
		})
	}

	if err := p.writerFor(topic).WriteMessages(ctx, kafkaMessages...); err != nil {
		return fmt.Errorf("kafka: write messages to %s: %w", topic, err)
	}
	return nil
}

// Close closes all topic writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("kafka: close writer for %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}
