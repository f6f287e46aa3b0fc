package mq

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

const (
	headerID        = "x-message-id"
	headerTimestamp = "x-message-ts"
)

// KafkaConfig defines configuration for the Kafka producer.
type KafkaConfig struct {
	Brokers  []string `yaml:"brokers"`
	ClientID string   `yaml:"clientID"`

	// Producer settings
	RequiredAcks kafka.RequiredAcks `yaml:"requiredAcks"`
	BatchSize    int                `yaml:"batchSize"`
	BatchTimeout time.Duration      `yaml:"batchTimeout"`

	// Dialer settings
	DialTimeout  time.Duration `yaml:"dialTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

// DefaultKafkaConfig returns a KafkaConfig with sensible defaults.
func DefaultKafkaConfig() *KafkaConfig {
	return &KafkaConfig{
		RequiredAcks: kafka.RequireOne,
		BatchSize:    100,
		BatchTimeout: 100 * time.Millisecond,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// KafkaProducer implements Producer using kafka-go. Writers are created
// lazily per topic and reused across calls.
type KafkaProducer struct {
	config  KafkaConfig
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

// NewKafkaProducer creates a Kafka producer.
func NewKafkaProducer(config KafkaConfig) (*KafkaProducer, error) {
	if len(config.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	defaults := DefaultKafkaConfig()
	if config.RequiredAcks == 0 {
		config.RequiredAcks = defaults.RequiredAcks
	}
	if config.BatchSize == 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.BatchTimeout == 0 {
		config.BatchTimeout = defaults.BatchTimeout
	}
	if config.DialTimeout == 0 {
		config.DialTimeout = defaults.DialTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}

	return &KafkaProducer{
		config:  config,
		writers: make(map[string]*kafka.Writer),
	}, nil
}

// Publish publishes a single message to the topic.
func (p *KafkaProducer) Publish(ctx context.Context, topic string, message *Message) error {
	if topic == "" {
		return fmt.Errorf("topic cannot be empty")
	}
	if message == nil {
		return fmt.Errorf("message cannot be nil")
	}

	writer := p.writerFor(topic)
	kafkaMsg := kafka.Message{
		Key:   []byte(message.ID),
		Value: message.Body,
		Headers: []kafka.Header{
			{Key: headerID, Value: []byte(message.ID)},
			{Key: headerTimestamp, Value: []byte(strconv.FormatInt(message.Timestamp.UnixMilli(), 10))},
		},
	}

	if err := writer.WriteMessages(ctx, kafkaMsg); err != nil {
		return fmt.Errorf("publish to topic %s failed: %w", topic, err)
	}
	return nil
}

// Ping dials the first broker to verify connectivity.
func (p *KafkaProducer) Ping(ctx context.Context) error {
	dialer := &kafka.Dialer{Timeout: p.config.DialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.config.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial kafka broker failed: %w", err)
	}
	return conn.Close()
}

// Close closes all topic writers.
func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close writer for topic %s failed: %w", topic, err)
		}
		delete(p.writers, topic)
	}
	return firstErr
}

func (p *KafkaProducer) writerFor(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(p.config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: p.config.RequiredAcks,
		BatchSize:    p.config.BatchSize,
		BatchTimeout: p.config.BatchTimeout,
		WriteTimeout: p.config.WriteTimeout,
		Transport: &kafka.Transport{
			DialTimeout: p.config.DialTimeout,
			Dial:        (&net.Dialer{Timeout: p.config.DialTimeout}).DialContext,
			ClientID:    p.config.ClientID,
		},
	}
	p.writers[topic] = writer
	return writer
}
