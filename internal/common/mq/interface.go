package mq

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Producer defines the interface for publishing messages. The survey
// service only produces; consumers live in downstream services.
type Producer interface {
	// Publish publishes a message to the specified topic
	Publish(ctx context.Context, topic string, message *Message) error

	// Ping verifies the message queue connection is alive
	Ping(ctx context.Context) error

	// Close closes the message queue connection
	Close() error
}

// Message represents a message in the queue
type Message struct {
	// ID is the unique identifier for the message
	ID string `json:"id"`

	// Body is the message payload
	Body []byte `json:"body"`

	// Timestamp is when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a message with a generated id and current timestamp.
func NewMessage(body []byte) *Message {
	return &Message{
		ID:        uuid.NewString(),
		Body:      body,
		Timestamp: time.Now().UTC(),
	}
}
