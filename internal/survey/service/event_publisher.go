package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"surveysvc/internal/common/mq"
	"surveysvc/internal/survey/model"
)

// SurveyEventPublisher publishes survey lifecycle events.
type SurveyEventPublisher struct {
	producer mq.Producer
	topic    string
}

// NewSurveyEventPublisher creates a new lifecycle event publisher.
func NewSurveyEventPublisher(producer mq.Producer, topic string) *SurveyEventPublisher {
	return &SurveyEventPublisher{
		producer: producer,
		topic:    topic,
	}
}

// Publish publishes a lifecycle event of the given type for the survey.
func (p *SurveyEventPublisher) Publish(ctx context.Context, eventType string, surveyID int64, name string) error {
	if p == nil || p.producer == nil {
		return errors.New("event publisher is nil")
	}
	if p.topic == "" {
		return errors.New("event topic is empty")
	}
	if surveyID <= 0 {
		return errors.New("surveyID is required")
	}
	event := model.SurveyLifecycleEvent{
		EventType:  eventType,
		SurveyID:   surveyID,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal lifecycle event failed: %w", err)
	}
	message := mq.NewMessage(payload)
	message.ID = fmt.Sprintf("%s-%d-%d", eventType, surveyID, time.Now().UnixNano())
	if err := p.producer.Publish(ctx, p.topic, message); err != nil {
		return fmt.Errorf("publish lifecycle event failed: %w", err)
	}
	return nil
}
