package model

import "time"

const (
	SurveyEventCreated   = "survey.created"
	SurveyEventDeleted   = "survey.deleted"
	SurveyEventRecovered = "survey.recovered"
)

// SurveyLifecycleEvent notifies downstream consumers of a survey state
// change. Events are advisory; no consumer is required for correctness.
type SurveyLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	SurveyID   int64     `json:"survey_id"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}
