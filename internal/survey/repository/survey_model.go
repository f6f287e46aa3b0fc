package repository

import (
	"encoding/json"
	"time"

	"surveysvc/internal/common/db"
)

// Survey is a persisted survey record. Deleted surveys stay in the table
// with is_deleted set; they only leave default listings and uniqueness
// checks, never the table.
type Survey struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const surveyColumns = "id, name, is_deleted, created_at, updated_at"

func scanSurvey(scanner db.Scanner) (Survey, error) {
	var s Survey
	err := scanner.Scan(
		&s.ID,
		&s.Name,
		&s.IsDeleted,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return Survey{}, err
	}
	return s, nil
}

func marshalSurvey(s Survey) string {
	payload, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(payload)
}

func unmarshalSurvey(data string) (Survey, error) {
	if data == "" {
		return Survey{}, nil
	}
	var s Survey
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return Survey{}, err
	}
	return s, nil
}
