package repository

import (
	"time"

	"surveysvc/internal/common/db"
)

// Problem is a content record nested under a survey. ProblemID is the
// caller-supplied identifier, unique among active problems of one survey;
// ID is the storage row key and never leaves the repository layer.
type Problem struct {
	ID        int64     `json:"-"`
	SurveyID  int64     `json:"surveyId"`
	ProblemID string    `json:"problemId"`
	Content   string    `json:"content"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const problemColumns = "id, survey_id, problem_id, content, is_deleted, created_at, updated_at"

func scanProblem(scanner db.Scanner) (Problem, error) {
	var p Problem
	err := scanner.Scan(
		&p.ID,
		&p.SurveyID,
		&p.ProblemID,
		&p.Content,
		&p.IsDeleted,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return Problem{}, err
	}
	return p, nil
}
