package repository

import (
	"context"
	"errors"

	"surveysvc/internal/common/db"
)

var (
	ErrProblemNotFound = errors.New("problem not found")
	ErrProblemExists   = errors.New("active problem id already exists for this survey")
)

// ProblemRepository provides access to problem records.
type ProblemRepository interface {
	// Create inserts a new active problem under its survey.
	// Returns ErrProblemExists if an active problem with the same
	// (surveyId, problemId) pair exists.
	Create(ctx context.Context, tx db.Transaction, problem *Problem) (int64, error)

	// GetActive returns the active problem matching (surveyId, problemId).
	// Returns ErrProblemNotFound if none exists.
	GetActive(ctx context.Context, tx db.Transaction, surveyID int64, problemID string) (Problem, error)

	// ListBySurvey returns problems under the survey whose is_deleted flag
	// matches deleted. The survey itself may be deleted; deletion does not
	// cascade to problems.
	ListBySurvey(ctx context.Context, surveyID int64, deleted bool) ([]Problem, error)
}

// MySQLProblemRepository implements ProblemRepository over MySQL.
type MySQLProblemRepository struct {
	db db.Database
}

func NewProblemRepository(database db.Database) ProblemRepository {
	return &MySQLProblemRepository{db: database}
}

func (r *MySQLProblemRepository) Create(ctx context.Context, tx db.Transaction, problem *Problem) (int64, error) {
	if problem == nil {
		return 0, errors.New("problem is nil")
	}

	query := "INSERT INTO problems (survey_id, problem_id, content) VALUES (?, ?, ?)"
	result, err := db.GetQuerier(r.db, tx).Exec(ctx, query, problem.SurveyID, problem.ProblemID, problem.Content)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return 0, ErrProblemExists
		}
		return 0, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	problem.ID = id
	return id, nil
}

func (r *MySQLProblemRepository) GetActive(ctx context.Context, tx db.Transaction, surveyID int64, problemID string) (Problem, error) {
	query := "SELECT " + problemColumns + " FROM problems WHERE survey_id = ? AND problem_id = ? AND is_deleted = 0"
	row := db.GetQuerier(r.db, tx).QueryRow(ctx, query, surveyID, problemID)
	problem, err := scanProblem(row)
	if err != nil {
		if db.IsNoRows(err) {
			return Problem{}, ErrProblemNotFound
		}
		return Problem{}, err
	}
	return problem, nil
}

func (r *MySQLProblemRepository) ListBySurvey(ctx context.Context, surveyID int64, deleted bool) ([]Problem, error) {
	query := "SELECT " + problemColumns + " FROM problems WHERE survey_id = ? AND is_deleted = ? ORDER BY id"
	rows, err := r.db.Query(ctx, query, surveyID, deleted)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	problems := make([]Problem, 0)
	for rows.Next() {
		problem, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		problems = append(problems, problem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return problems, nil
}
