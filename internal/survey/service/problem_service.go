package service

import (
	"context"
	"errors"
	"fmt"

	"surveysvc/internal/survey/repository"
	pkgerrors "surveysvc/pkg/errors"
)

// ProblemService manages problems nested under a survey.
type ProblemService struct {
	problemRepo repository.ProblemRepository
	surveyRepo  repository.SurveyRepository
}

func NewProblemService(problemRepo repository.ProblemRepository, surveyRepo repository.SurveyRepository) *ProblemService {
	return &ProblemService{problemRepo: problemRepo, surveyRepo: surveyRepo}
}

// CreateProblem adds a problem to an active survey. The caller-chosen
// problemID must be unused among the survey's active problems; content is
// stored verbatim.
func (s *ProblemService) CreateProblem(ctx context.Context, surveyID int64, problemID, content string) error {
	if content == "" {
		return pkgerrors.New(pkgerrors.ContentNotExists)
	}
	if problemID == "" {
		return pkgerrors.New(pkgerrors.ProblemIDNotExists)
	}
	if surveyID <= 0 {
		return pkgerrors.New(pkgerrors.InvalidParams)
	}

	survey, err := s.surveyRepo.GetByID(ctx, nil, surveyID)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}
	if survey.IsDeleted {
		return pkgerrors.New(pkgerrors.SurveyNotExists)
	}

	_, err = s.problemRepo.GetActive(ctx, nil, surveyID, problemID)
	if err == nil {
		return pkgerrors.New(pkgerrors.ProblemAlreadyExists)
	}
	if !errors.Is(err, repository.ErrProblemNotFound) {
		return pkgerrors.Wrap(fmt.Errorf("check problem id failed: %w", err), pkgerrors.DatabaseError)
	}

	problem := &repository.Problem{
		SurveyID:  surveyID,
		ProblemID: problemID,
		Content:   content,
	}
	if _, err := s.problemRepo.Create(ctx, nil, problem); err != nil {
		if errors.Is(err, repository.ErrProblemExists) {
			return pkgerrors.New(pkgerrors.ProblemAlreadyExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("create problem failed: %w", err), pkgerrors.DatabaseError)
	}
	return nil
}

// ListProblems returns the survey's problems matching the deletion
// filter. The parent survey must exist in any state; listing under a
// deleted survey is allowed.
func (s *ProblemService) ListProblems(ctx context.Context, surveyID int64, deleted bool) ([]repository.Problem, error) {
	if surveyID <= 0 {
		return nil, pkgerrors.New(pkgerrors.InvalidParams)
	}

	if _, err := s.surveyRepo.GetByID(ctx, nil, surveyID); err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return nil, pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return nil, pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}

	problems, err := s.problemRepo.ListBySurvey(ctx, surveyID, deleted)
	if err != nil {
		return nil, pkgerrors.Wrap(fmt.Errorf("list problems failed: %w", err), pkgerrors.DatabaseError)
	}
	return problems, nil
}
