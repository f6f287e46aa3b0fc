package service_test

import (
	"context"
	"testing"

	"surveysvc/internal/common/db"
	"surveysvc/internal/survey/repository"
	"surveysvc/internal/survey/service"
	"surveysvc/internal/testutil"
	pkgerrors "surveysvc/pkg/errors"
)

func TestCreateProblem(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	problemRepo := newFakeProblemRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(problemRepo, surveyRepo)

	surveyID, err := surveySvc.CreateSurvey(context.Background(), "Quiz")
	testutil.AssertNil(t, err)

	err = svc.CreateProblem(context.Background(), surveyID, "q1", "What is your name?")
	testutil.AssertNil(t, err)

	problems, err := svc.ListProblems(context.Background(), surveyID, false)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, len(problems), 1)
	testutil.AssertEqual(t, problems[0].ProblemID, "q1")
	testutil.AssertEqual(t, problems[0].Content, "What is your name?")
}

func TestCreateProblemMissingContent(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	problemRepo := newFakeProblemRepo()
	svc := service.NewProblemService(problemRepo, surveyRepo)

	err := svc.CreateProblem(context.Background(), 1, "q1", "")
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.ContentNotExists)
	testutil.AssertEqual(t, len(problemRepo.problems), 0)
}

func TestCreateProblemMissingProblemID(t *testing.T) {
	svc := service.NewProblemService(newFakeProblemRepo(), newFakeSurveyRepo())

	err := svc.CreateProblem(context.Background(), 1, "", "Some content")
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.ProblemIDNotExists)
}

func TestCreateProblemSurveyMissing(t *testing.T) {
	svc := service.NewProblemService(newFakeProblemRepo(), newFakeSurveyRepo())

	err := svc.CreateProblem(context.Background(), 42, "q1", "Some content")
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.SurveyNotExists)
}

func TestCreateProblemSurveyDeleted(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(newFakeProblemRepo(), surveyRepo)

	surveyID, err := surveySvc.CreateSurvey(context.Background(), "Gone")
	testutil.AssertNil(t, err)
	testutil.AssertNil(t, surveySvc.DeleteSurvey(context.Background(), surveyID))

	err = svc.CreateProblem(context.Background(), surveyID, "q1", "Some content")
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.SurveyNotExists)
}

func TestCreateProblemDuplicateID(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	problemRepo := newFakeProblemRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(problemRepo, surveyRepo)

	surveyID, err := surveySvc.CreateSurvey(context.Background(), "Quiz")
	testutil.AssertNil(t, err)

	testutil.AssertNil(t, svc.CreateProblem(context.Background(), surveyID, "q1", "First"))
	err = svc.CreateProblem(context.Background(), surveyID, "q1", "Second")
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.ProblemAlreadyExists)
	testutil.AssertEqual(t, len(problemRepo.problems), 1)
}

func TestCreateProblemSameIDAcrossSurveys(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	problemRepo := newFakeProblemRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(problemRepo, surveyRepo)

	firstID, err := surveySvc.CreateSurvey(context.Background(), "First")
	testutil.AssertNil(t, err)
	secondID, err := surveySvc.CreateSurvey(context.Background(), "Second")
	testutil.AssertNil(t, err)

	testutil.AssertNil(t, svc.CreateProblem(context.Background(), firstID, "q1", "A"))
	testutil.AssertNil(t, svc.CreateProblem(context.Background(), secondID, "q1", "B"))
}

func TestListProblemsSurveyMissing(t *testing.T) {
	svc := service.NewProblemService(newFakeProblemRepo(), newFakeSurveyRepo())

	_, err := svc.ListProblems(context.Background(), 42, false)
	testutil.AssertEqual(t, pkgerrors.GetCode(err), pkgerrors.SurveyNotExists)
}

func TestListProblemsUnderDeletedSurvey(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	problemRepo := newFakeProblemRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(problemRepo, surveyRepo)

	surveyID, err := surveySvc.CreateSurvey(context.Background(), "Soon Gone")
	testutil.AssertNil(t, err)
	testutil.AssertNil(t, svc.CreateProblem(context.Background(), surveyID, "q1", "Kept"))
	testutil.AssertNil(t, surveySvc.DeleteSurvey(context.Background(), surveyID))

	// Deleting a survey does not cascade; its problems stay listable.
	problems, err := svc.ListProblems(context.Background(), surveyID, false)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, len(problems), 1)
}

func TestListProblemsEmpty(t *testing.T) {
	surveyRepo := newFakeSurveyRepo()
	surveySvc := service.NewSurveyService(surveyRepo, nil)
	svc := service.NewProblemService(newFakeProblemRepo(), surveyRepo)

	surveyID, err := surveySvc.CreateSurvey(context.Background(), "Empty")
	testutil.AssertNil(t, err)

	problems, err := svc.ListProblems(context.Background(), surveyID, false)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, len(problems), 0)
}

// fakeProblemRepo is an in-memory ProblemRepository enforcing the
// per-survey active problem id uniqueness rule.
type fakeProblemRepo struct {
	nextID   int64
	problems []*repository.Problem
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{}
}

func (r *fakeProblemRepo) Create(ctx context.Context, tx db.Transaction, problem *repository.Problem) (int64, error) {
	for _, p := range r.problems {
		if p.SurveyID == problem.SurveyID && p.ProblemID == problem.ProblemID && !p.IsDeleted {
			return 0, repository.ErrProblemExists
		}
	}
	r.nextID++
	stored := *problem
	stored.ID = r.nextID
	r.problems = append(r.problems, &stored)
	problem.ID = r.nextID
	return r.nextID, nil
}

func (r *fakeProblemRepo) GetActive(ctx context.Context, tx db.Transaction, surveyID int64, problemID string) (repository.Problem, error) {
	for _, p := range r.problems {
		if p.SurveyID == surveyID && p.ProblemID == problemID && !p.IsDeleted {
			return *p, nil
		}
	}
	return repository.Problem{}, repository.ErrProblemNotFound
}

func (r *fakeProblemRepo) ListBySurvey(ctx context.Context, surveyID int64, deleted bool) ([]repository.Problem, error) {
	result := make([]repository.Problem, 0)
	for _, p := range r.problems {
		if p.SurveyID == surveyID && p.IsDeleted == deleted {
			result = append(result, *p)
		}
	}
	return result, nil
}
