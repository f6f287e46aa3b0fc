package service

import (
	"context"
	"errors"
	"fmt"

	"surveysvc/internal/survey/model"
	"surveysvc/internal/survey/repository"
	pkgerrors "surveysvc/pkg/errors"
	"surveysvc/pkg/utils/logger"

	"go.uber.org/zap"
)

// SurveyService manages the survey collection and its active/deleted
// state machine.
type SurveyService struct {
	repo   repository.SurveyRepository
	events *SurveyEventPublisher
}

// NewSurveyService creates a new SurveyService. events may be nil, in
// which case lifecycle events are not published.
func NewSurveyService(repo repository.SurveyRepository, events *SurveyEventPublisher) *SurveyService {
	return &SurveyService{repo: repo, events: events}
}

// CreateSurvey creates a new active survey. The name must be non-empty
// and unused by any other active survey; names of deleted surveys do not
// conflict.
func (s *SurveyService) CreateSurvey(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, pkgerrors.New(pkgerrors.NameNotExists)
	}

	// Check first so a rejected name never consumes a sequence value; the
	// storage uniqueness index still backstops concurrent creates.
	_, err := s.repo.GetActiveByName(ctx, nil, name)
	if err == nil {
		return 0, pkgerrors.New(pkgerrors.SurveyAlreadyExists)
	}
	if !errors.Is(err, repository.ErrSurveyNotFound) {
		return 0, pkgerrors.Wrap(fmt.Errorf("check survey name failed: %w", err), pkgerrors.DatabaseError)
	}

	id, err := s.repo.Create(ctx, nil, name)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyExists) {
			return 0, pkgerrors.New(pkgerrors.SurveyAlreadyExists)
		}
		return 0, pkgerrors.Wrap(fmt.Errorf("create survey failed: %w", err), pkgerrors.DatabaseError)
	}

	// A lookup for the not-yet-issued id may have cached an absence marker.
	_ = s.repo.InvalidateCache(ctx, id)

	s.publishEvent(ctx, model.SurveyEventCreated, id, name)
	return id, nil
}

// ListSurveys returns all surveys matching the deletion filter.
func (s *SurveyService) ListSurveys(ctx context.Context, deleted bool) ([]repository.Survey, error) {
	surveys, err := s.repo.ListByDeleted(ctx, deleted)
	if err != nil {
		return nil, pkgerrors.Wrap(fmt.Errorf("list surveys failed: %w", err), pkgerrors.DatabaseError)
	}
	return surveys, nil
}

// GetSurvey returns the active survey with the given id. Deleted surveys
// are invisible to plain lookups.
func (s *SurveyService) GetSurvey(ctx context.Context, surveyID int64) (repository.Survey, error) {
	if surveyID <= 0 {
		return repository.Survey{}, pkgerrors.New(pkgerrors.InvalidParams)
	}

	survey, err := s.repo.GetByID(ctx, nil, surveyID)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return repository.Survey{}, pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return repository.Survey{}, pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}
	if survey.IsDeleted {
		return repository.Survey{}, pkgerrors.New(pkgerrors.SurveyNotExists)
	}
	return survey, nil
}

// RenameSurvey overwrites the survey name in place. The survey may be
// active or deleted; the new name must not belong to another active
// survey. Renaming a survey to its own current name is a no-op success.
func (s *SurveyService) RenameSurvey(ctx context.Context, surveyID int64, name string) error {
	if name == "" {
		return pkgerrors.New(pkgerrors.NameNotExists)
	}
	if surveyID <= 0 {
		return pkgerrors.New(pkgerrors.InvalidParams)
	}

	if _, err := s.repo.GetByID(ctx, nil, surveyID); err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}

	holder, err := s.repo.GetActiveByName(ctx, nil, name)
	if err == nil && holder.ID != surveyID {
		return pkgerrors.New(pkgerrors.SurveyAlreadyExists)
	}
	if err != nil && !errors.Is(err, repository.ErrSurveyNotFound) {
		return pkgerrors.Wrap(fmt.Errorf("check survey name failed: %w", err), pkgerrors.DatabaseError)
	}

	if err := s.repo.UpdateName(ctx, nil, surveyID, name); err != nil {
		if errors.Is(err, repository.ErrSurveyExists) {
			return pkgerrors.New(pkgerrors.SurveyAlreadyExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("rename survey failed: %w", err), pkgerrors.DatabaseError)
	}
	_ = s.repo.InvalidateCache(ctx, surveyID)
	return nil
}

// DeleteSurvey soft-deletes an active survey. Deleting an already deleted
// survey fails with a not-found error, matching the transition guard.
func (s *SurveyService) DeleteSurvey(ctx context.Context, surveyID int64) error {
	if surveyID <= 0 {
		return pkgerrors.New(pkgerrors.InvalidParams)
	}

	survey, err := s.repo.GetByID(ctx, nil, surveyID)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}
	if survey.IsDeleted {
		return pkgerrors.New(pkgerrors.SurveyNotExists)
	}

	if err := s.repo.SetDeleted(ctx, surveyID, true); err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("delete survey failed: %w", err), pkgerrors.DatabaseError)
	}
	_ = s.repo.InvalidateCache(ctx, surveyID)

	s.publishEvent(ctx, model.SurveyEventDeleted, surveyID, survey.Name)
	return nil
}

// RecoverSurvey reverses a soft delete. The survey must currently be
// deleted; if its name was retaken by a newer active survey in the
// meantime, recovery fails with a conflict.
func (s *SurveyService) RecoverSurvey(ctx context.Context, surveyID int64) error {
	if surveyID <= 0 {
		return pkgerrors.New(pkgerrors.InvalidParams)
	}

	survey, err := s.repo.GetByID(ctx, nil, surveyID)
	if err != nil {
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("get survey failed: %w", err), pkgerrors.DatabaseError)
	}
	if !survey.IsDeleted {
		return pkgerrors.New(pkgerrors.SurveyNotExists)
	}

	if err := s.repo.SetDeleted(ctx, surveyID, false); err != nil {
		if errors.Is(err, repository.ErrSurveyExists) {
			return pkgerrors.New(pkgerrors.SurveyAlreadyExists)
		}
		if errors.Is(err, repository.ErrSurveyNotFound) {
			return pkgerrors.New(pkgerrors.SurveyNotExists)
		}
		return pkgerrors.Wrap(fmt.Errorf("recover survey failed: %w", err), pkgerrors.DatabaseError)
	}
	_ = s.repo.InvalidateCache(ctx, surveyID)

	s.publishEvent(ctx, model.SurveyEventRecovered, surveyID, survey.Name)
	return nil
}

func (s *SurveyService) publishEvent(ctx context.Context, eventType string, surveyID int64, name string) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, eventType, surveyID, name); err != nil {
		logger.Warn(ctx, "publish survey event failed",
			zap.String("event_type", eventType),
			zap.Int64("survey_id", surveyID),
			zap.Error(err),
		)
	}
}
