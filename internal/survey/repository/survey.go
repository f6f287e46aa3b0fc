package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"surveysvc/internal/common/cache"
	"surveysvc/internal/common/db"
)

const (
	defaultSurveyTTL      = 30 * time.Minute
	defaultSurveyEmptyTTL = 5 * time.Minute
	surveyKeyPrefix       = "survey:id:"
)

var (
	ErrSurveyNotFound = errors.New("survey not found")
	ErrSurveyExists   = errors.New("active survey name already exists")
)

// SurveyRepository provides access to survey records.
type SurveyRepository interface {
	// Create inserts a new active survey and returns its assigned id.
	// Returns ErrSurveyExists if an active survey with the same name exists.
	Create(ctx context.Context, tx db.Transaction, name string) (int64, error)

	// GetByID returns the survey with the given id regardless of its
	// deletion state. Returns ErrSurveyNotFound if no row exists.
	GetByID(ctx context.Context, tx db.Transaction, surveyID int64) (Survey, error)

	// GetActiveByName returns the active survey with the given name.
	// Returns ErrSurveyNotFound if none exists.
	GetActiveByName(ctx context.Context, tx db.Transaction, name string) (Survey, error)

	// ListByDeleted returns all surveys whose is_deleted flag matches deleted.
	ListByDeleted(ctx context.Context, deleted bool) ([]Survey, error)

	// UpdateName overwrites the survey name in place.
	// Returns ErrSurveyExists if another active survey holds the name.
	UpdateName(ctx context.Context, tx db.Transaction, surveyID int64, name string) error

	// SetDeleted transitions the survey between active and deleted. The
	// update only matches a row currently in the opposite state, so a
	// repeated delete or recover reports ErrSurveyNotFound.
	SetDeleted(ctx context.Context, surveyID int64, deleted bool) error

	// InvalidateCache drops the cached entry for the survey id.
	InvalidateCache(ctx context.Context, surveyID int64) error
}

// MySQLSurveyRepository implements SurveyRepository over MySQL with an
// optional cache-aside layer for lookups by id.
type MySQLSurveyRepository struct {
	db       db.Database
	cache    cache.Cache
	ttl      time.Duration
	emptyTTL time.Duration
}

func NewSurveyRepository(database db.Database, cacheClient cache.Cache) SurveyRepository {
	return NewSurveyRepositoryWithTTL(database, cacheClient, defaultSurveyTTL, defaultSurveyEmptyTTL)
}

func NewSurveyRepositoryWithTTL(database db.Database, cacheClient cache.Cache, ttl, emptyTTL time.Duration) SurveyRepository {
	if ttl <= 0 {
		ttl = defaultSurveyTTL
	}
	if emptyTTL <= 0 {
		emptyTTL = defaultSurveyEmptyTTL
	}
	return &MySQLSurveyRepository{
		db:       database,
		cache:    cacheClient,
		ttl:      ttl,
		emptyTTL: emptyTTL,
	}
}

func (r *MySQLSurveyRepository) Create(ctx context.Context, tx db.Transaction, name string) (int64, error) {
	query := "INSERT INTO surveys (name) VALUES (?)"
	result, err := db.GetQuerier(r.db, tx).Exec(ctx, query, name)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return 0, ErrSurveyExists
		}
		return 0, err
	}
	return result.LastInsertId()
}

func (r *MySQLSurveyRepository) GetByID(ctx context.Context, tx db.Transaction, surveyID int64) (Survey, error) {
	if r.cache != nil && tx == nil {
		survey, err := cache.GetWithCached[Survey](
			ctx,
			r.cache,
			surveyKey(surveyID),
			cache.JitterTTL(r.ttl),
			cache.JitterTTL(r.emptyTTL),
			func(s Survey) bool { return s.ID == 0 },
			marshalSurvey,
			unmarshalSurvey,
			func(ctx context.Context) (Survey, error) {
				s, err := r.getByIDFromDB(ctx, nil, surveyID)
				if err != nil {
					if errors.Is(err, ErrSurveyNotFound) {
						return Survey{}, nil
					}
					return Survey{}, err
				}
				return s, nil
			},
		)
		if err != nil {
			return Survey{}, err
		}
		if survey.ID == 0 {
			return Survey{}, ErrSurveyNotFound
		}
		return survey, nil
	}
	return r.getByIDFromDB(ctx, tx, surveyID)
}

func (r *MySQLSurveyRepository) GetActiveByName(ctx context.Context, tx db.Transaction, name string) (Survey, error) {
	query := "SELECT " + surveyColumns + " FROM surveys WHERE name = ? AND is_deleted = 0"
	row := db.GetQuerier(r.db, tx).QueryRow(ctx, query, name)
	survey, err := scanSurvey(row)
	if err != nil {
		if db.IsNoRows(err) {
			return Survey{}, ErrSurveyNotFound
		}
		return Survey{}, err
	}
	return survey, nil
}

func (r *MySQLSurveyRepository) ListByDeleted(ctx context.Context, deleted bool) ([]Survey, error) {
	query := "SELECT " + surveyColumns + " FROM surveys WHERE is_deleted = ? ORDER BY id"
	rows, err := r.db.Query(ctx, query, deleted)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	surveys := make([]Survey, 0)
	for rows.Next() {
		survey, err := scanSurvey(rows)
		if err != nil {
			return nil, err
		}
		surveys = append(surveys, survey)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *MySQLSurveyRepository) UpdateName(ctx context.Context, tx db.Transaction, surveyID int64, name string) error {
	query := "UPDATE surveys SET name = ? WHERE id = ?"
	_, err := db.GetQuerier(r.db, tx).Exec(ctx, query, name, surveyID)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return ErrSurveyExists
		}
		return err
	}
	return nil
}

func (r *MySQLSurveyRepository) SetDeleted(ctx context.Context, surveyID int64, deleted bool) error {
	query := "UPDATE surveys SET is_deleted = ? WHERE id = ? AND is_deleted = ?"
	result, err := r.db.Exec(ctx, query, deleted, surveyID, !deleted)
	if err != nil {
		// Recovering a survey whose name was retaken by a newer active
		// survey trips the uniqueness index.
		if _, ok := db.UniqueViolation(err); ok {
			return ErrSurveyExists
		}
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSurveyNotFound
	}
	return nil
}

func (r *MySQLSurveyRepository) InvalidateCache(ctx context.Context, surveyID int64) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Del(ctx, surveyKey(surveyID))
}

func (r *MySQLSurveyRepository) getByIDFromDB(ctx context.Context, tx db.Transaction, surveyID int64) (Survey, error) {
	query := "SELECT " + surveyColumns + " FROM surveys WHERE id = ?"
	row := db.GetQuerier(r.db, tx).QueryRow(ctx, query, surveyID)
	survey, err := scanSurvey(row)
	if err != nil {
		if db.IsNoRows(err) {
			return Survey{}, ErrSurveyNotFound
		}
		return Survey{}, err
	}
	return survey, nil
}

func surveyKey(surveyID int64) string {
	return surveyKeyPrefix + strconv.FormatInt(surveyID, 10)
}
