package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"surveysvc/internal/common/cache"
	"surveysvc/internal/common/db"
	"surveysvc/internal/survey/repository"
	"surveysvc/internal/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRepoTestCache(t *testing.T) *cache.RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c, err := cache.NewRedisCacheWithClient(client)
	testutil.AssertNil(t, err)
	return c
}

func TestGetByIDCachesResult(t *testing.T) {
	database := &fakeSurveyDB{surveys: map[int64]repository.Survey{
		1: {ID: 1, Name: "Cached", CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}}
	repo := repository.NewSurveyRepository(database, newRepoTestCache(t))
	ctx := context.Background()

	first, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, first.Name, "Cached")
	testutil.AssertEqual(t, database.lookups, 1)

	second, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, second.Name, "Cached")
	testutil.AssertTrue(t, second.CreatedAt.Equal(first.CreatedAt), "cache round trip must keep timestamps")
	testutil.AssertEqual(t, database.lookups, 1)
}

func TestGetByIDCachesAbsence(t *testing.T) {
	database := &fakeSurveyDB{surveys: map[int64]repository.Survey{}}
	repo := repository.NewSurveyRepository(database, newRepoTestCache(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, nil, 42)
	testutil.AssertTrue(t, errors.Is(err, repository.ErrSurveyNotFound), "missing survey must report not found")
	testutil.AssertEqual(t, database.lookups, 1)

	_, err = repo.GetByID(ctx, nil, 42)
	testutil.AssertTrue(t, errors.Is(err, repository.ErrSurveyNotFound), "cached absence must still report not found")
	testutil.AssertEqual(t, database.lookups, 1)
}

func TestInvalidateCacheForcesReload(t *testing.T) {
	database := &fakeSurveyDB{surveys: map[int64]repository.Survey{
		1: {ID: 1, Name: "Before"},
	}}
	repo := repository.NewSurveyRepository(database, newRepoTestCache(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertNil(t, err)

	database.surveys[1] = repository.Survey{ID: 1, Name: "After"}
	testutil.AssertNil(t, repo.InvalidateCache(ctx, 1))

	survey, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, survey.Name, "After")
	testutil.AssertEqual(t, database.lookups, 2)
}

func TestInvalidateCacheDropsNullEntry(t *testing.T) {
	database := &fakeSurveyDB{surveys: map[int64]repository.Survey{}}
	repo := repository.NewSurveyRepository(database, newRepoTestCache(t))
	ctx := context.Background()

	_, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertTrue(t, errors.Is(err, repository.ErrSurveyNotFound), "missing survey must report not found")

	// The row appears after the absence was cached, as on create.
	database.surveys[1] = repository.Survey{ID: 1, Name: "Fresh"}
	testutil.AssertNil(t, repo.InvalidateCache(ctx, 1))

	survey, err := repo.GetByID(ctx, nil, 1)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, survey.Name, "Fresh")
	testutil.AssertEqual(t, database.lookups, 2)
}

func TestGetByIDWithoutCache(t *testing.T) {
	database := &fakeSurveyDB{surveys: map[int64]repository.Survey{
		1: {ID: 1, Name: "Direct"},
	}}
	repo := repository.NewSurveyRepository(database, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		survey, err := repo.GetByID(ctx, nil, 1)
		testutil.AssertNil(t, err)
		testutil.AssertEqual(t, survey.Name, "Direct")
	}
	testutil.AssertEqual(t, database.lookups, 2)
}

// fakeSurveyDB answers id lookups from an in-memory map and counts how
// many reach the database.
type fakeSurveyDB struct {
	surveys map[int64]repository.Survey
	lookups int
}

func (d *fakeSurveyDB) Query(ctx context.Context, query string, args ...interface{}) (db.Rows, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeSurveyDB) QueryRow(ctx context.Context, query string, args ...interface{}) db.Row {
	d.lookups++
	id, _ := args[0].(int64)
	s, ok := d.surveys[id]
	return &fakeRow{survey: s, found: ok}
}

func (d *fakeSurveyDB) Exec(ctx context.Context, query string, args ...interface{}) (db.Result, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeSurveyDB) Transaction(ctx context.Context, fn func(tx db.Transaction) error) error {
	return errors.New("not implemented")
}

func (d *fakeSurveyDB) BeginTx(ctx context.Context, opts *db.TxOptions) (db.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (d *fakeSurveyDB) Ping(ctx context.Context) error { return nil }

func (d *fakeSurveyDB) Close() error { return nil }

type fakeRow struct {
	survey repository.Survey
	found  bool
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if !r.found {
		return sql.ErrNoRows
	}
	*dest[0].(*int64) = r.survey.ID
	*dest[1].(*string) = r.survey.Name
	*dest[2].(*bool) = r.survey.IsDeleted
	*dest[3].(*time.Time) = r.survey.CreatedAt
	*dest[4].(*time.Time) = r.survey.UpdatedAt
	return nil
}
