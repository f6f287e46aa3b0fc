package db_test

import (
	"database/sql"
	"fmt"
	"testing"

	"surveysvc/internal/common/db"
	"surveysvc/internal/testutil"

	"github.com/go-sql-driver/mysql"
)

func TestUniqueViolation(t *testing.T) {
	err := &mysql.MySQLError{
		Number:  1062,
		Message: "Duplicate entry 'Customer Feedback-1' for key 'uk_surveys_name_active'",
	}

	key, ok := db.UniqueViolation(err)
	testutil.AssertTrue(t, ok, "1062 must report a unique violation")
	testutil.AssertEqual(t, key, "uk_surveys_name_active")
}

func TestUniqueViolationWrapped(t *testing.T) {
	inner := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'x' for key `uk_problems_survey_problem_active`"}
	err := fmt.Errorf("insert failed: %w", inner)

	key, ok := db.UniqueViolation(err)
	testutil.AssertTrue(t, ok, "wrapped 1062 must still be detected")
	testutil.AssertEqual(t, key, "uk_problems_survey_problem_active")
}

func TestUniqueViolationOtherError(t *testing.T) {
	_, ok := db.UniqueViolation(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})
	testutil.AssertFalse(t, ok, "non-1062 errors are not unique violations")

	_, ok = db.UniqueViolation(sql.ErrNoRows)
	testutil.AssertFalse(t, ok, "plain errors are not unique violations")
}

func TestExtractDuplicateKeyName(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"Duplicate entry 'a' for key 'uk_surveys_name_active'", "uk_surveys_name_active"},
		{"Duplicate entry 'a' for key `surveys.uk_surveys_name_active`", "surveys.uk_surveys_name_active"},
		{"Duplicate entry 'a'", ""},
		{"", ""},
	}
	for _, tc := range cases {
		testutil.AssertEqual(t, db.ExtractDuplicateKeyName(tc.message), tc.want)
	}
}

func TestIsNoRows(t *testing.T) {
	testutil.AssertTrue(t, db.IsNoRows(sql.ErrNoRows), "sql.ErrNoRows must match")
	testutil.AssertTrue(t, db.IsNoRows(fmt.Errorf("scan: %w", sql.ErrNoRows)), "wrapped sql.ErrNoRows must match")
	testutil.AssertFalse(t, db.IsNoRows(sql.ErrConnDone), "other errors must not match")
}
