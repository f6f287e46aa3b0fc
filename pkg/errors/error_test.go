package errors_test

import (
	"errors"
	"fmt"
	"testing"

	. "surveysvc/pkg/errors"
)

func TestErrorCode_Message(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{Success, "Success"},
		{SurveyNotExists, "Survey not found"},
		{InvalidParams, "Invalid parameters"},
		{DatabaseError, "Database operation failed"},
		{NameNotExists, "Required field name is missing"},
		{ErrorCode("never_seen"), "Unknown error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.code.Message(); got != tt.want {
				t.Errorf("Message() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code       ErrorCode
		wantStatus int
	}{
		{Success, 200},
		{InvalidParams, 400},
		{NameNotExists, 400},
		{ContentNotExists, 400},
		{ProblemIDNotExists, 400},
		{SurveyAlreadyExists, 403},
		{ProblemAlreadyExists, 403},
		{SurveyNotExists, 404},
		{ProblemNotExists, 404},
		{InternalServerError, 500},
		{DatabaseError, 500},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.wantStatus {
				t.Errorf("HTTPStatus() = %v, want %v", got, tt.wantStatus)
			}
		})
	}
}

func TestNew(t *testing.T) {
	err := New(SurveyNotExists)
	if err.Code != SurveyNotExists {
		t.Errorf("Code = %v, want %v", err.Code, SurveyNotExists)
	}
	if err.Error() != "Survey not found" {
		t.Errorf("Error() = %v", err.Error())
	}
	if err.Stack == "" {
		t.Error("expected stack trace")
	}
}

func TestWrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := Wrap(inner, DatabaseError)
	if err.Code != DatabaseError {
		t.Errorf("Code = %v, want %v", err.Code, DatabaseError)
	}
	if !errors.Is(err, inner) {
		t.Error("wrapped error must unwrap to the original")
	}
	if Wrap(nil, DatabaseError) != nil {
		t.Error("wrapping nil must return nil")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(SurveyAlreadyExists)); got != SurveyAlreadyExists {
		t.Errorf("GetCode() = %v", got)
	}
	wrapped := fmt.Errorf("outer: %w", New(ProblemAlreadyExists))
	if got := GetCode(wrapped); got != ProblemAlreadyExists {
		t.Errorf("GetCode(wrapped) = %v", got)
	}
	if got := GetCode(errors.New("plain")); got != InternalServerError {
		t.Errorf("GetCode(plain) = %v, want %v", got, InternalServerError)
	}
	if got := GetCode(nil); got != Success {
		t.Errorf("GetCode(nil) = %v, want %v", got, Success)
	}
}

func TestGetError(t *testing.T) {
	custom := GetError(errors.New("boom"))
	if custom.Code != InternalServerError {
		t.Errorf("Code = %v, want %v", custom.Code, InternalServerError)
	}
	if custom.Err == nil || custom.Err.Error() != "boom" {
		t.Error("underlying error must be preserved")
	}
}
