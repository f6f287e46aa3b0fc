package errors

// ErrorCode is the machine-readable error identifier carried in every
// non-2xx response body.
type ErrorCode string

const (
	// Success marks an operation that produced no error.
	Success ErrorCode = "ok"

	// ========== Generic errors ==========

	InternalServerError ErrorCode = "unknown_error"
	InvalidParams       ErrorCode = "invalid_params"
	DatabaseError       ErrorCode = "database_error"

	// ========== Validation errors (required field missing) ==========

	NameNotExists      ErrorCode = "name_not_exists"
	ContentNotExists   ErrorCode = "content_not_exists"
	ProblemIDNotExists ErrorCode = "problemId_not_exists"

	// ========== Survey module errors ==========

	SurveyNotExists     ErrorCode = "survey_not_exists"
	SurveyAlreadyExists ErrorCode = "survey_already_exists"

	// ========== Problem module errors ==========

	ProblemNotExists     ErrorCode = "problem_not_exists"
	ProblemAlreadyExists ErrorCode = "problem_already_exists"
)

// errorMessages maps error codes to their default English messages
var errorMessages = map[ErrorCode]string{
	Success:             "Success",
	InternalServerError: "Internal server error",
	InvalidParams:       "Invalid parameters",
	DatabaseError:       "Database operation failed",

	NameNotExists:      "Required field name is missing",
	ContentNotExists:   "Required field content is missing",
	ProblemIDNotExists: "Required field problemId is missing",

	SurveyNotExists:     "Survey not found",
	SurveyAlreadyExists: "Survey name already in use",

	ProblemNotExists:     "Problem not found",
	ProblemAlreadyExists: "Problem id already in use within this survey",
}

// Message returns the default message for the error code
func (c ErrorCode) Message() string {
	if msg, ok := errorMessages[c]; ok {
		return msg
	}
	return "Unknown error"
}

// HTTPStatus returns the HTTP status code for the error code.
// Absent entities map to 404 and uniqueness conflicts to 403.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case Success:
		return 200
	case InvalidParams, NameNotExists, ContentNotExists, ProblemIDNotExists:
		return 400
	case SurveyAlreadyExists, ProblemAlreadyExists:
		return 403
	case SurveyNotExists, ProblemNotExists:
		return 404
	default:
		return 500
	}
}
