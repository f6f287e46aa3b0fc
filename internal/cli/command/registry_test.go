package command_test

import (
	"testing"

	"surveysvc/internal/cli/command"
	"surveysvc/internal/testutil"
)

func TestRegistryCoversAllEndpoints(t *testing.T) {
	commands := command.Registry()
	for _, key := range []string{
		"survey create",
		"survey list",
		"survey get",
		"survey rename",
		"survey delete",
		"survey recover",
		"problem create",
		"problem list",
	} {
		_, ok := commands[key]
		testutil.AssertTrue(t, ok, "missing command: "+key)
	}
}

func TestBuildRequestSurveyCreate(t *testing.T) {
	cmd := command.Registry()["survey create"]
	params := command.Params{}
	params.Set("name", "Customer Feedback")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Method, "POST")
	testutil.AssertEqual(t, req.Path, "/survey")
	testutil.AssertEqual(t, string(req.Body), `{"name":"Customer Feedback"}`)
}

func TestBuildRequestSurveyGet(t *testing.T) {
	cmd := command.Registry()["survey get"]
	params := command.Params{}
	params.Set("surveyId", "12")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Method, "GET")
	testutil.AssertEqual(t, req.Path, "/survey/12")
	testutil.AssertEqual(t, len(req.Body), 0)
}

func TestBuildRequestIDAlias(t *testing.T) {
	cmd := command.Registry()["survey delete"]
	params := command.Params{}
	params.Set("id", "7")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Path, "/survey/7")
}

func TestBuildRequestMissingSurveyID(t *testing.T) {
	cmd := command.Registry()["survey recover"]

	_, err := command.BuildRequest(cmd, command.Params{})
	testutil.AssertTrue(t, err != nil, "missing surveyId must fail")
}

func TestBuildRequestInvalidSurveyID(t *testing.T) {
	cmd := command.Registry()["survey get"]
	params := command.Params{}
	params.Set("surveyId", "abc")

	_, err := command.BuildRequest(cmd, params)
	testutil.AssertTrue(t, err != nil, "non-numeric surveyId must fail")
}

func TestBuildRequestListDeletedFilter(t *testing.T) {
	cmd := command.Registry()["survey list"]
	params := command.Params{}
	params.Set("deleted", "true")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Path, "/survey?isDeleted=true")
}

func TestBuildRequestListNoFilter(t *testing.T) {
	cmd := command.Registry()["survey list"]

	req, err := command.BuildRequest(cmd, command.Params{})
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Path, "/survey")
}

func TestBuildRequestListBadFilter(t *testing.T) {
	cmd := command.Registry()["survey list"]
	params := command.Params{}
	params.Set("isDeleted", "maybe")

	_, err := command.BuildRequest(cmd, params)
	testutil.AssertTrue(t, err != nil, "non-boolean filter must fail")
}

func TestBuildRequestProblemCreate(t *testing.T) {
	cmd := command.Registry()["problem create"]
	params := command.Params{}
	params.Set("surveyId", "3")
	params.Set("pid", "q1")
	params.Set("content", "How did we do?")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Method, "POST")
	testutil.AssertEqual(t, req.Path, "/survey/3/problem")
	testutil.AssertEqual(t, string(req.Body), `{"content":"How did we do?","problemId":"q1"}`)
}

func TestBuildRequestProblemList(t *testing.T) {
	cmd := command.Registry()["problem list"]
	params := command.Params{}
	params.Set("surveyId", "3")
	params.Set("deleted", "1")

	req, err := command.BuildRequest(cmd, params)
	testutil.AssertNil(t, err)
	testutil.AssertEqual(t, req.Path, "/survey/3/problem?isDeleted=true")
}

func TestParamsCaseInsensitive(t *testing.T) {
	params := command.Params{}
	params.Set("SurveyId", "5")
	testutil.AssertEqual(t, params.Get("surveyid"), "5")
	testutil.AssertTrue(t, params.Has("SURVEYID"), "params must be case insensitive")
}
