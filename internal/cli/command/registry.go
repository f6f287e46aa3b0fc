package command

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// Registry returns all CLI commands keyed by "service action".
func Registry() map[string]Command {
	surveyIDField := Field{Name: "surveyId", Aliases: []string{"id"}, Prompt: "survey_id", Type: FieldInt64, Required: true}
	deletedField := Field{Name: "isDeleted", Aliases: []string{"deleted"}, Prompt: "is_deleted", Type: FieldBool, Required: false}

	commands := []Command{
		{
			Service:      "survey",
			Action:       "create",
			Method:       "POST",
			PathTemplate: "/survey",
			Fields: []Field{
				{Name: "name", Prompt: "name", Type: FieldString, Required: true},
			},
		},
		{
			Service:      "survey",
			Action:       "list",
			Method:       "GET",
			PathTemplate: "/survey",
			Query:        []Field{deletedField},
		},
		{
			Service:      "survey",
			Action:       "get",
			Method:       "GET",
			PathTemplate: "/survey/:surveyId",
			Fields:       []Field{surveyIDField},
		},
		{
			Service:      "survey",
			Action:       "rename",
			Method:       "PUT",
			PathTemplate: "/survey/:surveyId",
			Fields: []Field{
				surveyIDField,
				{Name: "name", Prompt: "name", Type: FieldString, Required: true},
			},
		},
		{
			Service:      "survey",
			Action:       "delete",
			Method:       "DELETE",
			PathTemplate: "/survey/:surveyId",
			Fields:       []Field{surveyIDField},
		},
		{
			Service:      "survey",
			Action:       "recover",
			Method:       "PUT",
			PathTemplate: "/survey/:surveyId/recover",
			Fields:       []Field{surveyIDField},
		},
		{
			Service:      "problem",
			Action:       "create",
			Method:       "POST",
			PathTemplate: "/survey/:surveyId/problem",
			Fields: []Field{
				surveyIDField,
				{Name: "problemId", Aliases: []string{"pid"}, Prompt: "problem_id", Type: FieldString, Required: true},
				{Name: "content", Prompt: "content", Type: FieldString, Required: true},
			},
		},
		{
			Service:      "problem",
			Action:       "list",
			Method:       "GET",
			PathTemplate: "/survey/:surveyId/problem",
			Fields:       []Field{surveyIDField},
			Query:        []Field{deletedField},
		},
	}

	result := make(map[string]Command, len(commands))
	for _, cmd := range commands {
		key := fmt.Sprintf("%s %s", cmd.Service, cmd.Action)
		result[key] = cmd
	}
	return result
}

// BuildRequest creates HTTP request spec based on command.
func BuildRequest(cmd Command, params Params) (RequestSpec, error) {
	params.Canonicalize(cmd.Fields)
	params.Canonicalize(cmd.Query)

	path, err := buildPath(cmd.PathTemplate, params)
	if err != nil {
		return RequestSpec{}, err
	}
	query, err := buildQuery(cmd.Query, params)
	if err != nil {
		return RequestSpec{}, err
	}
	if query != "" {
		path = path + "?" + query
	}

	var body []byte
	if cmd.Method != "GET" && cmd.Method != "DELETE" {
		payload := buildPayload(cmd, params)
		if payload != nil {
			body, err = json.Marshal(payload)
			if err != nil {
				return RequestSpec{}, fmt.Errorf("marshal request body failed: %w", err)
			}
		}
	}

	return RequestSpec{
		Method: cmd.Method,
		Path:   path,
		Body:   body,
	}, nil
}

func buildPath(template string, params Params) (string, error) {
	path := template
	placeholder := ":surveyId"
	if strings.Contains(path, placeholder) {
		value := params.Get("surveyId")
		if value == "" {
			return "", fmt.Errorf("missing path parameter: surveyId")
		}
		if _, err := ParseInt64(value); err != nil {
			return "", fmt.Errorf("invalid surveyId: %w", err)
		}
		path = strings.ReplaceAll(path, placeholder, strings.TrimSpace(value))
	}
	return path, nil
}

func buildQuery(fields []Field, params Params) (string, error) {
	values := url.Values{}
	for _, field := range fields {
		raw := params.Get(field.Name)
		if raw == "" {
			continue
		}
		if field.Type == FieldBool {
			b, err := ParseBool(raw)
			if err != nil {
				return "", fmt.Errorf("invalid %s: %w", field.Name, err)
			}
			values.Set(field.Name, fmt.Sprintf("%t", b))
			continue
		}
		values.Set(field.Name, raw)
	}
	return values.Encode(), nil
}

func buildPayload(cmd Command, params Params) interface{} {
	switch cmd.Service {
	case "survey":
		switch cmd.Action {
		case "create", "rename":
			return map[string]string{
				"name": params.Get("name"),
			}
		}
	case "problem":
		if cmd.Action == "create" {
			return map[string]string{
				"problemId": params.Get("problemId"),
				"content":   params.Get("content"),
			}
		}
	}
	return nil
}
