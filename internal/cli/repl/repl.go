package repl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"surveysvc/internal/cli/command"
	httpclient "surveysvc/internal/cli/http"

	"github.com/chzyer/readline"
	"github.com/google/shlex"
)

const prompt = "surveysvc> "

// Session holds REPL state.
type Session struct {
	client     *httpclient.Client
	commands   map[string]command.Command
	prettyJSON bool
	rl         *readline.Instance
}

func New(client *httpclient.Client, commands map[string]command.Command, prettyJSON bool) (*Session, error) {
	rl, err := readline.New(prompt)
	if err != nil {
		return nil, fmt.Errorf("init readline failed: %w", err)
	}
	return &Session{
		client:     client,
		commands:   commands,
		prettyJSON: prettyJSON,
		rl:         rl,
	}, nil
}

func (s *Session) Close() error {
	return s.rl.Close()
}

func (s *Session) Run(ctx context.Context) {
	for {
		line, err := s.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if err == io.EOF {
			s.printLine("bye")
			return
		}
		if err != nil {
			s.printLine("read input failed: %v", err)
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if s.handleSystemCommand(line) {
			continue
		}
		if line == "exit" || line == "quit" {
			s.printLine("bye")
			return
		}

		if err := s.handleCommand(ctx, line); err != nil {
			s.printLine("error: %v", err)
		}
	}
}

func (s *Session) handleSystemCommand(line string) bool {
	if line == "help" {
		s.printHelp()
		return true
	}
	if strings.HasPrefix(line, "set ") {
		s.handleSet(strings.TrimSpace(strings.TrimPrefix(line, "set ")))
		return true
	}
	return false
}

func (s *Session) handleSet(args string) {
	parts := strings.Fields(args)
	if len(parts) == 0 {
		s.printLine("usage: set base|timeout")
		return
	}
	switch parts[0] {
	case "base":
		if len(parts) < 2 {
			s.printLine("usage: set base http://127.0.0.1:8080")
			return
		}
		s.client.SetBaseURL(parts[1])
		s.printLine("base set to %s", parts[1])
	case "timeout":
		if len(parts) < 2 {
			s.printLine("usage: set timeout 10s")
			return
		}
		dur, err := time.ParseDuration(parts[1])
		if err != nil {
			s.printLine("invalid duration: %v", err)
			return
		}
		s.client.SetTimeout(dur)
		s.printLine("timeout set to %s", dur)
	default:
		s.printLine("unknown set command")
	}
}

func (s *Session) handleCommand(ctx context.Context, line string) error {
	tokens, err := shlex.Split(line)
	if err != nil {
		return fmt.Errorf("parse command failed: %w", err)
	}
	if len(tokens) < 2 {
		return fmt.Errorf("invalid command, use: <service> <action> key=value ...")
	}
	key := fmt.Sprintf("%s %s", tokens[0], tokens[1])
	cmd, ok := s.commands[key]
	if !ok {
		return fmt.Errorf("unknown command: %s", key)
	}
	params := command.Params{}
	for _, token := range tokens[2:] {
		parts := strings.SplitN(token, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid param: %s", token)
		}
		params.Set(parts[0], parts[1])
	}

	if err := s.promptMissing(cmd, params); err != nil {
		return err
	}
	req, err := command.BuildRequest(cmd, params)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(ctx, req.Method, req.Path, req.Body)
	if err != nil {
		return err
	}
	s.renderResponse(resp)
	return nil
}

func (s *Session) promptMissing(cmd command.Command, params command.Params) error {
	params.Canonicalize(cmd.Fields)
	for _, field := range cmd.Fields {
		if !field.Required {
			continue
		}
		if params.Has(field.Name) && params.Get(field.Name) != "" {
			continue
		}
		value, err := s.promptValue(field.Prompt)
		if err != nil {
			return err
		}
		params.Set(field.Name, value)
	}
	return nil
}

func (s *Session) promptValue(fieldPrompt string) (string, error) {
	s.rl.SetPrompt(fieldPrompt + ": ")
	defer s.rl.SetPrompt(prompt)

	line, err := s.rl.Readline()
	if err != nil {
		return "", fmt.Errorf("read input failed: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (s *Session) renderResponse(resp httpclient.ResponseInfo) {
	s.printLine("HTTP %d (%s)", resp.StatusCode, resp.Duration)
	if len(resp.Body) == 0 {
		return
	}
	if s.prettyJSON {
		var raw interface{}
		if err := json.Unmarshal(resp.Body, &raw); err == nil {
			formatted, _ := json.MarshalIndent(raw, "", "  ")
			s.printLine("%s", string(formatted))
			return
		}
	}
	s.printLine("%s", string(resp.Body))
}

func (s *Session) printHelp() {
	s.printLine("usage: <service> <action> key=value ...")
	s.printLine("system: help | exit | set base|timeout")
	s.printLine("examples:")
	s.printLine("  survey create name=\"Customer Feedback\"")
	s.printLine("  survey list deleted=true")
	s.printLine("  survey rename id=12 name=\"Renamed\"")
	s.printLine("  problem create id=12 pid=q1 content=\"How did we do?\"")
}

func (s *Session) printLine(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.rl.Stdout(), format+"\n", args...)
}
