package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"surveysvc/internal/cli/command"
	"surveysvc/internal/cli/config"
	httpclient "surveysvc/internal/cli/http"
	"surveysvc/internal/cli/repl"
)

const defaultConfigPath = "configs/cli.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to config file")
	baseURL := flag.String("base", "", "Override base URL")
	timeout := flag.Duration("timeout", 0, "Override HTTP timeout (e.g. 10s)")
	pretty := flag.Bool("pretty", false, "Pretty print JSON response")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		return
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *timeout > 0 {
		cfg.Timeout = *timeout
	}
	if *pretty {
		trueValue := true
		cfg.PrettyJSON = &trueValue
	}

	client := httpclient.New(cfg.BaseURL, cfg.Timeout)

	session, err := repl.New(client, command.Registry(), cfg.PrettyJSON != nil && *cfg.PrettyJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init repl failed: %v\n", err)
		return
	}
	defer func() {
		_ = session.Close()
	}()
	session.Run(context.Background())
}
