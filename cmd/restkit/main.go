// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command restkit makes one call to a REST API and prints the parsed
// response body.
//
// Usage:
//
//	restkit [options] METHOD PATH
//
// Settings are read from the YAML file named by -config, then from
// RESTKIT_* environment variables (optionally loaded from a .env file),
// then from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/goccy/go-yaml"
	"github.com/gogama/restkit"
	"github.com/gogama/restkit/apierr"
	"github.com/gogama/restkit/body"
	"github.com/gogama/restkit/config"
	"github.com/gogama/restkit/logging"
	"go.uber.org/zap"
)

// Exit codes
const (
	ExitSuccess       = 0
	ExitResponseError = 1
	ExitRequestError  = 2
	ExitInvalidArgs   = 2
)

var printer = sonic.Config{SortMapKeys: true}.Froze()

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string {
	return strings.Join(*l, ",")
}

func (l *stringList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("restkit", flag.ContinueOnError)
	fs.SetOutput(stderr)

	endpoint := fs.String("endpoint", "", "Base URL of the API (overrides RESTKIT_ENDPOINT)")
	name := fs.String("name", "", "API name, sent as the User-Agent (overrides RESTKIT_NAME)")
	var headers, query stringList
	fs.Var(&headers, "H", "Request header as 'Key: Value' (repeatable)")
	fs.Var(&query, "q", "Query parameter as key=value (repeatable)")
	data := fs.String("d", "", "Request parameters as a JSON object")
	form := fs.Bool("form", false, "Send parameters URL-encoded instead of as JSON")
	raw := fs.Bool("raw", false, "Print the response body without parsing it")
	output := fs.String("o", "json", "Output format: json or yaml")
	timeout := fs.Duration("timeout", 0, "Call timeout (overrides RESTKIT_TIMEOUT)")
	envFile := fs.String("env-file", "", "Load environment variables from this .env file")
	configFile := fs.String("config", "", "Load settings from this YAML file")
	verbose := fs.Bool("v", false, "Log calls at debug level")

	fs.Usage = func() {
		fmt.Fprintln(stderr, `Usage: restkit [options] METHOD PATH

Make one call to a REST API and print the parsed response body.
METHOD is one of GET, POST, PUT, PATCH or DELETE.

Options:`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return ExitInvalidArgs
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "Error: METHOD and PATH are required")
		fs.Usage()
		return ExitInvalidArgs
	}
	method := strings.ToUpper(fs.Arg(0))
	path := fs.Arg(1)
	if *output != "json" && *output != "yaml" {
		fmt.Fprintf(stderr, "Error: unknown output format %q\n", *output)
		return ExitInvalidArgs
	}

	cfg, err := loadConfig(*envFile, *configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "endpoint":
			cfg.Endpoint = *endpoint
		case "name":
			cfg.Name = *name
		case "timeout":
			cfg.Timeout = *timeout
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err = cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	opts, err := callOptions(method, &path, headers, query, *data, *form, *raw)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitInvalidArgs
	}
	defer func() { _ = logger.Sync() }()

	handlers := &restkit.HandlerGroup{}
	handlers.PushBackAll(logging.NewHandler(logger))
	api := restkit.Define(cfg.Name, cfg.Endpoint,
		restkit.WithRequestOptions(cfg.RequestOptions()),
		restkit.WithHandlers(handlers),
		restkit.WithLogger(logger))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := api.Do(ctx, method, path, opts...)
	if err != nil {
		return report(stderr, logger, err, *output)
	}

	if err = write(stdout, result, *output); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitRequestError
	}
	return ExitSuccess
}

func loadConfig(envFile, configFile string) (*config.Config, error) {
	var err error
	if envFile != "" {
		err = config.LoadDotEnv(envFile)
	} else if err = config.LoadDotEnv(); errors.Is(err, os.ErrNotExist) {
		err = nil
	}
	if err != nil {
		return nil, err
	}

	cfg := config.Default()
	if configFile != "" {
		if err = cfg.ApplyFile(configFile); err != nil {
			return nil, err
		}
	}
	if err = cfg.ApplyEnv(config.DefaultPrefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

func callOptions(method string, path *string, headers, query []string, data string, form, raw bool) ([]restkit.CallOption, error) {
	var opts []restkit.CallOption
	for _, h := range headers {
		i := strings.IndexByte(h, ':')
		if i <= 0 {
			return nil, fmt.Errorf("invalid header %q, want 'Key: Value'", h)
		}
		opts = append(opts, restkit.Header(strings.TrimSpace(h[:i]), strings.TrimSpace(h[i+1:])))
	}

	q := make(url.Values)
	for _, kv := range query {
		i := strings.IndexByte(kv, '=')
		if i <= 0 {
			return nil, fmt.Errorf("invalid query parameter %q, want key=value", kv)
		}
		q.Add(kv[:i], kv[i+1:])
	}

	hasBody := method == "POST" || method == "PUT" || method == "PATCH"
	if data != "" && !hasBody {
		return nil, fmt.Errorf("-d cannot be used with %s", method)
	}
	if hasBody {
		if data != "" {
			var params interface{}
			if err := sonic.UnmarshalString(data, &params); err != nil {
				return nil, fmt.Errorf("invalid -d: %w", err)
			}
			opts = append(opts, restkit.Params(params))
		}
		if len(q) > 0 {
			sep := "?"
			if strings.Contains(*path, "?") {
				sep = "&"
			}
			*path += sep + q.Encode()
		}
		if form {
			opts = append(opts, restkit.Header("Content-Type", body.Form))
		}
	} else if len(q) > 0 {
		opts = append(opts, restkit.Params(q))
	}

	if raw {
		opts = append(opts, restkit.ResponseBodyParser(nil))
	}
	return opts, nil
}

func write(w io.Writer, result interface{}, format string) error {
	if result == nil {
		return nil
	}
	if b, ok := result.([]byte); ok {
		_, err := w.Write(b)
		return err
	}

	var out []byte
	var err error
	if format == "yaml" {
		out, err = yaml.Marshal(result)
	} else {
		out, err = printer.MarshalIndent(result, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func report(stderr io.Writer, logger *zap.Logger, err error, format string) int {
	var e *apierr.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return ExitRequestError
	}

	if !e.Kind.IsResponseKind() {
		fmt.Fprintf(stderr, "%s: %s\n", e.Kind, e.Message)
		return ExitRequestError
	}

	fmt.Fprintf(stderr, "%s: %d %s\n", e.Kind, e.Status, statusReason(e))
	if perr := write(stderr, e.Body, format); perr != nil {
		logger.Debug("failed to print error body", zap.Error(perr))
	}
	return ExitResponseError
}

func statusReason(e *apierr.Error) string {
	if e.Response != nil {
		return e.Response.Reason
	}
	return ""
}
