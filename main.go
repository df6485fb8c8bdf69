package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/ohsdash/internal/app"
	"github.com/atomicstack/ohsdash/internal/config"
	"github.com/atomicstack/ohsdash/internal/logging"
	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/google/uuid"
	"golang.org/x/term"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr, app.Run))
}

// run loads configuration, prepares logging and starts the console. It
// returns the process exit code: 2 for configuration problems, 1 when the
// program fails.
func run(args, environ []string, stderr io.Writer, start func(app.Config) error) int {
	cfg, err := config.LoadArgs(args, environ)
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			fmt.Fprint(stderr, usage.Usage)
			if errors.Is(err, flag.ErrHelp) {
				return 0
			}
		}
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	logging.SetSession(uuid.NewString())

	events.App.Start(startupTracePayload(cfg))

	if err := start(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+3)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	flags["configFile"] = cfg.File
	payload := map[string]interface{}{
		"argv":    cfg.Args,
		"flags":   flags,
		"config":  cfg,
		"source":  sourceName(cfg.App),
		"session": logging.Session(),
		"tty":     probeTerminals(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	return payload
}

func sourceName(cfg app.Config) string {
	if cfg.SQLitePath != "" {
		return "sqlite"
	}
	return "api"
}

// ttyProbe describes one standard descriptor.
type ttyProbe struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Cols     int    `json:"cols,omitempty"`
	Rows     int    `json:"rows,omitempty"`
	Error    string `json:"error,omitempty"`
}

// probeTerminals reports which standard descriptors are terminals and
// their sizes.
func probeTerminals() []ttyProbe {
	files := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	probes := make([]ttyProbe, len(files))
	for i, f := range files {
		p := ttyProbe{Name: names[i]}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			p.Terminal = true
			if cols, rows, err := term.GetSize(fd); err != nil {
				p.Error = err.Error()
			} else {
				p.Cols, p.Rows = cols, rows
			}
		}
		probes[i] = p
	}
	return probes
}
