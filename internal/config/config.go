package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/ohsdash/internal/app"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	// File is the YAML file that was loaded, or "" when none was found.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

// fileConfig mirrors the YAML layout. Pointers distinguish unset keys from
// zero values.
type fileConfig struct {
	APIURL       string   `yaml:"api_url"`
	SQLitePath   string   `yaml:"sqlite"`
	Seed         string   `yaml:"seed"`
	Timeout      string   `yaml:"timeout"`
	PageLimit    *int     `yaml:"page_limit"`
	Width        *int     `yaml:"width"`
	Height       *int     `yaml:"height"`
	Footer       *bool    `yaml:"footer"`
	Verbose      *bool    `yaml:"verbose"`
	Trace        *bool    `yaml:"trace"`
	LogFile      string   `yaml:"log_file"`
	DownloadDir  string   `yaml:"download_dir"`
	RootSection  string   `yaml:"root_section"`
	PollInterval string   `yaml:"poll_interval"`
	Pane         filePane `yaml:"pane"`
}

type filePane struct {
	Min     *float64 `yaml:"min"`
	Max     *float64 `yaml:"max"`
	Default *float64 `yaml:"default"`
}

const (
	envConfigFile   = "OHSDASH_CONFIG"
	envAPIURL       = "OHSDASH_API_URL"
	envSQLite       = "OHSDASH_SQLITE"
	envSeed         = "OHSDASH_SEED"
	envTimeout      = "OHSDASH_TIMEOUT"
	envPageLimit    = "OHSDASH_PAGE_LIMIT"
	envPaneMin      = "OHSDASH_PANE_MIN"
	envPaneMax      = "OHSDASH_PANE_MAX"
	envPaneDefault  = "OHSDASH_PANE_DEFAULT"
	envWidth        = "OHSDASH_WIDTH"
	envHeight       = "OHSDASH_HEIGHT"
	envShowFooter   = "OHSDASH_FOOTER"
	envVerbose      = "OHSDASH_VERBOSE"
	envTrace        = "OHSDASH_TRACE"
	envLogFile      = "OHSDASH_LOG_FILE"
	envDownloadDir  = "OHSDASH_DOWNLOAD_DIR"
	envRootSection  = "OHSDASH_ROOT"
	envPollInterval = "OHSDASH_POLL_INTERVAL"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultPollInterval = 30 * time.Second
)

// UsageError is returned for -h and for flags that fail to parse. Usage
// holds the text the flag package printed.
type UsageError struct {
	Usage string
	Err   error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values resolve
// as flag, then environment, then config file, then built-in default.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path, explicit := configPath(args, env)
	file, loaded, err := readFile(path, explicit)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("ohsdash", flag.ContinueOnError)
	var usage strings.Builder
	fs.SetOutput(&usage)

	fs.String("config", path, "path to the YAML config file")
	apiURL := fs.String("api-url", envOrDefault(env, envAPIURL, file.APIURL), "base URL of the occupational health API")
	sqlitePath := fs.String("sqlite", envOrDefault(env, envSQLite, file.SQLitePath), "use an offline SQLite snapshot instead of the API")
	seed := fs.String("seed", envOrDefault(env, envSeed, file.Seed), "JSON seed file imported into the SQLite snapshot at startup")
	timeout := fs.Duration("timeout", envOrDuration(env, envTimeout, fileDuration(file.Timeout, defaultTimeout)), "backend request timeout")
	pageLimit := fs.Int("page-limit", envOrInt(env, envPageLimit, intOr(file.PageLimit, uistate.DefaultPageLimit)), "records fetched per page")
	paneMin := fs.Float64("pane-min", envOrFloat(env, envPaneMin, floatOr(file.Pane.Min, uistate.DefaultSplitConfig.MinPct)), "minimum list pane width in percent")
	paneMax := fs.Float64("pane-max", envOrFloat(env, envPaneMax, floatOr(file.Pane.Max, uistate.DefaultSplitConfig.MaxPct)), "maximum list pane width in percent")
	paneDefault := fs.Float64("pane-default", envOrFloat(env, envPaneDefault, floatOr(file.Pane.Default, uistate.DefaultSplitConfig.DefaultPct)), "initial list pane width in percent")
	width := fs.Int("width", envOrInt(env, envWidth, intOr(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, intOr(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, boolOr(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, boolOr(file.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, boolOr(file.Verbose, false)), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, file.LogFile), "path to the log file")
	downloadDir := fs.String("download-dir", envOrDefault(env, envDownloadDir, stringOr(file.DownloadDir, ".")), "directory for exports and PDF downloads")
	root := fs.String("root", envOrDefault(env, envRootSection, file.RootSection), "open this section instead of the section menu")
	poll := fs.Duration("poll-interval", envOrDuration(env, envPollInterval, fileDuration(file.PollInterval, defaultPollInterval)), "reference list refresh interval")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Usage: usage.String(), Err: err}
	}

	cfg := Config{
		App: app.Config{
			APIURL:       strings.TrimSpace(*apiURL),
			SQLitePath:   strings.TrimSpace(*sqlitePath),
			SeedPath:     strings.TrimSpace(*seed),
			Timeout:      *timeout,
			PageLimit:    *pageLimit,
			Split:        uistate.SplitConfig{MinPct: *paneMin, MaxPct: *paneMax, DefaultPct: *paneDefault},
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			DownloadDir:  *downloadDir,
			RootSection:  *root,
			PollInterval: *poll,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"apiURL":       *apiURL,
			"sqlite":       *sqlitePath,
			"seed":         *seed,
			"timeout":      timeout.String(),
			"pageLimit":    strconv.Itoa(*pageLimit),
			"paneMin":      formatFloat(*paneMin),
			"paneMax":      formatFloat(*paneMax),
			"paneDefault":  formatFloat(*paneDefault),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"downloadDir":  *downloadDir,
			"root":         *root,
			"pollInterval": poll.String(),
		},
		Args: append([]string(nil), args...),
	}
	if loaded {
		cfg.File = path
	}

	return cfg, nil
}

// configPath finds the config file named by --config or the environment,
// falling back to the XDG location. explicit reports whether the user named
// the file, in which case it must exist.
func configPath(args []string, env map[string]string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	if v := strings.TrimSpace(env[envConfigFile]); v != "" {
		return v, true
	}
	base := strings.TrimSpace(env["XDG_CONFIG_HOME"])
	if base == "" {
		home := strings.TrimSpace(env["HOME"])
		if home == "" {
			return "", false
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "ohsdash", "config.yaml"), false
}

func readFile(path string, explicit bool) (fileConfig, bool, error) {
	var file fileConfig
	if path == "" {
		return file, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return file, false, nil
		}
		return file, false, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, false, fmt.Errorf("parse config %s: %w", path, err)
	}
	return file, true, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrFloat(env map[string]string, key string, fallback float64) float64 {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	return fileDuration(v, fallback)
}

// fileDuration parses a Go duration, accepting a bare number as seconds.
func fileDuration(value string, fallback time.Duration) time.Duration {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	if d, err := time.ParseDuration(trimmed); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func floatOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func stringOr(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate checks that a data source is selected and that numeric options
// are in range.
func Validate(cfg Config) error {
	a := cfg.App
	switch {
	case a.APIURL == "" && a.SQLitePath == "":
		return errors.New("one of --api-url or --sqlite is required")
	case a.APIURL != "" && a.SQLitePath != "":
		return errors.New("--api-url and --sqlite are mutually exclusive")
	case a.SeedPath != "" && a.SQLitePath == "":
		return errors.New("--seed requires --sqlite")
	}
	if a.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", a.Width)
	}
	if a.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", a.Height)
	}
	if a.PageLimit < 1 || a.PageLimit > 500 {
		return fmt.Errorf("page limit must be between 1 and 500 (got %d)", a.PageLimit)
	}
	if a.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", a.Timeout)
	}
	if a.PollInterval < time.Second {
		return fmt.Errorf("poll interval must be at least 1s (got %s)", a.PollInterval)
	}
	s := a.Split
	if s.MinPct <= 0 || s.MaxPct >= 100 || s.MinPct >= s.MaxPct {
		return fmt.Errorf("pane bounds must satisfy 0 < min < max < 100 (got %s..%s)", formatFloat(s.MinPct), formatFloat(s.MaxPct))
	}
	if s.DefaultPct < s.MinPct || s.DefaultPct > s.MaxPct {
		return fmt.Errorf("pane default %s is outside %s..%s", formatFloat(s.DefaultPct), formatFloat(s.MinPct), formatFloat(s.MaxPct))
	}
	return nil
}
