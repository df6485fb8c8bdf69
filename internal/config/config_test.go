package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs([]string{"--api-url", "http://ohs.test"}, []string{"HOME=" + t.TempDir()})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.File != "" {
		t.Fatalf("expected no config file, got %q", cfg.File)
	}
	a := cfg.App
	if a.APIURL != "http://ohs.test" || a.Timeout != defaultTimeout || a.PollInterval != defaultPollInterval {
		t.Fatalf("unexpected app config %#v", a)
	}
	if a.PageLimit != uistate.DefaultPageLimit {
		t.Fatalf("expected default page limit %d, got %d", uistate.DefaultPageLimit, a.PageLimit)
	}
	if a.Split != uistate.DefaultSplitConfig {
		t.Fatalf("expected default split, got %#v", a.Split)
	}
	if a.DownloadDir != "." {
		t.Fatalf("expected download dir ., got %q", a.DownloadDir)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadArgsPrecedence(t *testing.T) {
	path := writeConfig(t, `
api_url: http://file.test
page_limit: 50
timeout: 5s
footer: true
pane:
  min: 30
  max: 70
  default: 40
`)
	env := []string{"OHSDASH_PAGE_LIMIT=25", "OHSDASH_TIMEOUT=7"}
	cfg, err := LoadArgs([]string{"--config", path, "--timeout", "9s"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	a := cfg.App
	if cfg.File != path {
		t.Fatalf("expected config file %q, got %q", path, cfg.File)
	}
	if a.APIURL != "http://file.test" {
		t.Fatalf("expected api url from file, got %q", a.APIURL)
	}
	if a.PageLimit != 25 {
		t.Fatalf("expected env to beat the file, got page limit %d", a.PageLimit)
	}
	if a.Timeout != 9*time.Second {
		t.Fatalf("expected flag to beat env, got timeout %s", a.Timeout)
	}
	if !a.ShowFooter {
		t.Fatalf("expected footer from file")
	}
	if a.Split.MinPct != 30 || a.Split.MaxPct != 70 || a.Split.DefaultPct != 40 {
		t.Fatalf("unexpected split %#v", a.Split)
	}
	if cfg.Flags["pageLimit"] != "25" || cfg.Flags["timeout"] != "9s" {
		t.Fatalf("unexpected flags %#v", cfg.Flags)
	}
}

func TestLoadArgsXDGConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "ohsdash"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "ohsdash", "config.yaml")
	if err := os.WriteFile(path, []byte("sqlite: /tmp/ohs.db\nroot_section: employees\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadArgs(nil, []string{"XDG_CONFIG_HOME=" + dir})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.SQLitePath != "/tmp/ohs.db" || cfg.App.RootSection != "employees" {
		t.Fatalf("expected values from the XDG config, got %#v", cfg.App)
	}
}

func TestLoadArgsMissingExplicitConfig(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := LoadArgs([]string{"--config=" + missing}, nil); err == nil {
		t.Fatalf("expected an error for a missing --config file")
	}
	if _, err := LoadArgs(nil, []string{"OHSDASH_CONFIG=" + missing}); err == nil {
		t.Fatalf("expected an error for a missing OHSDASH_CONFIG file")
	}
}

func TestLoadArgsBadYAML(t *testing.T) {
	path := writeConfig(t, "page_limit: [1, 2\n")
	_, err := LoadArgs([]string{"--config", path}, nil)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestLoadArgsUnknownFlag(t *testing.T) {
	if _, err := LoadArgs([]string{"--socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		cfg, err := LoadArgs([]string{"--sqlite", "ohs.db"}, nil)
		if err != nil {
			t.Fatalf("LoadArgs: %v", err)
		}
		return cfg
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"no source", func(c *Config) { c.App.SQLitePath = "" }, "required"},
		{"both sources", func(c *Config) { c.App.APIURL = "http://ohs.test" }, "mutually exclusive"},
		{"seed without sqlite", func(c *Config) { c.App.SQLitePath = ""; c.App.APIURL = "http://ohs.test"; c.App.SeedPath = "seed.json" }, "requires --sqlite"},
		{"negative width", func(c *Config) { c.App.Width = -1 }, "width"},
		{"page limit", func(c *Config) { c.App.PageLimit = 0 }, "page limit"},
		{"timeout", func(c *Config) { c.App.Timeout = 0 }, "timeout"},
		{"poll interval", func(c *Config) { c.App.PollInterval = time.Millisecond }, "poll interval"},
		{"pane bounds", func(c *Config) { c.App.Split.MinPct = 80 }, "pane bounds"},
		{"pane default", func(c *Config) { c.App.Split.DefaultPct = 90 }, "pane default"},
	}
	for _, tc := range cases {
		cfg := base()
		tc.mutate(&cfg)
		err := Validate(cfg)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%s: expected error containing %q, got %v", tc.name, tc.want, err)
		}
	}
}

func TestLoadArgsHelp(t *testing.T) {
	_, err := LoadArgs([]string{"-h"}, nil)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	var usage *UsageError
	if !errors.As(err, &usage) || !strings.Contains(usage.Usage, "-api-url") {
		t.Fatalf("expected usage text listing flags, got %#v", err)
	}
}
