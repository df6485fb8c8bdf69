package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atomicstack/ohsdash/internal/api"
	"github.com/atomicstack/ohsdash/internal/backend"
	"github.com/atomicstack/ohsdash/internal/directory"
	"github.com/atomicstack/ohsdash/internal/logging/events"
	"github.com/atomicstack/ohsdash/internal/medical"
	"github.com/atomicstack/ohsdash/internal/store/sqlite"
	"github.com/atomicstack/ohsdash/internal/ui"
	uistate "github.com/atomicstack/ohsdash/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Config describes user-provided application options.
type Config struct {
	APIURL       string
	SQLitePath   string
	SeedPath     string
	Timeout      time.Duration
	PageLimit    int
	Split        uistate.SplitConfig
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	DownloadDir  string
	RootSection  string
	PollInterval time.Duration
}

// dataSource is an opened backend: the record sources plus the reference
// list service polled by the watcher.
type dataSource struct {
	sources   ui.Sources
	directory directory.Service
	close     func() error
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	src, err := openSource(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer src.close()

	watcher := backend.NewWatcher(src.directory, cfg.PollInterval, cfg.Timeout)
	defer watcher.Stop()
	model := ui.NewModel(src.sources, watcher, ui.Options{
		Width:         cfg.Width,
		Height:        cfg.Height,
		ShowFooter:    cfg.ShowFooter,
		Verbose:       cfg.Verbose,
		PageLimit:     cfg.PageLimit,
		Split:         cfg.Split,
		DownloadDir:   cfg.DownloadDir,
		RootSection:   cfg.RootSection,
		MarkdownStyle: markdownStyle(),
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		events.App.Stop("killed")
		return nil
	}
	events.App.Stop("exit")
	return err
}

func openSource(ctx context.Context, cfg Config) (*dataSource, error) {
	if cfg.SQLitePath != "" {
		return openSQLite(ctx, cfg)
	}
	client, err := api.New(cfg.APIURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	events.App.Source("api", client.BaseURL())
	return &dataSource{
		sources: ui.Sources{
			Employees:      api.NewResource[medical.Employee](client, medical.Employees.Resource),
			Reports:        api.NewResource[medical.MedicalReport](client, medical.Reports.Resource),
			MensHealth:     api.NewResource[medical.MensHealth](client, medical.MensHealthScreenings.Resource),
			Histories:      api.NewResource[medical.MedicalHistory](client, medical.Histories.Resource),
			Investigations: api.NewResource[medical.SpecialInvestigation](client, medical.Investigations.Resource),
			Documents:      client,
		},
		directory: client,
		close:     func() error { return nil },
	}, nil
}

func openSQLite(ctx context.Context, cfg Config) (*dataSource, error) {
	store, err := sqlite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	if cfg.SeedPath != "" {
		n, err := store.ImportFile(ctx, cfg.SeedPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("import seed: %w", err)
		}
		events.App.Seed(cfg.SeedPath, n)
	}
	events.App.Source("sqlite", store.Path())
	return &dataSource{
		sources: ui.Sources{
			Employees:      store.Employees(),
			Reports:        store.Reports(),
			MensHealth:     store.MensHealth(),
			Histories:      store.Histories(),
			Investigations: store.Investigations(),
			Documents:      store,
		},
		directory: store,
		close:     store.Close,
	}, nil
}

// markdownStyle picks the glamour style for the detail pane. Output that is
// not a terminal gets plain text.
func markdownStyle() string {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ""
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}
