package app

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/glyph-popup/internal/catalog"
	"github.com/atomicstack/glyph-popup/internal/clipboard"
	"github.com/atomicstack/glyph-popup/internal/fragment"
	"github.com/atomicstack/glyph-popup/internal/logging/events"
	"github.com/atomicstack/glyph-popup/internal/menu"
	"github.com/atomicstack/glyph-popup/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	ConfigPath string
	Clipboard  string
	SocketPath string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Title      string
}

// Load resolves the configuration tree named by cfg and flattens it into an
// arena.
func Load(cfg Config, environ []string) (*menu.Arena, error) {
	search, err := fragment.FromEnv(environ)
	if err != nil {
		return nil, fmt.Errorf("resolve search path: %w", err)
	}
	root, err := catalog.NewResolver(search).LoadRoot(cfg.ConfigPath)
	if err != nil {
		events.Config.Error(err)
		return nil, err
	}
	arena := menu.Build(root)
	events.App.Ready(arena.Len(), arena.ItemCount())
	return arena, nil
}

// Run bootstraps and executes the Bubble Tea program. The copied payload is
// echoed to out when cfg.Verbose is set.
func Run(cfg Config, environ []string, out io.Writer) error {
	arena, err := Load(cfg, environ)
	if err != nil {
		return err
	}
	clip, err := clipboard.New(clipboard.Options{
		Backend: cfg.Clipboard,
		Socket:  cfg.SocketPath,
		Environ: environ,
	})
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	engine := menu.NewEngine(arena, clip)
	model := ui.NewModel(engine, ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
		Title:      cfg.Title,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	if err != nil {
		return err
	}
	copied := model.Copied()
	if copied == "" {
		events.App.Exit("cancelled")
		return nil
	}
	events.App.Exit("copied")
	if cfg.Verbose && out != nil {
		fmt.Fprintf(out, "copied %q via %s\n", copied, clipboard.Name(clip))
	}
	return nil
}
