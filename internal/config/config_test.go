package config

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Clipboard != "auto" {
		t.Fatalf("expected auto clipboard, got %q", cfg.App.Clipboard)
	}
	if cfg.App.ConfigPath != "" || cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero-valued app config, got %#v", cfg.App)
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected trace disabled by default")
	}
}

func TestLoadArgsEnvironmentDefaults(t *testing.T) {
	environ := []string{
		"GLYPH_POPUP_CONFIG=/etc/glyphs.yaml",
		"GLYPH_POPUP_CLIPBOARD=tmux",
		"GLYPH_POPUP_SOCKET=/tmp/tmux-1000/default",
		"GLYPH_POPUP_WIDTH=60",
		"GLYPH_POPUP_HEIGHT=not-a-number",
		"GLYPH_POPUP_FOOTER=true",
		"GLYPH_POPUP_TRACE=1",
		"GLYPH_POPUP_LOG_FILE=/tmp/glyph.log",
		"GLYPH_POPUP_TITLE=symbols",
	}
	cfg, err := LoadArgs(nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.ConfigPath != "/etc/glyphs.yaml" {
		t.Fatalf("expected config path from env, got %q", cfg.App.ConfigPath)
	}
	if cfg.App.Clipboard != "tmux" || cfg.App.SocketPath != "/tmp/tmux-1000/default" {
		t.Fatalf("expected tmux backend with socket, got %#v", cfg.App)
	}
	if cfg.App.Width != 60 {
		t.Fatalf("expected width 60, got %d", cfg.App.Width)
	}
	if cfg.App.Height != 0 {
		t.Fatalf("expected invalid height to fall back to 0, got %d", cfg.App.Height)
	}
	if !cfg.App.ShowFooter || !cfg.Logging.Trace {
		t.Fatalf("expected footer and trace enabled, got %#v / %#v", cfg.App, cfg.Logging)
	}
	if cfg.Logging.FilePath != "/tmp/glyph.log" || cfg.App.Title != "symbols" {
		t.Fatalf("unexpected logging/title: %#v %q", cfg.Logging, cfg.App.Title)
	}
	if len(cfg.Environ) != len(environ) {
		t.Fatalf("expected environ to be carried through")
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	args := []string{"--clipboard", "xsel", "-c", "mine.toml", "--width=40", "-v"}
	cfg, err := LoadArgs(args, []string{"GLYPH_POPUP_CLIPBOARD=tmux", "GLYPH_POPUP_WIDTH=60"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Clipboard != "xsel" {
		t.Fatalf("expected flag to win, got %q", cfg.App.Clipboard)
	}
	if cfg.App.ConfigPath != "mine.toml" || cfg.App.Width != 40 || !cfg.App.Verbose {
		t.Fatalf("unexpected app config %#v", cfg.App)
	}
	if cfg.Flags["width"] != "40" || cfg.Flags["verbose"] != "true" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
	if len(cfg.Args) != len(args) {
		t.Fatalf("expected args to be recorded, got %v", cfg.Args)
	}
}

func TestLoadArgsValidation(t *testing.T) {
	cases := map[string][]string{
		"negative width":  {"--width", "-1"},
		"negative height": {"--height", "-5"},
		"unknown backend": {"--clipboard", "carrier-pigeon"},
		"unknown flag":    {"--nope"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadArgs(args, nil); err == nil {
				t.Fatalf("expected error for %v", args)
			}
		})
	}
}

func TestBindFlagsRegistersOnSharedSet(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts := BindFlags(fs, nil)
	if err := fs.Parse([]string{"--title", "emoji"}); err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	cfg, err := opts.Config(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Title != "emoji" {
		t.Fatalf("expected title emoji, got %q", cfg.App.Title)
	}
	if fs.Lookup("log-file") == nil {
		t.Fatalf("expected log-file flag to be registered")
	}
}
