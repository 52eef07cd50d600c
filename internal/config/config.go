package config

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/atomicstack/glyph-popup/internal/app"
	"github.com/atomicstack/glyph-popup/internal/clipboard"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
	Environ  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigPath = "GLYPH_POPUP_CONFIG"
	envClipboard  = "GLYPH_POPUP_CLIPBOARD"
	envSocketPath = "GLYPH_POPUP_SOCKET"
	envWidth      = "GLYPH_POPUP_WIDTH"
	envHeight     = "GLYPH_POPUP_HEIGHT"
	envShowFooter = "GLYPH_POPUP_FOOTER"
	envVerbose    = "GLYPH_POPUP_VERBOSE"
	envTrace      = "GLYPH_POPUP_TRACE"
	envLogFile    = "GLYPH_POPUP_LOG_FILE"
	envTitle      = "GLYPH_POPUP_TITLE"
)

// Options holds flag destinations registered by BindFlags.
type Options struct {
	configPath string
	clipboard  string
	socket     string
	width      int
	height     int
	footer     bool
	trace      bool
	verbose    bool
	logFile    string
	title      string
	environ    []string
}

// BindFlags registers the runtime flags on fs. Defaults come from the
// GLYPH_POPUP_* variables in environ.
func BindFlags(fs *pflag.FlagSet, environ []string) *Options {
	env := parseEnv(environ)
	o := &Options{environ: append([]string(nil), environ...)}

	fs.StringVarP(&o.configPath, "config", "c", envOrDefault(env, envConfigPath, ""), "root configuration file (relative names use the search path)")
	fs.StringVar(&o.clipboard, "clipboard", envOrDefault(env, envClipboard, clipboard.BackendAuto), "clipboard backend: "+strings.Join(clipboard.Backends, "|"))
	fs.StringVar(&o.socket, "socket", envOrDefault(env, envSocketPath, ""), "tmux socket used by the tmux clipboard backend")
	fs.IntVar(&o.width, "width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	fs.IntVar(&o.height, "height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	fs.BoolVar(&o.footer, "footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	fs.BoolVar(&o.trace, "trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	fs.BoolVarP(&o.verbose, "verbose", "v", envOrBool(env, envVerbose, false), "report copied payloads on exit")
	fs.StringVar(&o.logFile, "log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	fs.StringVar(&o.title, "title", envOrDefault(env, envTitle, ""), "header shown at the top-level menu")
	return o
}

// Config validates the parsed flags. args is the raw argument list, kept for
// trace output.
func (o *Options) Config(args []string) (Config, error) {
	if o.width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", o.width)
	}
	if o.height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", o.height)
	}
	backend := strings.TrimSpace(o.clipboard)
	if !validBackend(backend) {
		return Config{}, fmt.Errorf("unknown clipboard backend %q (want one of %s)", o.clipboard, strings.Join(clipboard.Backends, ", "))
	}

	cfg := Config{
		App: app.Config{
			ConfigPath: o.configPath,
			Clipboard:  backend,
			SocketPath: o.socket,
			Width:      o.width,
			Height:     o.height,
			ShowFooter: o.footer,
			Verbose:    o.verbose,
			Title:      o.title,
		},
		Logging: Logging{
			FilePath: o.logFile,
			Trace:    o.trace,
		},
		Features: Features{
			Verbose: o.verbose,
		},
		Flags: map[string]string{
			"config":    o.configPath,
			"clipboard": backend,
			"socket":    o.socket,
			"width":     strconv.Itoa(o.width),
			"height":    strconv.Itoa(o.height),
			"footer":    strconv.FormatBool(o.footer),
			"trace":     strconv.FormatBool(o.trace),
			"verbose":   strconv.FormatBool(o.verbose),
			"logFile":   o.logFile,
			"title":     o.title,
		},
		Args:    append([]string(nil), args...),
		Environ: o.environ,
	}
	return cfg, nil
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet("glyph-popup", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	opts := BindFlags(fs, environ)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return opts.Config(args)
}

func validBackend(name string) bool {
	for _, b := range clipboard.Backends {
		if b == name {
			return true
		}
	}
	return false
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
