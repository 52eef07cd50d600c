// Package clipboard copies selected payloads through an external helper
// process, or through the platform clipboard API when no helper is set.
package clipboard

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/glyph-popup/internal/logging/events"
)

// Backend names accepted by New.
const (
	BackendAuto   = "auto"
	BackendXclip  = "xclip"
	BackendXsel   = "xsel"
	BackendWlCopy = "wl-copy"
	BackendPbcopy = "pbcopy"
	BackendTmux   = "tmux"
	BackendSystem = "system"
)

// Backends lists every name New understands.
var Backends = []string{BackendAuto, BackendXclip, BackendXsel, BackendWlCopy, BackendPbcopy, BackendTmux, BackendSystem}

// Writer places text on a clipboard.
type Writer interface {
	Copy(text string) error
}

// Error is a failed copy. Op is one of "spawn", "write" or "wait".
type Error struct {
	Backend string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("clipboard %s: %s failed: %v", e.Backend, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Command pipes the payload into a helper's stdin. The helper runs from / with
// stdout and stderr discarded.
type Command struct {
	Backend string
	Path    string
	Args    []string
	Env     []string
}

// Copy runs the helper once and waits for it to exit.
func (c Command) Copy(text string) error {
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = "/"
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return c.fail("spawn", err)
	}
	if err := cmd.Start(); err != nil {
		return c.fail("spawn", err)
	}
	_, writeErr := io.WriteString(stdin, text)
	closeErr := stdin.Close()
	waitErr := cmd.Wait()
	switch {
	case writeErr != nil:
		return c.fail("write", writeErr)
	case closeErr != nil:
		return c.fail("write", closeErr)
	case waitErr != nil:
		return c.fail("wait", waitErr)
	}
	events.Clipboard.Copy(c.Backend, len(text))
	return nil
}

func (c Command) fail(op string, err error) error {
	events.Clipboard.Failure(c.Backend, err)
	return &Error{Backend: c.Backend, Op: op, Err: err}
}

// System writes through the platform clipboard API.
type System struct{}

func (System) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		events.Clipboard.Failure(BackendSystem, err)
		return &Error{Backend: BackendSystem, Op: "write", Err: err}
	}
	events.Clipboard.Copy(BackendSystem, len(text))
	return nil
}

// Options select and configure a backend.
type Options struct {
	Backend string
	// Socket is the tmux server socket used by the tmux backend.
	Socket  string
	Environ []string
	GOOS    string
	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// New returns the writer for opts.Backend.
func New(opts Options) (Writer, error) {
	if opts.GOOS == "" {
		opts.GOOS = runtime.GOOS
	}
	if opts.LookPath == nil {
		opts.LookPath = exec.LookPath
	}
	switch strings.TrimSpace(opts.Backend) {
	case "", BackendAuto:
		return detect(opts), nil
	case BackendXclip:
		return Xclip(), nil
	case BackendXsel:
		return Xsel(), nil
	case BackendWlCopy:
		return WlCopy(), nil
	case BackendPbcopy:
		return Pbcopy(), nil
	case BackendTmux:
		return Tmux(opts.Socket), nil
	case BackendSystem:
		return System{}, nil
	default:
		return nil, fmt.Errorf("unknown clipboard backend %q (want one of %s)", opts.Backend, strings.Join(Backends, ", "))
	}
}

// Name reports the backend name of a writer returned by New.
func Name(w Writer) string {
	switch v := w.(type) {
	case Command:
		return v.Backend
	case System:
		return BackendSystem
	default:
		return fmt.Sprintf("%T", w)
	}
}

func detect(opts Options) Writer {
	if opts.GOOS == "darwin" {
		return Pbcopy()
	}
	if envValue(opts.Environ, "WAYLAND_DISPLAY") != "" {
		if _, err := opts.LookPath(BackendWlCopy); err == nil {
			return WlCopy()
		}
	}
	if _, err := opts.LookPath(BackendXclip); err == nil {
		return Xclip()
	}
	if _, err := opts.LookPath(BackendXsel); err == nil {
		return Xsel()
	}
	return System{}
}

func Xclip() Command {
	return Command{Backend: BackendXclip, Path: "xclip", Args: []string{"-selection", "clipboard"}}
}

func Xsel() Command {
	return Command{Backend: BackendXsel, Path: "xsel", Args: []string{"--clipboard", "--input"}}
}

func WlCopy() Command {
	return Command{Backend: BackendWlCopy, Path: "wl-copy"}
}

func Pbcopy() Command {
	return Command{Backend: BackendPbcopy, Path: "pbcopy"}
}

// Tmux loads the payload into a tmux paste buffer and, with -w, forwards it
// to the outer terminal clipboard.
func Tmux(socket string) Command {
	c := Command{Backend: BackendTmux, Path: "tmux", Args: tmuxArgs(socket, "load-buffer", "-w", "-")}
	if dir := socketDir(socket); dir != "" {
		c.Env = []string{"TMUX_TMPDIR=" + dir}
	}
	return c
}

func tmuxArgs(socket string, extra ...string) []string {
	args := make([]string, 0, len(extra)+2)
	if trimmed := strings.TrimSpace(socket); trimmed != "" {
		args = append(args, "-S", trimmed)
	}
	args = append(args, extra...)
	return args
}

func socketDir(socket string) string {
	trimmed := strings.TrimSpace(socket)
	if trimmed == "" {
		return ""
	}
	return filepath.Dir(trimmed)
}

func envValue(environ []string, key string) string {
	prefix := key + "="
	for i := len(environ) - 1; i >= 0; i-- {
		if strings.HasPrefix(environ[i], prefix) {
			return strings.TrimPrefix(environ[i], prefix)
		}
	}
	return ""
}
