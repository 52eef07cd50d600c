// Package fragment locates configuration sources on disk. Relative
// references are tried against an ordered list of base directories (the user
// config home first, then the system-wide XDG directories) and the first one
// that exists wins; absolute references are read directly.
package fragment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Subdir is appended to every search-path base.
const Subdir = "glyph-popup"

const defaultConfigDirs = "/etc/xdg"

// ErrNoHome is returned when neither XDG_CONFIG_HOME nor HOME is set.
var ErrNoHome = errors.New("$HOME environment variable is not set")

// Kind classifies load failures.
type Kind int

const (
	// KindIO covers permission problems, unreadable files, and missing
	// absolute paths.
	KindIO Kind = iota
	// KindNotFound means no base directory contained the reference.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindNotFound:
		return "not found in search path"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// LoadError reports a reference that could not be read.
type LoadError struct {
	Kind      Kind
	Reference string
	// Path is the file that failed for KindIO.
	Path string
	// Tried lists every candidate path probed for KindNotFound.
	Tried []string
	Err   error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("could not resolve %s in search path [%s]", e.Reference, strings.Join(e.Tried, ", "))
	default:
		return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Source is the content of a resolved reference.
type Source struct {
	Reference string
	Path      string
	Data      []byte
}

// Loader resolves references to file content.
type Loader interface {
	Load(reference string) (Source, error)
}

// SearchPath is the ordered list of base directories tried for relative
// references. It is immutable after construction.
type SearchPath struct {
	bases    []string
	readFile func(string) ([]byte, error)
}

// NewSearchPath returns a search path over the given bases, used as-is.
func NewSearchPath(bases ...string) *SearchPath {
	return &SearchPath{bases: append([]string(nil), bases...), readFile: os.ReadFile}
}

// FromEnv builds the search path from XDG environment variables:
// $XDG_CONFIG_HOME (or $HOME/.config), then each entry of $XDG_CONFIG_DIRS
// (or /etc/xdg), each with Subdir appended.
func FromEnv(environ []string) (*SearchPath, error) {
	env := parseEnv(environ)
	userConfig := env["XDG_CONFIG_HOME"]
	if userConfig == "" {
		home, ok := env["HOME"]
		if !ok || home == "" {
			return nil, ErrNoHome
		}
		userConfig = filepath.Join(home, ".config")
	}
	configDirs, ok := env["XDG_CONFIG_DIRS"]
	if !ok || configDirs == "" {
		configDirs = defaultConfigDirs
	}
	bases := []string{filepath.Join(userConfig, Subdir)}
	for _, dir := range strings.Split(configDirs, ":") {
		if dir == "" {
			continue
		}
		bases = append(bases, filepath.Join(dir, Subdir))
	}
	return NewSearchPath(bases...), nil
}

// Bases returns a copy of the base directories in probe order.
func (p *SearchPath) Bases() []string {
	return append([]string(nil), p.bases...)
}

// ConfigHome is the user-writable base.
func (p *SearchPath) ConfigHome() string {
	if len(p.bases) == 0 {
		return ""
	}
	return p.bases[0]
}

// Load reads the reference. A missing file in one base moves on to the next;
// any other I/O failure stops the search.
func (p *SearchPath) Load(reference string) (Source, error) {
	if filepath.IsAbs(reference) {
		data, err := p.readFile(reference)
		if err != nil {
			return Source{}, &LoadError{Kind: KindIO, Reference: reference, Path: reference, Err: err}
		}
		return Source{Reference: reference, Path: reference, Data: data}, nil
	}
	tried := make([]string, 0, len(p.bases))
	for _, base := range p.bases {
		candidate := filepath.Join(base, reference)
		tried = append(tried, candidate)
		data, err := p.readFile(candidate)
		if err == nil {
			return Source{Reference: reference, Path: candidate, Data: data}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		return Source{}, &LoadError{Kind: KindIO, Reference: reference, Path: candidate, Err: err}
	}
	return Source{}, &LoadError{Kind: KindNotFound, Reference: reference, Tried: tried}
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
