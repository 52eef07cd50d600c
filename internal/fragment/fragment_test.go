package fragment

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/glyph-popup/internal/testutil"
)

func TestFromEnvOrdersUserHomeBeforeSystemDirs(t *testing.T) {
	p, err := FromEnv([]string{
		"XDG_CONFIG_HOME=/home/u/.cfg",
		"XDG_CONFIG_DIRS=/etc/one:/etc/two",
		"HOME=/home/u",
	})
	require.NoError(t, err)
	require.Equal(t, []string{
		"/home/u/.cfg/glyph-popup",
		"/etc/one/glyph-popup",
		"/etc/two/glyph-popup",
	}, p.Bases())
	require.Equal(t, "/home/u/.cfg/glyph-popup", p.ConfigHome())
}

func TestFromEnvDefaults(t *testing.T) {
	p, err := FromEnv([]string{"HOME=/home/u"})
	require.NoError(t, err)
	require.Equal(t, []string{"/home/u/.config/glyph-popup", "/etc/xdg/glyph-popup"}, p.Bases())
}

func TestFromEnvWithoutHome(t *testing.T) {
	_, err := FromEnv(nil)
	require.ErrorIs(t, err, ErrNoHome)
}

func TestLoadFirstMatchWins(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{
		"user/shared.yaml":   "user",
		"system/shared.yaml": "system",
		"system/only.yaml":   "only-system",
	})
	p := NewSearchPath(filepath.Join(root, "user"), filepath.Join(root, "system"))

	src, err := p.Load("shared.yaml")
	require.NoError(t, err)
	require.Equal(t, "user", string(src.Data))
	require.Equal(t, filepath.Join(root, "user", "shared.yaml"), src.Path)

	src, err = p.Load("only.yaml")
	require.NoError(t, err)
	require.Equal(t, "only-system", string(src.Data))
}

func TestLoadAbsolutePathBypassesBases(t *testing.T) {
	root := testutil.WriteTree(t, map[string]string{"elsewhere/frag.yaml": "abs"})
	p := NewSearchPath(filepath.Join(root, "nothing-here"))

	src, err := p.Load(filepath.Join(root, "elsewhere", "frag.yaml"))
	require.NoError(t, err)
	require.Equal(t, "abs", string(src.Data))

	_, err = p.Load(filepath.Join(root, "missing.yaml"))
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, KindIO, loadErr.Kind)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadMissingEverywhereNamesReferenceAndBases(t *testing.T) {
	p := NewSearchPath("/first", "/second")
	p.readFile = func(string) ([]byte, error) { return nil, fs.ErrNotExist }

	_, err := p.Load("missing.ron")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, KindNotFound, loadErr.Kind)
	require.Equal(t, "missing.ron", loadErr.Reference)
	require.Equal(t, []string{"/first/missing.ron", "/second/missing.ron"}, loadErr.Tried)
	require.Contains(t, err.Error(), "missing.ron")
	require.Contains(t, err.Error(), "/second/missing.ron")
}

func TestLoadStopsOnNonNotFoundError(t *testing.T) {
	denied := &fs.PathError{Op: "open", Path: "/first/x.yaml", Err: fs.ErrPermission}
	calls := 0
	p := NewSearchPath("/first", "/second")
	p.readFile = func(path string) ([]byte, error) {
		calls++
		if path == "/first/x.yaml" {
			return nil, denied
		}
		return []byte("second"), nil
	}

	_, err := p.Load("x.yaml")
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	require.Equal(t, KindIO, loadErr.Kind)
	require.Equal(t, "/first/x.yaml", loadErr.Path)
	require.True(t, errors.Is(err, os.ErrPermission))
	require.Equal(t, 1, calls)
}
