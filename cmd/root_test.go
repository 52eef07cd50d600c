package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomicstack/glyph-popup/internal/testutil"
)

const sampleConfig = `
root:
  arrow: "->"
  Greek:
    alpha: "a"
    "<i>beta</i>": "b"
`

func testEnviron(t *testing.T, files map[string]string) []string {
	t.Helper()
	dir := testutil.WriteTree(t, files)
	return []string{
		"XDG_CONFIG_HOME=" + dir,
		"XDG_CONFIG_DIRS=" + filepath.Join(dir, "system"),
		"GLYPH_POPUP_LOG_FILE=" + filepath.Join(t.TempDir(), "glyph-popup.log"),
	}
}

func execute(t *testing.T, args, environ []string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, environ, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCheckReportsCounts(t *testing.T) {
	environ := testEnviron(t, map[string]string{"glyph-popup/config.yaml": sampleConfig})
	code, out, errOut := execute(t, []string{"check"}, environ)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "2 lists, 4 items\n", out)
}

func TestCheckListMatchesGolden(t *testing.T) {
	environ := testEnviron(t, map[string]string{"glyph-popup/config.yaml": sampleConfig})
	code, out, errOut := execute(t, []string{"check", "--list"}, environ)
	require.Equal(t, 0, code, errOut)
	testutil.AssertGolden(t, "check_list.golden", out)
}

func TestCheckUsesConfigFlag(t *testing.T) {
	environ := testEnviron(t, map[string]string{
		"glyph-popup/config.yaml": sampleConfig,
		"glyph-popup/other.toml":  "[root]\nsnowman = \"☃\"\n",
	})
	code, out, errOut := execute(t, []string{"--config", "other.toml", "check"}, environ)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "1 lists, 1 items\n", out)
}

func TestCheckReportsResolutionErrors(t *testing.T) {
	environ := testEnviron(t, map[string]string{
		"glyph-popup/config.yaml": "root:\n  loop: {extends: [config.yaml]}\n",
	})
	code, out, errOut := execute(t, []string{"check"}, environ)
	require.Equal(t, 1, code)
	require.Empty(t, out)
	require.True(t, strings.HasPrefix(errOut, "Error: "), errOut)
	require.Contains(t, errOut, "config.yaml")
}

func TestMissingRootConfigFails(t *testing.T) {
	environ := testEnviron(t, map[string]string{})
	code, _, errOut := execute(t, []string{"check"}, environ)
	require.Equal(t, 1, code)
	require.Contains(t, errOut, "config.yaml")
}

func TestBadFlagsExitWithUsageCode(t *testing.T) {
	environ := testEnviron(t, nil)
	for _, args := range [][]string{
		{"--nope"},
		{"--width", "-3", "check"},
		{"--clipboard", "carrier-pigeon", "check"},
	} {
		code, _, errOut := execute(t, args, environ)
		require.Equal(t, exitUsage, code, "%v", args)
		require.Contains(t, errOut, "Configuration error", "%v", args)
	}
}

func TestPathsPrintsSearchOrder(t *testing.T) {
	environ := []string{
		"XDG_CONFIG_HOME=/home/me/.config",
		"XDG_CONFIG_DIRS=/etc/xdg:/opt/conf",
		"GLYPH_POPUP_LOG_FILE=" + filepath.Join(t.TempDir(), "glyph-popup.log"),
	}
	code, out, errOut := execute(t, []string{"paths"}, environ)
	require.Equal(t, 0, code, errOut)
	require.Equal(t, "/home/me/.config/glyph-popup\n/etc/xdg/glyph-popup\n/opt/conf/glyph-popup\n", out)
}

func TestPathsWithoutHomeFails(t *testing.T) {
	environ := []string{
		"XDG_CONFIG_DIRS=/etc/xdg",
		"GLYPH_POPUP_LOG_FILE=" + filepath.Join(t.TempDir(), "glyph-popup.log"),
	}
	code, _, errOut := execute(t, []string{"paths"}, environ)
	require.Equal(t, 1, code)
	require.NotEmpty(t, errOut)
}
