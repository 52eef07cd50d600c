package menu

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/glyph-popup/internal/catalog"
	"github.com/atomicstack/glyph-popup/internal/clipboard"
	"github.com/atomicstack/glyph-popup/internal/fragment"
	"github.com/atomicstack/glyph-popup/internal/markup"
)

type recordingWriter struct {
	copied []string
	err    error
}

func (w *recordingWriter) Copy(text string) error {
	if w.err != nil {
		return w.err
	}
	w.copied = append(w.copied, text)
	return nil
}

type docLoader map[string]string

func (d docLoader) Load(reference string) (fragment.Source, error) {
	data, ok := d[reference]
	if !ok {
		return fragment.Source{}, &fragment.LoadError{Kind: fragment.KindNotFound, Reference: reference}
	}
	return fragment.Source{Reference: reference, Path: reference, Data: []byte(data)}, nil
}

func resolveArena(t *testing.T, files docLoader) *Arena {
	t.Helper()
	node, err := catalog.NewResolver(files).LoadRoot("config.yaml")
	require.NoError(t, err)
	return Build(node)
}

func text(t *testing.T, s string) markup.Text {
	t.Helper()
	parsed, err := markup.Parse(s)
	require.NoError(t, err)
	return parsed
}

// nested builds root -> "One" -> "Two" -> "Three", each level also holding a
// leaf named after its depth.
func nested(t *testing.T) *Arena {
	return resolveArena(t, docLoader{"config.yaml": `
root:
  top: "0"
  One:
    one: "1"
    "<b>Two</b>":
      two: "2"
      Three:
        three: "3"
`})
}

func TestRoundTripScenario(t *testing.T) {
	arena := resolveArena(t, docLoader{"config.yaml": `{root: {"A": "x", "B": {"C": "y"}}}`})
	require.Equal(t, 2, arena.Len())

	root := arena.List(0)
	require.Nil(t, root.Back)
	require.Len(t, root.Items, 2)
	require.Equal(t, "A", root.Items[0].Name.Plain)
	require.Equal(t, ItemText, root.Items[0].Kind)
	require.Equal(t, "x", root.Items[0].Payload)
	require.Equal(t, "B", root.Items[1].Name.Plain)
	require.Equal(t, ItemList, root.Items[1].Kind)
	require.Equal(t, 1, root.Items[1].Child)

	sub := arena.List(1)
	require.Equal(t, &BackRef{List: 0, Slot: 1}, sub.Back)
	require.Len(t, sub.Items, 1)
	require.Equal(t, "C", sub.Items[0].Name.Plain)
	require.Equal(t, "y", sub.Items[0].Payload)

	clip := &recordingWriter{}
	e := NewEngine(arena, clip)
	action, err := e.OnSelect(1)
	require.NoError(t, err)
	require.Equal(t, Reload, action)
	require.Equal(t, "B", e.Breadcrumb())

	action, err = e.OnSelect(0)
	require.NoError(t, err)
	require.Equal(t, Exit, action)
	require.Equal(t, []string{"y"}, clip.copied)
	require.Equal(t, 1, e.Active())
}

func TestBuildPreOrderIndices(t *testing.T) {
	arena := resolveArena(t, docLoader{"config.yaml": `
root:
  A:
    A1:
      leaf: a
  B:
    leaf: b
`})
	require.Equal(t, 4, arena.Len())
	root := arena.List(0)
	require.Equal(t, 1, root.Items[0].Child)
	require.Equal(t, 3, root.Items[1].Child)
	require.Equal(t, 2, arena.List(1).Items[0].Child)
	require.Equal(t, &BackRef{List: 1, Slot: 0}, arena.List(2).Back)
	require.Equal(t, &BackRef{List: 0, Slot: 1}, arena.List(3).Back)
	require.Equal(t, 5, arena.ItemCount())
}

func TestBuildEmptyTree(t *testing.T) {
	arena := Build(nil)
	require.Equal(t, 1, arena.Len())
	e := NewEngine(arena, &recordingWriter{})
	require.Equal(t, 0, e.EntryCount())
	require.Equal(t, Exit, e.OnCancel(nil))
}

func TestBackReferencesReachRootAtDepth(t *testing.T) {
	arena := nested(t)
	wantDepth := []int{0, 1, 2, 3}
	for i := 0; i < arena.Len(); i++ {
		require.Equal(t, wantDepth[i], arena.Depth(i), "list %d", i)
		require.Len(t, arena.Path(i), wantDepth[i])
		steps := 0
		for back := arena.List(i).Back; back != nil; back = arena.List(back.List).Back {
			require.Less(t, back.List, i)
			steps++
		}
		require.Equal(t, wantDepth[i], steps)
	}
}

func TestDiamondIncludesBuildDistinctLists(t *testing.T) {
	arena := resolveArena(t, docLoader{
		"config.yaml": `
root:
  Left: {extends: [shared.yaml]}
  Right: {extends: [shared.yaml]}
`,
		"shared.yaml": `Shared: {s: s}`,
	})
	require.Equal(t, 5, arena.Len())
	left := arena.List(1).Items[0].Child
	right := arena.List(3).Items[0].Child
	require.NotEqual(t, left, right)
	require.Equal(t, 2, arena.Depth(left))
	require.Equal(t, 2, arena.Depth(right))
}

func TestBreadcrumbJoinsMarkupRootFirst(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	require.Equal(t, "", e.Breadcrumb())

	crumbs := []string{"One", "One / <b>Two</b>", "One / <b>Two</b> / Three"}
	for depth, want := range crumbs {
		_, err := e.OnSelect(e.EntryCount() - 1)
		require.NoError(t, err)
		require.Equal(t, want, e.Breadcrumb())
		require.Equal(t, depth+1, strings.Count(e.Breadcrumb(), BreadcrumbSeparator)+1)
		require.Equal(t, depth+1, e.Depth())
	}
}

func TestCancelWalksBackOneLevelAndClearsInput(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	for i := 0; i < 3; i++ {
		_, err := e.OnSelect(e.EntryCount() - 1)
		require.NoError(t, err)
	}
	require.Equal(t, 3, e.Depth())

	for depth := 3; depth > 0; depth-- {
		input := "query"
		require.Equal(t, Reload, e.OnCancel(&input))
		require.Equal(t, depth-1, e.Depth())
		require.Equal(t, "", input)
	}

	input := "kept"
	require.Equal(t, Exit, e.OnCancel(&input))
	require.Equal(t, RootList, e.Active())
	require.Equal(t, "kept", input)
}

func TestSelectLeafDoesNotMoveAndSubmenuDoes(t *testing.T) {
	clip := &recordingWriter{}
	e := NewEngine(nested(t), clip)

	action, err := e.OnSelect(0)
	require.NoError(t, err)
	require.Equal(t, Exit, action)
	require.Equal(t, RootList, e.Active())
	require.Equal(t, []string{"0"}, clip.copied)

	item, ok := e.Entry(1)
	require.True(t, ok)
	action, err = e.OnSelect(1)
	require.NoError(t, err)
	require.Equal(t, Reload, action)
	require.Equal(t, item.Child, e.Active())
}

func TestClipboardFailureReloadsInPlace(t *testing.T) {
	failure := &clipboard.Error{Backend: "xclip", Op: "spawn", Err: errors.New("boom")}
	e := NewEngine(nested(t), &recordingWriter{err: failure})
	_, err := e.OnSelect(1)
	require.NoError(t, err)
	before := e.Active()

	action, err := e.OnSelect(0)
	require.Equal(t, Reload, action)
	var clipErr *clipboard.Error
	require.ErrorAs(t, err, &clipErr)
	require.Equal(t, before, e.Active())
}

func TestSelectOutOfRange(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	action, err := e.OnSelect(42)
	require.Equal(t, Reload, action)
	require.Error(t, err)
}

func TestReactReportsSelectionErrors(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	input := "x"
	action, err := e.React(Ok{Selected: 42}, &input)
	require.Equal(t, Reload, action)
	require.ErrorContains(t, err, "no entry at row 42")
	require.Equal(t, "x", input)

	unconfigured := NewEngine(nested(t), nil)
	action, err = unconfigured.React(Ok{Selected: 0}, &input)
	require.Equal(t, Reload, action)
	require.ErrorContains(t, err, "no clipboard configured")
	require.Equal(t, RootList, unconfigured.Active())
}

func TestCompleteUsesPlainText(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	_, err := e.OnSelect(1)
	require.NoError(t, err)

	input := "tw"
	require.Equal(t, Reload, e.OnComplete(1, &input))
	require.Equal(t, "Two", input)
	require.Equal(t, "Two", e.EntryCompletedText(1))
}

func TestEntryRenderPassesAttributesThrough(t *testing.T) {
	arena := Build(&catalog.Node{Items: []catalog.Item{{Name: text(t, "<i>slanted</i>"), Payload: "/"}}})
	e := NewEngine(arena, &recordingWriter{})
	plain, attrs := e.EntryRender(0)
	require.Equal(t, "slanted", plain)
	want := []markup.Attribute{{Start: 0, End: 7, Kind: markup.KindStyle, Value: "italic"}}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchesUsesPlainText(t *testing.T) {
	e := NewEngine(nested(t), &recordingWriter{})
	_, err := e.OnSelect(1)
	require.NoError(t, err)

	var seen []string
	m := MatcherFunc(func(s string) bool {
		seen = append(seen, s)
		return strings.HasPrefix(s, "T")
	})
	require.False(t, e.Matches(0, m))
	require.True(t, e.Matches(1, m))
	require.False(t, e.Matches(9, m))
	require.Equal(t, []string{"one", "Two"}, seen)
}

func TestReactMapsEvents(t *testing.T) {
	clip := &recordingWriter{}
	e := NewEngine(nested(t), clip)
	input := "abc"

	cases := []struct {
		name   string
		event  Event
		want   Action
		active int
		input  string
	}{
		{"custom input reloads", CustomInput{Text: "zzz"}, Reload, 0, "abc"},
		{"delete reloads", DeleteEntry{Selected: 0}, Reload, 0, "abc"},
		{"custom command reloads", CustomCommand{Number: 1}, Reload, 0, "abc"},
		{"complete without selection reloads", Complete{}, Reload, 0, "abc"},
		{"complete with selection fills input", Complete{Selected: 1, HasSelection: true}, Reload, 0, "One"},
		{"ok on submenu enters it", Ok{Selected: 1}, Reload, 1, "One"},
		{"cancel goes back and clears", Cancel{}, Reload, 0, ""},
		{"ok on leaf exits", Ok{Selected: 0}, Exit, 0, ""},
		{"cancel at root exits", Cancel{}, Exit, 0, ""},
	}
	for _, tc := range cases {
		action, err := e.React(tc.event, &input)
		require.NoError(t, err, tc.name)
		require.Equal(t, tc.want, action, tc.name)
		require.Equal(t, tc.active, e.Active(), tc.name)
		require.Equal(t, tc.input, input, tc.name)
	}
	require.Equal(t, []string{"0"}, clip.copied)
}
