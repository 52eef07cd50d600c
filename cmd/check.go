package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/atomicstack/glyph-popup/internal/app"
	"github.com/atomicstack/glyph-popup/internal/format/table"
	"github.com/atomicstack/glyph-popup/internal/menu"
)

func newCheckCommand(rt *runtime) *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Resolve the configuration and report what it contains",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := rt.config()
			if err != nil {
				return err
			}
			arena, err := app.Load(cfg.App, cfg.Environ)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !list {
				fmt.Fprintf(out, "%d lists, %d items\n", arena.Len(), arena.ItemCount())
				return nil
			}
			lines := table.Format(itemRows(arena), []table.Alignment{table.AlignRight})
			for _, line := range lines {
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&list, "list", "l", false, "print every item with its list and path")
	return cmd
}

// itemRows lays out every arena row as LIST, PATH, NAME, VALUE.
func itemRows(arena *menu.Arena) [][]string {
	rows := [][]string{{"LIST", "PATH", "NAME", "VALUE"}}
	for i := 0; i < arena.Len(); i++ {
		path := listPath(arena, i)
		for _, item := range arena.List(i).Items {
			value := strconv.Quote(item.Payload)
			if item.Kind == menu.ItemList {
				value = fmt.Sprintf("[list %d]", item.Child)
			}
			rows = append(rows, []string{strconv.Itoa(i), path, item.Name.Plain, value})
		}
	}
	return rows
}

func listPath(arena *menu.Arena, list int) string {
	segments := []string{"root"}
	for _, ref := range arena.Path(list) {
		segments = append(segments, arena.List(ref.List).Items[ref.Slot].Name.Plain)
	}
	return strings.Join(segments, menu.BreadcrumbSeparator)
}
