package menu

import (
	"github.com/atomicstack/glyph-popup/internal/catalog"
	"github.com/atomicstack/glyph-popup/internal/markup"
)

// RootList is the arena index of the top-level menu.
const RootList = 0

// ItemKind distinguishes payload rows from submenu rows.
type ItemKind int

const (
	ItemText ItemKind = iota
	ItemList
)

// Item is one row of a List.
type Item struct {
	Name markup.Text
	Kind ItemKind
	// Payload is copied when a text item is chosen.
	Payload string
	// Child is the arena index of the submenu for list items.
	Child int
}

// BackRef locates the row a list was entered from.
type BackRef struct {
	List int
	Slot int
}

// List is one menu level. Back is nil only for the root.
type List struct {
	Back  *BackRef
	Items []Item
}

// Arena holds every list of a menu tree, addressed by index. It is built once
// and never modified afterwards.
type Arena struct {
	lists []List
}

// Build flattens a resolved tree in pre-order: the root is list 0 and every
// submenu gets the next free index before its own children.
func Build(root *catalog.Node) *Arena {
	a := &Arena{}
	if root == nil {
		root = &catalog.Node{}
	}
	a.build(root, nil)
	return a
}

func (a *Arena) build(n *catalog.Node, back *BackRef) int {
	idx := len(a.lists)
	a.lists = append(a.lists, List{Back: back})
	items := make([]Item, 0, len(n.Items))
	for slot, entry := range n.Items {
		if entry.IsLeaf() {
			items = append(items, Item{Name: entry.Name, Kind: ItemText, Payload: entry.Payload})
			continue
		}
		child := a.build(entry.Submenu, &BackRef{List: idx, Slot: slot})
		items = append(items, Item{Name: entry.Name, Kind: ItemList, Child: child})
	}
	a.lists[idx].Items = items
	return idx
}

// Len is the number of lists.
func (a *Arena) Len() int {
	return len(a.lists)
}

// List returns list i. It panics if i is out of range.
func (a *Arena) List(i int) List {
	return a.lists[i]
}

// Depth counts the back references between list i and the root.
func (a *Arena) Depth(i int) int {
	depth := 0
	for back := a.lists[i].Back; back != nil; back = a.lists[back.List].Back {
		depth++
	}
	return depth
}

// Path returns the rows leading from the root to list i, root first.
func (a *Arena) Path(i int) []BackRef {
	var path []BackRef
	for back := a.lists[i].Back; back != nil; back = a.lists[back.List].Back {
		path = append(path, *back)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}

// ItemCount sums the rows of every list.
func (a *Arena) ItemCount() int {
	total := 0
	for _, l := range a.lists {
		total += len(l.Items)
	}
	return total
}
