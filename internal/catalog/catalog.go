// Package catalog resolves configuration documents into a tree of menu items.
// A node lists its own items first, then the items of each fragment named by
// its extends key, expanded recursively in order.
package catalog

import (
	"fmt"

	"github.com/atomicstack/glyph-popup/internal/fragment"
	"github.com/atomicstack/glyph-popup/internal/logging/events"
	"github.com/atomicstack/glyph-popup/internal/markup"
)

const (
	rootKey    = "root"
	extendsKey = "extends"
)

// DefaultRoot is the root configuration reference used when none is given.
const DefaultRoot = "config.yaml"

// Item is one resolved entry. Exactly one of Payload or Submenu is meaningful.
type Item struct {
	Name    markup.Text
	Payload string
	Submenu *Node
}

// IsLeaf reports whether choosing the item copies a payload.
func (i Item) IsLeaf() bool {
	return i.Submenu == nil
}

// Node is an ordered list of resolved items.
type Node struct {
	Items []Item
}

// Resolver turns configuration references into resolved nodes. It keeps no
// state between calls; repeated references are read and resolved again.
type Resolver struct {
	loader fragment.Loader
	parse  func(string) (markup.Text, error)
}

// NewResolver returns a resolver that reads sources through loader.
func NewResolver(loader fragment.Loader) *Resolver {
	return &Resolver{loader: loader, parse: markup.Parse}
}

// LoadRoot loads and resolves the root configuration at reference.
func (r *Resolver) LoadRoot(reference string) (*Node, error) {
	if reference == "" {
		reference = DefaultRoot
	}
	src, err := r.loader.Load(reference)
	if err != nil {
		return nil, &ConfigError{Kind: KindLoad, Err: err}
	}
	events.Config.Root(src.Path)
	return r.ResolveRoot(src)
}

// ResolveRoot resolves an already loaded root document. The document must
// contain a single root key.
func (r *Resolver) ResolveRoot(src fragment.Source) (*Node, error) {
	chain := []string{sourceName(src)}
	doc, err := Decode(src.Reference, src.Data)
	if err != nil {
		return nil, &ConfigError{Kind: KindMalformed, Chain: chain, Err: err}
	}
	var root *Document
	for _, entry := range doc.Entries {
		if entry.Key != rootKey {
			return nil, &ConfigError{Kind: KindUnknownField, Chain: chain, Line: entry.Line, Reason: fmt.Sprintf("%q, expected %q", entry.Key, rootKey)}
		}
		if root != nil {
			return nil, &ConfigError{Kind: KindMalformed, Chain: chain, Line: entry.Line, Reason: "duplicate root"}
		}
		if entry.Value.Kind != ValueMapping {
			return nil, &ConfigError{Kind: KindMalformed, Chain: chain, Line: entry.Line, Reason: "root must be a mapping"}
		}
		root = entry.Value.Mapping
	}
	if root == nil {
		return nil, &ConfigError{Kind: KindMalformed, Chain: chain, Reason: fmt.Sprintf("missing %q", rootKey)}
	}
	return r.resolveNode(root, chain)
}

func (r *Resolver) resolveNode(doc *Document, chain []string) (*Node, error) {
	var (
		items   []Item
		extends []string
	)
	for _, entry := range doc.Entries {
		if entry.Key == extendsKey {
			if entry.Value.Kind != ValueSequence {
				return nil, &ConfigError{Kind: KindMalformed, Chain: chain, Line: entry.Line, Reason: "extends must be a list of strings"}
			}
			extends = append(extends, entry.Value.Sequence...)
			continue
		}
		item, err := r.resolveItem(entry, chain)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	for _, reference := range extends {
		included, err := r.resolveFragment(reference, chain)
		if err != nil {
			return nil, err
		}
		items = append(items, included...)
	}
	return &Node{Items: items}, nil
}

func (r *Resolver) resolveItem(entry Entry, chain []string) (Item, error) {
	name, err := r.parse(entry.Key)
	if err != nil {
		return Item{}, &ConfigError{Kind: KindMarkup, Chain: chain, Item: entry.Key, Line: entry.Line, Err: err}
	}
	switch entry.Value.Kind {
	case ValueScalar:
		return Item{Name: name, Payload: entry.Value.Scalar}, nil
	case ValueMapping:
		sub, err := r.resolveNode(entry.Value.Mapping, chain)
		if err != nil {
			return Item{}, err
		}
		return Item{Name: name, Submenu: sub}, nil
	default:
		kind := entry.Value.Tag
		if entry.Value.Kind == ValueSequence {
			kind = "sequence"
		}
		return Item{}, &ConfigError{
			Kind:   KindMalformed,
			Chain:  chain,
			Item:   entry.Key,
			Line:   entry.Line,
			Reason: fmt.Sprintf("expected a string or a mapping, found %s", kind),
		}
	}
}

func (r *Resolver) resolveFragment(reference string, chain []string) ([]Item, error) {
	src, err := r.loader.Load(reference)
	if err != nil {
		return nil, &ConfigError{Kind: KindLoad, Chain: copyChain(chain), Err: err}
	}
	name := sourceName(src)
	for _, seen := range chain {
		if seen == name {
			return nil, &ConfigError{Kind: KindCyclicInclude, Chain: append(copyChain(chain), name), Reason: fmt.Sprintf("%s includes itself", reference)}
		}
	}
	events.Config.Fragment(reference, name, len(chain))
	next := append(copyChain(chain), name)
	doc, err := Decode(src.Reference, src.Data)
	if err != nil {
		return nil, &ConfigError{Kind: KindMalformed, Chain: next, Err: err}
	}
	node, err := r.resolveNode(doc, next)
	if err != nil {
		return nil, err
	}
	return node.Items, nil
}

func sourceName(src fragment.Source) string {
	if src.Path != "" {
		return src.Path
	}
	return src.Reference
}

func copyChain(chain []string) []string {
	return append([]string(nil), chain...)
}

// Count walks n and reports how many menu lists and items it will produce.
func Count(n *Node) (lists, items int) {
	if n == nil {
		return 0, 0
	}
	lists = 1
	for _, item := range n.Items {
		items++
		if item.Submenu != nil {
			l, i := Count(item.Submenu)
			lists += l
			items += i
		}
	}
	return lists, items
}
