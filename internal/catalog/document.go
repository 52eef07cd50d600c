package catalog

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ValueKind classifies a decoded document value before any menu semantics are
// applied.
type ValueKind int

const (
	ValueScalar ValueKind = iota
	ValueSequence
	ValueMapping
	// ValueOther is anything the menu format has no use for: numbers,
	// booleans, nulls, aliases, nested sequences.
	ValueOther
)

// Value is one decoded value.
type Value struct {
	Kind     ValueKind
	Scalar   string
	Sequence []string
	Mapping  *Document
	// Tag describes ValueOther values in error messages.
	Tag  string
	Line int
}

// Entry is a key/value pair. Keys may repeat within a Document.
type Entry struct {
	Key   string
	Value Value
	Line  int
}

// Document is an ordered mapping exactly as it appeared in the source.
type Document struct {
	Entries []Entry
}

// Decode parses data into a Document. References ending in .toml are TOML;
// everything else is YAML, which also covers JSON.
func Decode(reference string, data []byte) (*Document, error) {
	if strings.EqualFold(filepath.Ext(reference), ".toml") {
		return decodeTOML(data)
	}
	return decodeYAML(data)
}

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 {
		return &Document{}, nil
	}
	node := &root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return &Document{}, nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: document must be a mapping, found %s", node.Line, describeYAML(node))
	}
	return yamlMapping(node)
}

func yamlMapping(node *yaml.Node) (*Document, error) {
	doc := &Document{Entries: make([]Entry, 0, len(node.Content)/2)}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: mapping key must be a string, found %s", key.Line, describeYAML(key))
		}
		value, err := yamlValue(val)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, Entry{Key: key.Value, Value: value, Line: key.Line})
	}
	return doc, nil
}

func yamlValue(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.ShortTag() == "!!str" {
			return Value{Kind: ValueScalar, Scalar: node.Value, Line: node.Line}, nil
		}
	case yaml.MappingNode:
		doc, err := yamlMapping(node)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: ValueMapping, Mapping: doc, Line: node.Line}, nil
	case yaml.SequenceNode:
		seq := make([]string, 0, len(node.Content))
		for _, child := range node.Content {
			if child.Kind != yaml.ScalarNode || child.ShortTag() != "!!str" {
				return Value{Kind: ValueOther, Tag: "sequence of " + describeYAML(child), Line: node.Line}, nil
			}
			seq = append(seq, child.Value)
		}
		return Value{Kind: ValueSequence, Sequence: seq, Line: node.Line}, nil
	}
	return Value{Kind: ValueOther, Tag: describeYAML(node), Line: node.Line}, nil
}

func describeYAML(node *yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		return strings.TrimPrefix(node.ShortTag(), "!!")
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}

// decodeTOML rebuilds source order from the metadata key list since the
// decoded map itself is unordered.
func decodeTOML(data []byte) (*Document, error) {
	var values map[string]interface{}
	md, err := toml.Decode(string(data), &values)
	if err != nil {
		return nil, err
	}
	root := &Document{}
	tables := map[string]*Document{"": root}

	var ensure func(path []string) *Document
	ensure = func(path []string) *Document {
		id := strings.Join(path, "\x00")
		if doc, ok := tables[id]; ok {
			return doc
		}
		parent := ensure(path[:len(path)-1])
		if parent == nil {
			return nil
		}
		raw, ok := lookupTOML(values, path)
		if !ok {
			return nil
		}
		if _, isTable := raw.(map[string]interface{}); !isTable {
			return nil
		}
		doc := &Document{}
		tables[id] = doc
		parent.Entries = append(parent.Entries, Entry{Key: path[len(path)-1], Value: Value{Kind: ValueMapping, Mapping: doc}})
		return doc
	}

	for _, key := range md.Keys() {
		if len(key) == 0 {
			continue
		}
		raw, ok := lookupTOML(values, key)
		if !ok {
			continue
		}
		if _, isTable := raw.(map[string]interface{}); isTable {
			ensure(key)
			continue
		}
		parent := ensure(key[:len(key)-1])
		if parent == nil {
			continue
		}
		parent.Entries = append(parent.Entries, Entry{Key: key[len(key)-1], Value: tomlValue(raw)})
	}
	return root, nil
}

func lookupTOML(values map[string]interface{}, path []string) (interface{}, bool) {
	var current interface{} = values
	for _, part := range path {
		table, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = table[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func tomlValue(raw interface{}) Value {
	switch v := raw.(type) {
	case string:
		return Value{Kind: ValueScalar, Scalar: v}
	case []interface{}:
		seq := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return Value{Kind: ValueOther, Tag: fmt.Sprintf("array of %T", item)}
			}
			seq = append(seq, s)
		}
		return Value{Kind: ValueSequence, Sequence: seq}
	default:
		return Value{Kind: ValueOther, Tag: fmt.Sprintf("%T", raw)}
	}
}
