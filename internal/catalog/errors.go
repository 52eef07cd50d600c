package catalog

import (
	"fmt"
	"strings"
)

// ErrorKind classifies resolution failures.
type ErrorKind int

const (
	KindMalformed ErrorKind = iota
	KindUnknownField
	KindLoad
	KindMarkup
	KindCyclicInclude
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformed:
		return "malformed configuration"
	case KindUnknownField:
		return "unknown field"
	case KindLoad:
		return "could not load fragment"
	case KindMarkup:
		return "invalid markup"
	case KindCyclicInclude:
		return "cyclic include"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// ConfigError aborts resolution. Chain lists the fragment paths being
// resolved when the error occurred, outermost first.
type ConfigError struct {
	Kind   ErrorKind
	Chain  []string
	Item   string
	Line   int
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Item != "" {
		fmt.Fprintf(&b, " in item %q", e.Item)
	}
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if len(e.Chain) > 0 {
		b.WriteString(" (via ")
		b.WriteString(strings.Join(e.Chain, " -> "))
		b.WriteString(")")
	}
	return b.String()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
