// Package markup parses the Pango inline markup subset used in entry names
// into plain text plus styled byte ranges.
package markup

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

// Kind identifies the style carried by an Attribute.
type Kind int

const (
	KindWeight Kind = iota
	KindStyle
	KindUnderline
	KindStrikethrough
	KindFamily
	KindSize
	KindScale
	KindRise
	KindForeground
	KindBackground
	KindAlpha
	KindBackgroundAlpha
	KindFont
	KindVariant
	KindStretch
	KindFontFeatures
	KindUnderlineColor
	KindOverline
	KindOverlineColor
	KindStrikethroughColor
	KindBaselineShift
	KindFontScale
	KindFallback
	KindLanguage
	KindLetterSpacing
	KindGravity
	KindGravityHint
	KindShow
	KindInsertHyphens
	KindAllowBreaks
	KindLineHeight
	KindTextTransform
	KindSegment
)

var kindNames = [...]string{
	KindWeight:        "weight",
	KindStyle:         "style",
	KindUnderline:     "underline",
	KindStrikethrough: "strikethrough",
	KindFamily:        "family",
	KindSize:          "size",
	KindScale:         "scale",
	KindRise:          "rise",
	KindForeground:    "foreground",
	KindBackground:    "background",
	KindAlpha:         "alpha",

	KindBackgroundAlpha:    "background_alpha",
	KindFont:               "font",
	KindVariant:            "variant",
	KindStretch:            "stretch",
	KindFontFeatures:       "font_features",
	KindUnderlineColor:     "underline_color",
	KindOverline:           "overline",
	KindOverlineColor:      "overline_color",
	KindStrikethroughColor: "strikethrough_color",
	KindBaselineShift:      "baseline_shift",
	KindFontScale:          "font_scale",
	KindFallback:           "fallback",
	KindLanguage:           "lang",
	KindLetterSpacing:      "letter_spacing",
	KindGravity:            "gravity",
	KindGravityHint:        "gravity_hint",
	KindShow:               "show",
	KindInsertHyphens:      "insert_hyphens",
	KindAllowBreaks:        "allow_breaks",
	KindLineHeight:         "line_height",
	KindTextTransform:      "text_transform",
	KindSegment:            "segment",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Attribute styles Plain[Start:End].
type Attribute struct {
	Start int
	End   int
	Kind  Kind
	Value string
}

// Text is a parsed display name.
type Text struct {
	Plain  string
	Attrs  []Attribute
	Markup string
}

// Error reports structurally invalid markup.
type Error struct {
	Markup string
	Line   int
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid markup %q: %s", e.Markup, e.Reason)
}

func (e *Error) Unwrap() error {
	return e.Err
}

const wrapper = "markup"

type openTag struct {
	name  string
	start int
	attrs []Attribute
}

// Parse converts markup into plain text and attributes. Unknown tags, unknown
// span attributes, unbalanced tags and unknown entities are errors, as are
// span values Pango cannot parse.
func Parse(s string) (Text, error) {
	if !utf8.ValidString(s) {
		return Text{}, &Error{Markup: s, Reason: "invalid UTF-8"}
	}
	if !strings.ContainsAny(s, "<&") {
		return Text{Plain: s, Markup: s}, nil
	}
	d := xml.NewDecoder(strings.NewReader("<" + wrapper + ">" + s + "</" + wrapper + ">"))
	d.Strict = true

	var (
		plain  strings.Builder
		stack  []openTag
		attrs  []Attribute
		opened bool
		closed bool
	)
	fail := func(reason string, err error) (Text, error) {
		line := 0
		var syntaxErr *xml.SyntaxError
		if errors.As(err, &syntaxErr) {
			line = syntaxErr.Line
		}
		return Text{}, &Error{Markup: s, Line: line, Reason: reason, Err: err}
	}

	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(err.Error(), err)
		}
		// The wrapper's own end tag is the last token; anything after an
		// earlier </markup> came from the input.
		if closed {
			return fail(fmt.Sprintf("unexpected </%s>", wrapper), nil)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if !opened {
				opened = true
				stack = append(stack, openTag{name: wrapper})
				continue
			}
			if t.Name.Space != "" {
				return fail(fmt.Sprintf("unknown tag <%s:%s>", t.Name.Space, t.Name.Local), nil)
			}
			pending, err := tagAttributes(t)
			if err != nil {
				return fail(err.Error(), nil)
			}
			stack = append(stack, openTag{name: t.Name.Local, start: plain.Len(), attrs: pending})
		case xml.EndElement:
			if len(stack) == 0 {
				return fail(fmt.Sprintf("unexpected </%s>", t.Name.Local), nil)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				closed = true
				continue
			}
			end := plain.Len()
			if end == top.start {
				continue
			}
			for _, a := range top.attrs {
				a.Start = top.start
				a.End = end
				attrs = append(attrs, a)
			}
		case xml.CharData:
			plain.Write(t)
		case xml.Comment:
		default:
			return fail(fmt.Sprintf("unsupported markup construct %T", tok), nil)
		}
	}
	if len(stack) != 0 {
		return fail(fmt.Sprintf("unclosed <%s>", stack[len(stack)-1].name), nil)
	}
	sort.SliceStable(attrs, func(i, j int) bool { return attrs[i].Start < attrs[j].Start })
	return Text{Plain: plain.String(), Attrs: attrs, Markup: s}, nil
}

// Escape quotes text so Parse returns it unchanged as Plain.
func Escape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

func tagAttributes(t xml.StartElement) ([]Attribute, error) {
	simple := func(kind Kind, value string) ([]Attribute, error) {
		if len(t.Attr) != 0 {
			return nil, fmt.Errorf("tag <%s> does not take attributes", t.Name.Local)
		}
		return []Attribute{{Kind: kind, Value: value}}, nil
	}
	switch t.Name.Local {
	case "b":
		return simple(KindWeight, "bold")
	case "i":
		return simple(KindStyle, "italic")
	case "s":
		return simple(KindStrikethrough, "true")
	case "u":
		return simple(KindUnderline, "single")
	case "tt":
		return simple(KindFamily, "monospace")
	case "big":
		return simple(KindScale, "larger")
	case "small":
		return simple(KindScale, "smaller")
	case "sub":
		return simple(KindRise, "sub")
	case "sup":
		return simple(KindRise, "super")
	case "span":
		return spanAttributes(t.Attr)
	default:
		return nil, fmt.Errorf("unknown tag <%s>", t.Name.Local)
	}
}

type spanRule struct {
	kind  Kind
	valid func(string) bool
}

// spanRules lists every <span> attribute Pango accepts. A nil check accepts
// any non-empty value.
var spanRules = map[string]spanRule{
	"font":                {KindFont, nil},
	"font_desc":           {KindFont, nil},
	"font_family":         {KindFamily, nil},
	"face":                {KindFamily, nil},
	"font_size":           {KindSize, nil},
	"size":                {KindSize, nil},
	"font_style":          {KindStyle, enum("normal", "oblique", "italic")},
	"style":               {KindStyle, enum("normal", "oblique", "italic")},
	"font_weight":         {KindWeight, nil},
	"weight":              {KindWeight, nil},
	"font_variant":        {KindVariant, variants},
	"variant":             {KindVariant, variants},
	"font_stretch":        {KindStretch, stretches},
	"stretch":             {KindStretch, stretches},
	"font_features":       {KindFontFeatures, nil},
	"foreground":          {KindForeground, validColor},
	"fgcolor":             {KindForeground, validColor},
	"color":               {KindForeground, validColor},
	"background":          {KindBackground, validColor},
	"bgcolor":             {KindBackground, validColor},
	"alpha":               {KindAlpha, nil},
	"fgalpha":             {KindAlpha, nil},
	"bgalpha":             {KindBackgroundAlpha, nil},
	"background_alpha":    {KindBackgroundAlpha, nil},
	"underline":           {KindUnderline, enum("none", "single", "double", "low", "error", "single-line", "double-line", "error-line")},
	"underline_color":     {KindUnderlineColor, validColor},
	"overline":            {KindOverline, enum("none", "single")},
	"overline_color":      {KindOverlineColor, validColor},
	"rise":                {KindRise, nil},
	"baseline_shift":      {KindBaselineShift, nil},
	"font_scale":          {KindFontScale, enum("superscript", "subscript", "small-caps")},
	"strikethrough":       {KindStrikethrough, boolean},
	"strikethrough_color": {KindStrikethroughColor, validColor},
	"fallback":            {KindFallback, boolean},
	"lang":                {KindLanguage, nil},
	"letter_spacing":      {KindLetterSpacing, nil},
	"gravity":             {KindGravity, enum("south", "east", "north", "west", "auto")},
	"gravity_hint":        {KindGravityHint, enum("natural", "strong", "line")},
	"show":                {KindShow, nil},
	"insert_hyphens":      {KindInsertHyphens, boolean},
	"allow_breaks":        {KindAllowBreaks, boolean},
	"line_height":         {KindLineHeight, nil},
	"text_transform":      {KindTextTransform, enum("none", "lowercase", "uppercase", "capitalize")},
	"segment":             {KindSegment, enum("word", "sentence")},
}

var (
	variants  = enum("normal", "small-caps", "smallcaps", "all-small-caps", "petite-caps", "all-petite-caps", "unicase", "title-caps")
	stretches = enum("ultracondensed", "extracondensed", "condensed", "semicondensed", "normal",
		"semiexpanded", "expanded", "extraexpanded", "ultraexpanded")
	boolean = enum("true", "yes", "t", "y", "false", "no", "f", "n")
)

func spanAttributes(list []xml.Attr) ([]Attribute, error) {
	out := make([]Attribute, 0, len(list))
	for _, a := range list {
		if a.Name.Space != "" {
			return nil, fmt.Errorf("unknown span attribute %s:%s", a.Name.Space, a.Name.Local)
		}
		rule, ok := spanRules[a.Name.Local]
		if !ok {
			return nil, fmt.Errorf("unknown span attribute %q", a.Name.Local)
		}
		value := strings.TrimSpace(a.Value)
		if value == "" {
			return nil, fmt.Errorf("empty value for span attribute %q", a.Name.Local)
		}
		if rule.valid != nil && !rule.valid(value) {
			return nil, fmt.Errorf("invalid %s %q", a.Name.Local, a.Value)
		}
		out = append(out, Attribute{Kind: rule.kind, Value: value})
	}
	return out, nil
}

func enum(options ...string) func(string) bool {
	return func(value string) bool {
		for _, opt := range options {
			if strings.EqualFold(value, opt) {
				return true
			}
		}
		return false
	}
}

func validColor(value string) bool {
	if value == "" {
		return false
	}
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		switch len(hex) {
		case 3, 4, 6, 8, 12:
		default:
			return false
		}
		for _, r := range hex {
			if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
				return false
			}
		}
		return true
	}
	for _, r := range value {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
