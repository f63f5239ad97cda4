// Package coerce turns attribute strings into typed source expressions.
//
// A value may carry a type hint, "int: 42" or "component<Button>: Submit",
// which wins over any inferred type. Coercion never fails: values that can't
// be converted are replaced by the null literal and a diagnostic is reported.
package coerce

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/livebud/layoutc/internal/diagnostic"
)

// Null is emitted in place of values that could not be coerced
const Null = "null"

var (
	hintPattern      = regexp.MustCompile(`^(\w+(?:<[\w.]+>)?):\s?(.+)$`)
	componentPattern = regexp.MustCompile(`(?i)^component<([\w.]+)>$`)
	enumPattern      = regexp.MustCompile(`(?i)^enum<([\w.]+)>$`)
)

// structured types are emitted as constructor calls around the raw value
var structured = map[string]func(raw string) string{
	"color": func(raw string) string {
		return "new Color(" + Quote(raw) + ")"
	},
	"size":      constructor("Size"),
	"point":     constructor("Point"),
	"vector":    constructor("Vector2"),
	"rect":      constructor("Rectangle"),
	"thickness": constructor("Thickness"),
}

func constructor(name string) func(raw string) string {
	return func(raw string) string {
		return "new " + name + "(" + raw + ")"
	}
}

var recommended = map[string]string{
	"ForeColor":      "color",
	"BackColor":      "color",
	"BorderColor":    "color",
	"HighlightColor": "color",
	"ActivatedColor": "color",
	"FontName":       "string",
	"FontStyle":      "string",
	"Text":           "string",
	"FileName":       "string",
	"Source":         "string",
	"ImageSource":    "string",
	"FontSize":       "int",
	"X":              "int",
	"Y":              "int",
	"PictureMode":    "enum",
	"Orientation":    "enum",
}

// RecommendedType returns the default type of well-known property names
func RecommendedType(property string) string {
	return recommended[property]
}

// HasHint reports whether the value starts with a hint of a known type.
// Values like "http://example.com" aren't hinted.
func HasHint(value string) bool {
	match := hintPattern.FindStringSubmatch(value)
	if match == nil {
		return false
	}
	typ := match[1]
	if componentPattern.MatchString(typ) || enumPattern.MatchString(typ) {
		return true
	}
	return knownType(strings.ToLower(typ))
}

func knownType(typ string) bool {
	switch typ {
	case "bool", "byte", "char", "short", "ushort", "int", "uint", "long", "ulong",
		"float", "double", "decimal", "string", "component", "literal", "enum":
		return true
	}
	_, ok := structured[typ]
	return ok
}

func New(sink diagnostic.Sink) *Engine {
	return &Engine{sink}
}

type Engine struct {
	sink diagnostic.Sink
}

func (e *Engine) reportf(kind diagnostic.Kind, format string, args ...interface{}) {
	diagnostic.Reportf(e.sink, kind, format, args...)
}

// ParseHintedString converts value into an expression. overrideType replaces
// the hint, in which case the whole value is used as raw input. enumFamily is
// used for enum types that don't name their family.
func (e *Engine) ParseHintedString(value, rootPath, overrideType, enumFamily string) string {
	var typ, raw string
	match := hintPattern.FindStringSubmatch(value)
	switch {
	case overrideType != "":
		typ, raw = overrideType, value
	case match != nil:
		typ, raw = match[1], match[2]
	default:
		return value
	}

	var cast string
	if m := componentPattern.FindStringSubmatch(typ); m != nil {
		typ, cast = "component", m[1]
	} else if m := enumPattern.FindStringSubmatch(typ); m != nil {
		typ, enumFamily = "enum", m[1]
	} else {
		typ = strings.ToLower(typ)
	}

	switch typ {
	case "bool", "byte", "char", "short", "ushort", "int", "uint",
		"long", "ulong", "float", "double", "decimal":
		expr, ok := literal(typ, raw)
		if !ok {
			e.reportf(diagnostic.ParseFailure, "unable to parse %q as %s", raw, typ)
			return Null
		}
		return expr
	case "string":
		return Quote(raw)
	case "component":
		return Child(rootPath, cast, raw)
	case "literal":
		return raw
	case "enum":
		raw = strings.TrimSpace(raw)
		if enumFamily == "" || raw == "" {
			e.reportf(diagnostic.ParseFailure, "unable to resolve enum value %q without a family", raw)
			return Null
		}
		return enumFamily + "." + raw
	}
	if build, ok := structured[typ]; ok {
		return build(raw)
	}
	e.reportf(diagnostic.UnrecognizedType, "unrecognized type %q for value %q", typ, raw)
	return Null
}

// Coerce an attribute of a component. An explicit hint wins, then the catalog
// type, then the recommended type for the property name. Without any of these
// the value is emitted unchanged.
func (e *Engine) Coerce(property, value, rootPath, catalogType string) string {
	if HasHint(value) {
		return e.ParseHintedString(value, rootPath, "", "")
	}
	if catalogType != "" {
		return e.ParseHintedString(value, rootPath, catalogType, "")
	}
	if typ := RecommendedType(property); typ != "" {
		return e.ParseHintedString(value, rootPath, typ, property)
	}
	return e.ParseHintedString(value, rootPath, "", "")
}

// Child walks a dotted path of child names from root, optionally casting
func Child(root, cast, path string) string {
	out := new(strings.Builder)
	if cast != "" {
		out.WriteString("(" + cast + ")")
	}
	out.WriteString(root)
	for _, segment := range strings.Split(path, ".") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		out.WriteString(".GetChild(")
		out.WriteString(Quote(segment))
		out.WriteString(")")
	}
	return out.String()
}

// Quote a string literal, escaping only backslashes and double quotes
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func literal(typ, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	switch typ {
	case "bool":
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return "", false
		}
		return strconv.FormatBool(b), true
	case "char":
		r, size := utf8.DecodeRuneInString(raw)
		if r == utf8.RuneError || size != len(raw) {
			return "", false
		}
		switch r {
		case '\'':
			return `'\''`, true
		case '\\':
			return `'\\'`, true
		}
		return "'" + string(r) + "'", true
	case "byte":
		return unsigned(raw, 8, "(byte)", "")
	case "ushort":
		return unsigned(raw, 16, "(ushort)", "")
	case "uint":
		return unsigned(raw, 32, "", "u")
	case "ulong":
		return unsigned(raw, 64, "", "UL")
	case "short":
		return signed(raw, 16, "(short)", "")
	case "int":
		return signed(raw, 32, "", "")
	case "long":
		return signed(raw, 64, "", "L")
	case "float":
		return float(raw, 32, "f")
	case "double":
		return float(raw, 64, "d")
	case "decimal":
		if _, ok := float(raw, 64, ""); !ok {
			return "", false
		}
		return raw + "m", true
	}
	return "", false
}

func signed(raw string, bits int, prefix, suffix string) (string, bool) {
	n, err := strconv.ParseInt(raw, 10, bits)
	if err != nil {
		return "", false
	}
	return prefix + strconv.FormatInt(n, 10) + suffix, true
}

func unsigned(raw string, bits int, prefix, suffix string) (string, bool) {
	n, err := strconv.ParseUint(raw, 10, bits)
	if err != nil {
		return "", false
	}
	return prefix + strconv.FormatUint(n, 10) + suffix, true
}

func float(raw string, bits int, suffix string) (string, bool) {
	f, err := strconv.ParseFloat(raw, bits)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'g', -1, bits) + suffix, true
}
