package catalog

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

type Kind uint8

const (
	KindPrimitive Kind = iota
	KindComponent
	KindEnum
)

// Primitives is the literal vocabulary of primitive property types
var Primitives = []string{
	"bool", "byte", "char", "short", "ushort", "int", "uint",
	"long", "ulong", "float", "double", "decimal", "string",
}

func isPrimitive(name string) bool {
	for _, p := range Primitives {
		if p == name {
			return true
		}
	}
	return false
}

// Type is a parsed property type:
//
//	primitive | "component<" Name ">" | "enum<" Name ">", optionally suffixed "*"
type Type struct {
	Kind     Kind
	Name     string // Primitive name, component name or enum family
	LateBind bool
}

var genericType = regexp.MustCompile(`^(component|enum)<([A-Za-z_][\w.]*)>$`)

func ParseType(s string) (Type, error) {
	var t Type
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "*") {
		t.LateBind = true
		s = strings.TrimSuffix(s, "*")
	}
	if isPrimitive(s) {
		t.Kind = KindPrimitive
		t.Name = s
		return t, nil
	}
	match := genericType.FindStringSubmatch(s)
	if match == nil {
		return Type{}, errors.Newf("catalog: invalid property type %q", s)
	}
	switch match[1] {
	case "component":
		t.Kind = KindComponent
	case "enum":
		t.Kind = KindEnum
	}
	t.Name = match[2]
	return t, nil
}

func (t Type) String() string {
	var s string
	switch t.Kind {
	case KindComponent:
		s = "component<" + t.Name + ">"
	case KindEnum:
		s = "enum<" + t.Name + ">"
	default:
		s = t.Name
	}
	if t.LateBind {
		s += "*"
	}
	return s
}
