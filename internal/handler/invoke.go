package handler

import (
	"strings"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/scope"
)

// Invoke calls a component method once it's built. Args is a semicolon
// separated list of hinted values. A doubled semicolon stays in the value.
//
//	<Invoke Component="List" Type="ListBox" Name="Select" Args="int: 0" />
type Invoke struct{}

var _ Handler = (*Invoke)(nil)

func (*Invoke) Tag() string { return "Invoke" }

func (*Invoke) Evaluate(w *emitter.Writer, depth int, el *ast.Element, b Builder, c *scope.Context, parentPath string) bool {
	if parentPath == Root {
		attrs, ok := required(b, el, "Component", "Type", "Name")
		if !ok {
			return false
		}
		args := arguments(b, el, parentPath)
		w.Linef(depth, "((%s)GetChild(%s)).%s(%s);", attrs["Type"], coerce.Quote(attrs["Component"]), attrs["Name"], args)
		return true
	}
	attrs, ok := required(b, el, "Name")
	if !ok {
		return false
	}
	tag, ok := parentTag(b, el, parentPath)
	if !ok {
		return false
	}
	args := arguments(b, el, parentPath)
	w.Linef(depth, "((%s)%s).%s(%s);", tag, parentPath, attrs["Name"], args)
	return true
}

func arguments(b Builder, el *ast.Element, parentPath string) string {
	value, ok := el.Attr("Args")
	if !ok {
		return ""
	}
	var args []string
	for _, arg := range splitArgs(value) {
		arg = strings.TrimSpace(arg)
		if arg == "" {
			continue
		}
		args = append(args, b.Coerce("", arg, parentPath, ""))
	}
	return strings.Join(args, ", ")
}

// splitArgs splits on single semicolons, unescaping ";;" to ";"
func splitArgs(value string) (args []string) {
	var arg strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] != ';' {
			arg.WriteByte(value[i])
			continue
		}
		if i+1 < len(value) && value[i+1] == ';' {
			arg.WriteByte(';')
			i++
			continue
		}
		args = append(args, arg.String())
		arg.Reset()
	}
	return append(args, arg.String())
}
