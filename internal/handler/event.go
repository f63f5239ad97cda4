package handler

import (
	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/scope"
)

// Event subscribes a handler to a component event.
//
// Directly inside a layout the component is named:
//
//	<Event Component="Submit" Type="Button" Name="Click" Handler="OnSubmit" />
//
// Inside a component the event belongs to that component:
//
//	<Button Name="Submit"><Event Name="Click" Handler="OnSubmit" /></Button>
type Event struct{}

var _ Handler = (*Event)(nil)

func (*Event) Tag() string { return "Event" }

func (*Event) Evaluate(w *emitter.Writer, depth int, el *ast.Element, b Builder, c *scope.Context, parentPath string) bool {
	if parentPath == Root {
		attrs, ok := required(b, el, "Component", "Type", "Name", "Handler")
		if !ok {
			return false
		}
		w.Linef(depth, "((%s)GetChild(%s)).%s += %s;", attrs["Type"], coerce.Quote(attrs["Component"]), attrs["Name"], attrs["Handler"])
		return true
	}
	attrs, ok := required(b, el, "Name", "Handler")
	if !ok {
		return false
	}
	tag, ok := parentTag(b, el, parentPath)
	if !ok {
		return false
	}
	w.Linef(depth, "((%s)%s).%s += %s;", tag, parentPath, attrs["Name"], attrs["Handler"])
	return true
}

// parentTag is the component tag emitted at the parent path. A Type attribute
// is used when the parent isn't known.
func parentTag(b Builder, el *ast.Element, parentPath string) (string, bool) {
	if tag, ok := b.Declared(parentPath); ok {
		return tag, true
	}
	if typ, ok := el.Attr("Type"); ok && typ != "" {
		return typ, true
	}
	b.Report(diagnostic.Diagnostic{
		Kind:      diagnostic.MissingAttribute,
		Message:   "<" + el.Name + "> at " + parentPath + " requires a Type attribute",
		Element:   el.Name,
		Attribute: "Type",
	})
	return "", false
}
