package handler

import (
	"strings"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/scope"
)

// General builds a component named by the element's tag and adds it to the
// parent. It's only used as the fallback so it doesn't own a tag.
type General struct{}

var _ Handler = (*General)(nil)

func (*General) Tag() string { return "" }

func (*General) Evaluate(w *emitter.Writer, depth int, el *ast.Element, b Builder, c *scope.Context, parentPath string) bool {
	tag := el.Local
	name, ok := el.Attr("Name")
	if !ok || name == "" {
		name = b.AnonymousName("AnonymousComponent_")
	}
	path := ChildPath(parentPath, name)

	var props, late []string
	var custom []*ast.Attribute
	for _, attr := range el.Attributes {
		switch {
		case attr.IsNamespaceDecl():
			continue
		case b.Reserved(attr):
			custom = append(custom, attr)
		case attr.Prefix != "":
			b.Report(diagnostic.Diagnostic{
				Kind:      diagnostic.InvalidAttribute,
				Message:   "skipping " + attr.Name + " on <" + el.Name + ">, only custom attributes may have a prefix",
				Element:   el.Name,
				Attribute: attr.Name,
			})
		case attr.Local == "Name" || attr.Local == "Data":
			continue
		default:
			typ, lateBind, _ := b.Lookup(c.Resolve(tag), attr.Local)
			assign := attr.Local + " = " + b.Coerce(attr.Local, attr.Value, Root, typ)
			if lateBind {
				late = append(late, assign)
				continue
			}
			props = append(props, assign)
		}
	}

	ctor := "new " + tag
	if data, ok := el.Attr("Data"); ok {
		ctor += "(" + data + ")"
	} else if len(props) == 0 {
		ctor += "()"
	}
	if len(props) > 0 {
		ctor += " { " + strings.Join(props, ", ") + " }"
	}
	w.Linef(depth, "%sAddChild(%s, %s);", member(parentPath), coerce.Quote(name), ctor)
	customAttributes(w, depth, path, custom)
	b.Declare(path, tag)
	for _, style := range b.GlobalStyles(c, tag) {
		w.Linef(depth, "runtime.QueueStyle(%s, %s, %s);", path, coerce.Quote(style.Name), coerce.Quote(c.Chain()))
	}
	for _, child := range el.Elements() {
		b.Evaluate(w, depth, child, c, path)
	}
	for _, assign := range late {
		w.Linef(depth, "((%s)%s).%s;", tag, path, assign)
	}
	return true
}

// customAttributes assigns reserved-namespace attributes after construction.
// Nested paths may be null and can't be assigned through, so they're read into
// a block-scoped local first.
func customAttributes(w *emitter.Writer, depth int, path string, custom []*ast.Attribute) {
	if len(custom) == 0 {
		return
	}
	if !strings.Contains(path, "?.") {
		for _, attr := range custom {
			w.Linef(depth, "%s.Attributes[%s] = %s;", path, coerce.Quote(attr.Local), coerce.Quote(attr.Value))
		}
		return
	}
	w.Line(depth, "{")
	w.Linef(depth+1, "var node = %s;", path)
	for _, attr := range custom {
		w.Linef(depth+1, "if (node != null) node.Attributes[%s] = %s;", coerce.Quote(attr.Local), coerce.Quote(attr.Value))
	}
	w.Line(depth, "}")
}

// ChildPath is the path expression of a named child. Below the first level
// the lookup is null-propagating.
func ChildPath(parentPath, name string) string {
	return member(parentPath) + "GetChild(" + coerce.Quote(name) + ")"
}

func member(path string) string {
	if path == Root {
		return path + "."
	}
	return path + "?."
}
