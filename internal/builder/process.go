package builder

import (
	"strconv"
	"strings"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/handler"
	"github.com/livebud/layoutc/internal/scope"
)

// ProcessStyle emits a style unit
//
//	<Style Name="Primary" Target="Button" ApplyToChildren="true" DerivedFrom="Base">
//		<Setter Name="ForeColor" Value="#fff" />
//	</Style>
func (b *Builder) ProcessStyle(el *ast.Element, c *scope.Context) bool {
	name, ok := b.names[el]
	if !ok {
		if name, ok = attr(el, "Name"); !ok {
			name = b.AnonymousName("AnonymousStyle_")
		}
	}
	defer b.scoped(c.Path, name)()
	target, _ := attr(el, "Target")
	target = strings.TrimSuffix(target, "*")

	w := new(emitter.Writer)
	class := b.class(c, name, b.styleBase, target)
	b.emitter.Header(w, class)
	b.emitter.Preamble(w, class)
	if target != "" {
		w.Linef(emitter.Body, "TargetType = typeof(%s);", target)
	}
	for _, flag := range []string{"ApplyToSelf", "ApplyToChildren"} {
		if value, ok := b.flag(el, flag); ok {
			w.Linef(emitter.Body, "%s = %t;", flag, value)
		}
	}
	base, ok := attr(el, "DerivedFrom")
	if !ok {
		base, ok = attr(el, "From")
	}
	if ok {
		w.Linef(emitter.Body, "DeriveFrom(styles.FetchStyle(%s, %s));", coerce.Quote(base), coerce.Quote(c.Chain()))
	}
	for _, child := range el.Elements() {
		if child.Local != "Setter" {
			b.Report(diagnostic.Diagnostic{
				Kind:    diagnostic.UnexpectedElement,
				Message: "skipping <" + child.Name + ">, styles only contain setters",
				Element: child.Name,
			})
			continue
		}
		b.ProcessSetter(w, child, el, c)
	}
	b.emitter.Epilogue(w)
	b.emitter.Footer(w)
	return b.export(name, w.String())
}

// flag parses a boolean attribute. Absent or invalid flags aren't emitted.
func (b *Builder) flag(el *ast.Element, name string) (bool, bool) {
	raw, ok := el.Attr(name)
	if !ok {
		return false, false
	}
	value, err := strconv.ParseBool(strings.ToLower(strings.TrimSpace(raw)))
	if err != nil {
		b.Report(diagnostic.Diagnostic{
			Kind:      diagnostic.InvalidAttribute,
			Message:   "ignoring " + name + "=" + strconv.Quote(raw) + ", expected true or false",
			Element:   el.Name,
			Attribute: name,
		})
		return false, false
	}
	return value, true
}

// ProcessSetter emits one AddSetter call of a style. The value comes from the
// Value attribute or the setter's text and is typed by the style's target,
// with aliases of c resolved.
func (b *Builder) ProcessSetter(w *emitter.Writer, el, style *ast.Element, c *scope.Context) bool {
	target, ok := style.Attr("Target")
	if !ok {
		b.Report(diagnostic.Diagnostic{
			Kind:      diagnostic.MissingAttribute,
			Message:   "skipping <Setter>, its style requires a Target attribute",
			Element:   el.Name,
			Attribute: "Target",
		})
		return false
	}
	property, ok := attr(el, "Name")
	if !ok {
		property, ok = attr(el, "Property")
	}
	if !ok {
		b.Report(diagnostic.Diagnostic{
			Kind:      diagnostic.MissingAttribute,
			Message:   "<Setter> requires a Name or Property attribute",
			Element:   el.Name,
			Attribute: "Name",
		})
		return false
	}
	value, ok := el.Attr("Value")
	if !ok {
		value = strings.TrimSpace(el.Text())
	}
	target = strings.TrimSuffix(strings.TrimSpace(target), "*")
	typ, _, _ := b.Lookup(c.Resolve(target), property)
	w.Linef(emitter.Body, "AddSetter(%s, %s);", coerce.Quote(property), b.Coerce(property, value, handler.Root, typ))
	return true
}

// ProcessLayout emits a layout unit. Global styles for the layout itself are
// queued first, then the styles it lists, then its children are built.
//
//	<Layout Name="Home" Style="Dark;Compact">
//		<Label Name="Title" Text="Hello" />
//	</Layout>
func (b *Builder) ProcessLayout(el *ast.Element, c *scope.Context) bool {
	name, ok := attr(el, "Name")
	if !ok {
		b.base.Report(diagnostic.Diagnostic{
			Kind:      diagnostic.MissingAttribute,
			Message:   "skipping <Layout> without a Name attribute",
			Path:      c.Path,
			Element:   el.Name,
			Attribute: "Name",
		})
		return false
	}
	defer b.scoped(c.Path, name)()
	b.declared = map[string]string{}

	w := new(emitter.Writer)
	class := b.class(c, name, b.layoutBase, "")
	b.emitter.Header(w, class)
	b.emitter.Preamble(w, class)
	chain := coerce.Quote(c.Chain())
	for _, style := range b.GlobalStyles(c, "", "Layout") {
		w.Linef(emitter.Body, "runtime.QueueStyle(%s, %s, %s);", handler.Root, coerce.Quote(style.Name), chain)
	}
	if list, ok := el.Attr("Style"); ok {
		for _, style := range scope.Split(list) {
			w.Linef(emitter.Body, "runtime.QueueStyle(%s, %s, %s);", handler.Root, coerce.Quote(style), chain)
		}
	}
	for _, child := range el.Elements() {
		b.Evaluate(w, emitter.Body, child, c, handler.Root)
	}
	b.emitter.Epilogue(w)
	b.emitter.Footer(w)
	return b.export(name, w.String())
}
