// Package handler emits the statements for the elements inside a layout.
//
// Handlers are chosen by tag. Event and Invoke are control tags, every other
// tag is treated as a component class by the general handler.
package handler

import (
	"sort"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/scope"
)

// Root is the path expression of the layout being built
const Root = "this"

// Handler emits the statements for one element. Evaluate returns false when the
// element was skipped, in which case nothing was written.
type Handler interface {
	// Tag owned by the handler. Handlers returning an empty tag aren't
	// registered.
	Tag() string
	Evaluate(w *emitter.Writer, depth int, el *ast.Element, b Builder, c *scope.Context, parentPath string) bool
}

// Builder is what handlers need from the orchestrator
type Builder interface {
	// Lookup a property type in the component catalog
	Lookup(component, property string) (typ string, lateBind bool, ok bool)
	// Coerce an attribute value into an expression
	Coerce(property, value, rootPath, catalogType string) string
	// AnonymousName returns a name with the prefix that's unique in this run
	AnonymousName(prefix string) string
	// Evaluate dispatches a child element to its handler
	Evaluate(w *emitter.Writer, depth int, el *ast.Element, c *scope.Context, parentPath string) bool
	// Reserved reports whether the attribute is in the custom attribute
	// namespace
	Reserved(attr *ast.Attribute) bool
	// Declare records the component tag emitted at a path
	Declare(path, tag string)
	// Declared returns the component tag emitted at a path
	Declared(path string) (tag string, ok bool)
	// GlobalStyles visible from the context that target one of the types
	GlobalStyles(c *scope.Context, targets ...string) []*scope.GlobalStyle
	Report(d diagnostic.Diagnostic)
}

// NewRegistry registers the handlers by tag. Elements without a handler go to
// the fallback.
func NewRegistry(fallback Handler, handlers ...Handler) *Registry {
	r := &Registry{
		fallback: fallback,
		handlers: map[string]Handler{},
	}
	for _, h := range handlers {
		if tag := h.Tag(); tag != "" {
			r.handlers[tag] = h
		}
	}
	return r
}

// Default registry with the event, invoke and general handlers
func Default() *Registry {
	return NewRegistry(&General{}, &Event{}, &Invoke{})
}

type Registry struct {
	fallback Handler
	handlers map[string]Handler
}

// Lookup the handler for a tag
func (r *Registry) Lookup(tag string) Handler {
	if h, ok := r.handlers[tag]; ok {
		return h
	}
	return r.fallback
}

// Tags with a registered handler in sorted order
func (r *Registry) Tags() (tags []string) {
	for tag := range r.handlers {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// required returns the values of the attributes, reporting the first one
// that's missing
func required(b Builder, el *ast.Element, names ...string) (map[string]string, bool) {
	values := make(map[string]string, len(names))
	for _, name := range names {
		value, ok := el.Attr(name)
		if !ok || value == "" {
			b.Report(diagnostic.Diagnostic{
				Kind:      diagnostic.MissingAttribute,
				Message:   "<" + el.Name + "> requires a " + name + " attribute",
				Element:   el.Name,
				Attribute: name,
			})
			return nil, false
		}
		values[name] = value
	}
	return values, true
}
