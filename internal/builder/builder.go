// Package builder compiles markup documents into generated source units.
//
// Documents are lexed one at a time into scope contexts. Their layouts and
// styles are queued and only emitted by Build, styles first, so that every
// scope a layout imports is known by then.
package builder

import (
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/catalog"
	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/handler"
	"github.com/livebud/layoutc/internal/parser"
	"github.com/livebud/layoutc/internal/scope"
	"go.uber.org/zap"
)

// ReservedNamespace is the default namespace of custom attributes
const ReservedNamespace = "urn:layoutc:attributes"

type Option func(b *Builder)

// WithLogger logs progress at debug level and diagnostics as warnings
func WithLogger(log *zap.SugaredLogger) Option {
	return func(b *Builder) {
		b.log = log
	}
}

// WithSink receives the diagnostics
func WithSink(sink diagnostic.Sink) Option {
	return func(b *Builder) {
		b.sink = sink
	}
}

// WithEmitter replaces the default emitter. Used for testing.
func WithEmitter(e *emitter.Emitter) Option {
	return func(b *Builder) {
		b.emitter = e
	}
}

// WithReservedNamespace changes the namespace of custom attributes
func WithReservedNamespace(uri string) Option {
	return func(b *Builder) {
		b.reserved = uri
	}
}

// WithBase sets the base classes of generated layouts and styles
func WithBase(layout, style string) Option {
	return func(b *Builder) {
		b.layoutBase = layout
		b.styleBase = style
	}
}

// WithSuppress sets the compiler warnings disabled in generated units
func WithSuppress(warnings ...string) Option {
	return func(b *Builder) {
		b.suppress = warnings
	}
}

// New builder. A nil catalog has no components and a nil registry uses the
// default handlers.
func New(c *catalog.Catalog, registry *handler.Registry, options ...Option) *Builder {
	b := &Builder{
		catalog:    c,
		registry:   registry,
		emitter:    emitter.New(),
		log:        zap.NewNop().Sugar(),
		reserved:   ReservedNamespace,
		layoutBase: "Layout",
		styleBase:  "Style",
		table:      scope.NewTable(),
		exports:    map[string]string{},
		names:      map[*ast.Element]string{},
		declared:   map[string]string{},
		counters:   map[string]int{},
	}
	for _, option := range options {
		option(b)
	}
	if b.registry == nil {
		b.registry = handler.Default()
	}
	sinks := []diagnostic.Sink{diagnostic.Log(b.log)}
	if b.sink != nil {
		sinks = append(sinks, b.sink)
	}
	b.current = diagnostic.Tee(sinks...)
	b.base = b.current
	b.engine = coerce.New(diagnostic.Func(b.Report))
	return b
}

// Builder is single use. Lex every document, then call Build once.
type Builder struct {
	catalog    *catalog.Catalog
	registry   *handler.Registry
	engine     *coerce.Engine
	emitter    *emitter.Emitter
	log        *zap.SugaredLogger
	sink       diagnostic.Sink
	reserved   string
	layoutBase string
	styleBase  string
	suppress   []string

	base    diagnostic.Sink // without location
	current diagnostic.Sink // scoped to the unit being processed

	table    *scope.Table
	styles   []*unit
	layouts  []*unit
	exports  map[string]string
	names    map[*ast.Element]string // names assigned to styles while lexing
	declared map[string]string       // path -> tag within the current layout
	counters map[string]int
}

// unit is a queued layout or style
type unit struct {
	element *ast.Element
	context *scope.Context
}

var _ handler.Builder = (*Builder)(nil)

// Contexts in registration order
func (b *Builder) Contexts() []*scope.Context {
	return b.table.Contexts()
}

// Exports returns a copy of the generated units by name
func (b *Builder) Exports() map[string]string {
	exports := make(map[string]string, len(b.exports))
	for name, text := range b.exports {
		exports[name] = text
	}
	return exports
}

// Build emits every queued style, then every queued layout. Queued units are
// consumed so calling Build again only emits units lexed since.
func (b *Builder) Build() map[string]string {
	b.checkScopes()
	styles, layouts := b.styles, b.layouts
	b.styles, b.layouts = nil, nil
	for _, u := range styles {
		b.ProcessStyle(u.element, u.context)
	}
	for _, u := range layouts {
		b.ProcessLayout(u.element, u.context)
	}
	b.log.Debugw("built", "styles", len(styles), "layouts", len(layouts), "exports", len(b.exports))
	return b.Exports()
}

// checkScopes reports imported sheets that were never registered
func (b *Builder) checkScopes() {
	for _, c := range b.table.Contexts() {
		for _, id := range c.ImportedSheets() {
			if b.table.Has(id) {
				continue
			}
			b.base.Report(diagnostic.Diagnostic{
				Kind:    diagnostic.UnknownScope,
				Message: "scope " + strconv.Quote(c.LocalID) + " uses unknown scope " + strconv.Quote(id),
				Path:    c.Path,
			})
		}
	}
}

// AnonymousName returns prefix followed by a counter that's unique per prefix
// within this builder
func (b *Builder) AnonymousName(prefix string) string {
	b.counters[prefix]++
	return prefix + strconv.Itoa(b.counters[prefix])
}

func (b *Builder) Lookup(component, property string) (string, bool, bool) {
	return b.catalog.Lookup(component, property)
}

func (b *Builder) Coerce(property, value, rootPath, catalogType string) string {
	return b.engine.Coerce(property, value, rootPath, catalogType)
}

func (b *Builder) Evaluate(w *emitter.Writer, depth int, el *ast.Element, c *scope.Context, parentPath string) bool {
	return b.registry.Lookup(el.Local).Evaluate(w, depth, el, b, c, parentPath)
}

func (b *Builder) Reserved(attr *ast.Attribute) bool {
	return attr.Prefix != "" && !attr.IsNamespaceDecl() && attr.Space == b.reserved
}

func (b *Builder) Declare(path, tag string) {
	b.declared[path] = tag
}

func (b *Builder) Declared(path string) (string, bool) {
	tag, ok := b.declared[path]
	return tag, ok
}

func (b *Builder) Report(d diagnostic.Diagnostic) {
	b.current.Report(d)
}

// GlobalStyles visible from c whose target type is one of targets. Styles of
// the imported sheets come first, then the context's own, each in declaration
// order.
func (b *Builder) GlobalStyles(c *scope.Context, targets ...string) (styles []*scope.GlobalStyle) {
	seen := map[*scope.GlobalStyle]bool{}
	add := func(owner *scope.Context) {
		for _, style := range owner.GlobalStyles() {
			if !slices.Contains(targets, style.Target) || seen[style] {
				continue
			}
			seen[style] = true
			styles = append(styles, style)
		}
	}
	for _, id := range c.ImportedSheets() {
		if sheet, ok := b.table.Lookup(id); ok {
			add(sheet)
		}
	}
	add(c)
	return styles
}

// export stores the unit text under its name. Names are write-once.
func (b *Builder) export(name, text string) bool {
	if _, ok := b.exports[name]; ok {
		b.Report(diagnostic.Diagnostic{
			Kind:    diagnostic.DuplicateUnit,
			Message: "a unit named " + strconv.Quote(name) + " was already generated",
		})
		return false
	}
	b.exports[name] = text
	return true
}

// Units lists the generated unit names in sorted order
func (b *Builder) Units() []string {
	names := make([]string, 0, len(b.exports))
	for name := range b.exports {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (b *Builder) class(c *scope.Context, name, base, target string) *emitter.Class {
	return &emitter.Class{
		Name:     name,
		Base:     base,
		Scope:    c.LocalID,
		Target:   target,
		Imports:  c.Imports(),
		Aliases:  c.Aliases(),
		Suppress: b.suppress,
	}
}

// scoped points diagnostics at a unit until the returned function is called
func (b *Builder) scoped(path, unit string) func() {
	b.current = diagnostic.Scoped(b.base, path, unit)
	return func() { b.current = b.base }
}

// parseDocument returns the root element or nil
func parseDocument(path, document string) (*ast.Element, error) {
	doc, err := parser.Parse(path, document)
	if err != nil {
		return nil, err
	}
	return doc.Root(), nil
}

func attr(el *ast.Element, name string) (string, bool) {
	value, ok := el.Attr(name)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}
