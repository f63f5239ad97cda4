package builder

import (
	"strconv"
	"strings"

	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/scope"
)

// LexContentFromXml reads the scope declarations of a document into c and
// queues its layouts and styles. It returns false when the document was
// rejected, either because it doesn't parse or because its scope id is taken.
func (b *Builder) LexContentFromXml(c *scope.Context, document string) bool {
	report := func(kind diagnostic.Kind, message string) {
		b.base.Report(diagnostic.Diagnostic{Kind: kind, Message: message, Path: c.Path})
	}
	root, err := parseDocument(c.Path, document)
	if err != nil {
		report(diagnostic.InvalidDocument, err.Error())
		return false
	}
	if root == nil {
		report(diagnostic.InvalidDocument, "document has no root element")
		return false
	}

	localID, ok := attr(root, "Scope")
	if !ok {
		localID, ok = attr(root, "LocalId")
	}
	if !ok {
		localID = b.AnonymousName("XML_")
	}
	if b.table.Has(localID) {
		report(diagnostic.DuplicateScope, "scope "+strconv.Quote(localID)+" is already registered")
		return false
	}
	c.LocalID = localID

	var styles, layouts []*unit
	for _, el := range root.Elements() {
		switch el.Local {
		case "Include":
			for _, name := range scope.Split(el.Text()) {
				c.Import(name)
			}
		case "UseScope":
			for _, id := range scope.Split(el.Text()) {
				c.UseScope(id)
			}
		case "Alias":
			name, ok := attr(el, "Name")
			if !ok {
				b.base.Report(diagnostic.Diagnostic{
					Kind:      diagnostic.MissingAttribute,
					Message:   "<Alias> requires a Name attribute",
					Path:      c.Path,
					Element:   el.Name,
					Attribute: "Name",
				})
				continue
			}
			c.Alias(name, strings.TrimSpace(strings.ReplaceAll(el.Text(), ";", "")))
		case "Layout":
			layouts = append(layouts, &unit{el, c})
		case "Style":
			styles = append(styles, &unit{el, c})
			b.lexStyle(el, c)
		default:
			b.base.Report(diagnostic.Diagnostic{
				Kind:    diagnostic.UnexpectedElement,
				Message: "skipping unexpected <" + el.Name + "> in the document root",
				Path:    c.Path,
				Element: el.Name,
			})
		}
	}
	c.IsStylesheet = len(layouts) == 0 && len(styles) > 0
	if err := b.table.Register(c); err != nil {
		report(diagnostic.DuplicateScope, err.Error())
		return false
	}
	b.styles = append(b.styles, styles...)
	b.layouts = append(b.layouts, layouts...)
	b.log.Debugw("lexed document",
		"path", c.Path,
		"scope", c.LocalID,
		"layouts", len(layouts),
		"styles", len(styles),
		"stylesheet", c.IsStylesheet,
	)
	return true
}

// lexStyle names the style and registers it as a global style when it has no
// name or its target ends with "*"
func (b *Builder) lexStyle(el *ast.Element, c *scope.Context) {
	name, named := attr(el, "Name")
	if !named {
		name = b.AnonymousName("AnonymousStyle_")
	}
	b.names[el] = name
	target, _ := attr(el, "Target")
	if !named || strings.HasSuffix(target, "*") {
		c.AddGlobalStyle(name, strings.TrimSuffix(target, "*"))
	}
}
