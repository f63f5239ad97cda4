package ast

import (
	"strconv"
	"strings"
)

type Node interface {
	print(indent string) string
}

var (
	_ Node = (*Document)(nil)
	_ Node = (*Element)(nil)
	_ Node = (*Attribute)(nil)
	_ Node = (*Text)(nil)
	_ Node = (*Comment)(nil)
)

type Document struct {
	Path     string
	Children []Fragment
}

func (d *Document) Type() string { return "Document" }

// Root returns the first top-level element or nil
func (d *Document) Root() *Element {
	for _, child := range d.Children {
		if el, ok := child.(*Element); ok {
			return el
		}
	}
	return nil
}

func (d *Document) String() string {
	return d.print("")
}

func (d *Document) print(indent string) string {
	out := new(strings.Builder)
	for _, child := range d.Children {
		out.WriteString(child.print(indent))
		out.WriteByte('\n')
	}
	return out.String()
}

type Fragment interface {
	Node
	fragment()
}

var (
	_ Fragment = (*Element)(nil)
	_ Fragment = (*Text)(nil)
	_ Fragment = (*Comment)(nil)
)

type Element struct {
	Name        string // Qualified name as written
	Prefix      string // Namespace prefix, if any
	Local       string // Name without prefix
	Space       string // Resolved namespace URI
	Attributes  []*Attribute
	Children    []Fragment
	SelfClosing bool
	Line        int
}

func (e *Element) fragment() {}

func (e *Element) Type() string { return "Element" }

// Attr returns the value of an unprefixed attribute
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.Attributes {
		if attr.Prefix == "" && attr.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

// Elements returns the child elements, skipping text and comments
func (e *Element) Elements() (elements []*Element) {
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			elements = append(elements, el)
		}
	}
	return elements
}

// Text concatenates the direct text content of the element
func (e *Element) Text() string {
	out := new(strings.Builder)
	for _, child := range e.Children {
		if text, ok := child.(*Text); ok {
			out.WriteString(text.Value)
		}
	}
	return out.String()
}

func (e *Element) String() string {
	return e.print("")
}

func (e *Element) print(indent string) string {
	out := new(strings.Builder)
	out.WriteString(indent)
	out.WriteString("<")
	out.WriteString(e.Name)
	for _, attr := range e.Attributes {
		out.WriteString(" ")
		out.WriteString(attr.print(""))
	}
	if e.SelfClosing {
		out.WriteString(" />")
		return out.String()
	}
	out.WriteString(">")
	if len(e.Children) > 0 {
		for _, child := range e.Children {
			out.WriteString(child.print(indent + "\t"))
		}
	}
	out.WriteString("</")
	out.WriteString(e.Name)
	out.WriteString(">")
	return out.String()
}

type Attribute struct {
	Name   string // Qualified name as written
	Prefix string
	Local  string
	Space  string // Resolved namespace URI
	Value  string
}

func (a *Attribute) Type() string { return "Attribute" }

// IsNamespaceDecl reports whether the attribute is an xmlns declaration
func (a *Attribute) IsNamespaceDecl() bool {
	return a.Name == "xmlns" || a.Prefix == "xmlns"
}

func (a *Attribute) print(indent string) string {
	return indent + a.Name + "=" + strconv.Quote(a.Value)
}

type Text struct {
	Value string
}

func (t *Text) fragment() {}

func (t *Text) Type() string { return "Text" }

func (t *Text) print(indent string) string {
	return t.Value
}

type Comment struct {
	Value string
}

func (c *Comment) fragment() {}

func (c *Comment) Type() string { return "Comment" }

func (c *Comment) print(indent string) string {
	return ""
}
