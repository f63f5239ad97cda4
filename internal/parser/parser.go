package parser

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/livebud/layoutc/internal/ast"
	"github.com/livebud/layoutc/internal/lexer"
	"github.com/livebud/layoutc/internal/token"
	"github.com/tdewolff/parse/v2"
)

// XMLNamespace is bound to the xml prefix without a declaration
const XMLNamespace = "http://www.w3.org/XML/1998/namespace"

func Parse(path, input string) (*ast.Document, error) {
	l := lexer.New(input)
	p := New(path, input, l)
	return p.Parse()
}

func Print(path, input string) string {
	doc, err := Parse(path, input)
	if err != nil {
		return err.Error()
	}
	return doc.String()
}

func New(path, input string, l *lexer.Lexer) *Parser {
	return &Parser{path, input, l}
}

type Parser struct {
	path  string
	input string
	l     *lexer.Lexer
}

func (p *Parser) Parse() (*ast.Document, error) {
	return p.parseDocument()
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(errors.Newf(format, args...), "parser: %s", p.path)
}

func (p *Parser) unexpected(prefix string) error {
	tok := p.l.Latest()
	if tok.Type == token.Error {
		return p.errorf("%s %s (%d)", prefix, tok.Text, tok.Line)
	}
	line, col, _ := parse.Position(strings.NewReader(p.input), tok.Start)
	return p.errorf("%s unexpected token %s (%d:%d)", prefix, tok.String(), line, col)
}

type namespaces map[string]string

func (ns namespaces) with(attrs []*ast.Attribute) namespaces {
	var declared bool
	for _, attr := range attrs {
		if attr.IsNamespaceDecl() {
			declared = true
			break
		}
	}
	if !declared {
		return ns
	}
	next := make(namespaces, len(ns)+1)
	for prefix, uri := range ns {
		next[prefix] = uri
	}
	for _, attr := range attrs {
		switch {
		case attr.Name == "xmlns":
			next[""] = attr.Value
		case attr.Prefix == "xmlns":
			next[attr.Local] = attr.Value
		}
	}
	return next
}

func (p *Parser) parseDocument() (*ast.Document, error) {
	doc := &ast.Document{
		Path: p.path,
	}
	ns := namespaces{"xml": XMLNamespace}
	for !p.Accept(token.EOF) {
		switch {
		case p.Accept(token.Instruction):
			if err := p.skipInstruction(); err != nil {
				return nil, err
			}
		case p.Accept(token.Doctype):
			continue
		case p.Accept(token.Comment):
			doc.Children = append(doc.Children, &ast.Comment{Value: p.Text()})
		case p.Accept(token.Text):
			if strings.TrimSpace(p.Text()) != "" {
				return nil, p.errorf("unexpected text outside of the root element")
			}
		case p.Accept(token.LessThan):
			if doc.Root() != nil {
				return nil, p.errorf("document has more than one root element")
			}
			element, err := p.parseElement(ns)
			if err != nil {
				return nil, err
			}
			doc.Children = append(doc.Children, element)
		default:
			return nil, p.unexpected("document")
		}
	}
	return doc, nil
}

func (p *Parser) skipInstruction() error {
	for !p.Accept(token.InstructionClose) {
		if !p.Accept(token.Attribute) {
			return p.unexpected("instruction")
		}
	}
	return nil
}

func (p *Parser) parseFragment(ns namespaces) (ast.Fragment, error) {
	switch {
	case p.Accept(token.Text), p.Accept(token.CData):
		return &ast.Text{Value: p.Text()}, nil
	case p.Accept(token.Comment):
		return &ast.Comment{Value: p.Text()}, nil
	case p.Accept(token.LessThan):
		return p.parseElement(ns)
	default:
		return nil, p.unexpected("fragment")
	}
}

func (p *Parser) parseElement(parent namespaces) (*ast.Element, error) {
	node := &ast.Element{
		Name: p.Text(),
		Line: p.l.Token.Line,
	}
	node.Prefix, node.Local = splitName(node.Name)

	// Handle attributes
	for p.Accept(token.Attribute) {
		attr := &ast.Attribute{
			Name:  p.Text(),
			Value: p.l.Token.Value,
		}
		attr.Prefix, attr.Local = splitName(attr.Name)
		node.Attributes = append(node.Attributes, attr)
	}

	// Resolve namespaces now that the declarations are known
	ns := parent.with(node.Attributes)
	space, ok := ns[node.Prefix]
	if !ok && node.Prefix != "" {
		return nil, p.errorf("undeclared namespace prefix %q on <%s> (%d)", node.Prefix, node.Name, node.Line)
	}
	node.Space = space
	for _, attr := range node.Attributes {
		if attr.Prefix == "" || attr.IsNamespaceDecl() {
			continue
		}
		space, ok := ns[attr.Prefix]
		if !ok {
			return nil, p.errorf("undeclared namespace prefix %q on attribute %s (%d)", attr.Prefix, attr.Name, node.Line)
		}
		attr.Space = space
	}

	if p.Accept(token.SlashGreaterThan) {
		node.SelfClosing = true
		return node, nil
	}
	if err := p.Expect(token.GreaterThan); err != nil {
		return nil, err
	}

	for !p.Accept(token.LessThanSlash) {
		if p.Check(token.EOF) {
			return nil, p.errorf("unclosed element <%s> (%d)", node.Name, node.Line)
		}
		child, err := p.parseFragment(ns)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}

	// Closing tag
	if p.Text() != node.Name {
		return nil, p.errorf("expected closing tag %s, got %s", node.Name, p.Text())
	}
	return node, nil
}

func splitName(name string) (prefix, local string) {
	if i := strings.IndexByte(name, ':'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return "", name
}

// Check the next token without consuming it
func (p *Parser) Check(t token.Type) bool {
	return p.l.Peak(1).Type == t
}

// Accept the next token if it matches
func (p *Parser) Accept(t token.Type) bool {
	if !p.Check(t) {
		return false
	}
	p.l.Next()
	return true
}

func (p *Parser) Expect(t token.Type) error {
	if !p.Accept(t) {
		p.l.Peak(1)
		return p.unexpected("expected " + string(t) + " but got")
	}
	return nil
}

func (p *Parser) Text() string {
	return p.l.Token.Text
}
