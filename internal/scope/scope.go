package scope

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// ErrDuplicate is returned when a local id is registered twice
var ErrDuplicate = errors.New("scope: duplicate local id")

func New(path string) *Context {
	return &Context{Path: path}
}

// Context is the scope state of a single document. It's filled while lexing
// and only read afterwards.
type Context struct {
	Path         string
	LocalID      string
	IsStylesheet bool

	imports      []string
	sheets       []string
	aliases      []*Alias
	globalStyles []*GlobalStyle
}

type Alias struct {
	Name   string
	Target string
}

// GlobalStyle is a style that applies automatically wherever its scope is
// visible. An empty Target applies to any type.
type GlobalStyle struct {
	Name   string
	Target string
}

// Import adds a using directive, returning false if it was already present
func (c *Context) Import(name string) bool {
	return addUnique(&c.imports, name)
}

// UseScope adds an imported sheet, returning false if it was already present
func (c *Context) UseScope(id string) bool {
	return addUnique(&c.sheets, id)
}

// Alias sets alias -> full name. Redefining an alias replaces its target but
// keeps the original position.
func (c *Context) Alias(name, target string) {
	for _, alias := range c.aliases {
		if alias.Name == name {
			alias.Target = target
			return
		}
	}
	c.aliases = append(c.aliases, &Alias{name, target})
}

func (c *Context) AddGlobalStyle(name, target string) {
	c.globalStyles = append(c.globalStyles, &GlobalStyle{name, target})
}

func (c *Context) Imports() []string {
	return append([]string(nil), c.imports...)
}

func (c *Context) ImportedSheets() []string {
	return append([]string(nil), c.sheets...)
}

func (c *Context) Aliases() []*Alias {
	return append([]*Alias(nil), c.aliases...)
}

func (c *Context) GlobalStyles() []*GlobalStyle {
	return append([]*GlobalStyle(nil), c.globalStyles...)
}

// Resolve returns the full name for an alias, or the name itself
func (c *Context) Resolve(name string) string {
	for _, alias := range c.aliases {
		if alias.Name == name {
			return alias.Target
		}
	}
	return name
}

// Chain is the scope chain passed to the runtime style registry: the local id
// followed by the imported sheets, separated by semicolons.
func (c *Context) Chain() string {
	return strings.Join(append([]string{c.LocalID}, c.sheets...), ";")
}

func (c *Context) String() string {
	str := new(strings.Builder)
	str.WriteString("scope ")
	str.WriteString(strconv.Quote(c.LocalID))
	if c.IsStylesheet {
		str.WriteString(" stylesheet")
	}
	str.WriteString("\n")
	for _, name := range c.imports {
		str.WriteString("import ")
		str.WriteString(strconv.Quote(name))
		str.WriteString("\n")
	}
	for _, id := range c.sheets {
		str.WriteString("use ")
		str.WriteString(strconv.Quote(id))
		str.WriteString("\n")
	}
	for _, alias := range c.aliases {
		str.WriteString("alias ")
		str.WriteString(strconv.Quote(alias.Name))
		str.WriteString(" = ")
		str.WriteString(strconv.Quote(alias.Target))
		str.WriteString("\n")
	}
	for _, style := range c.globalStyles {
		str.WriteString("global ")
		str.WriteString(strconv.Quote(style.Name))
		if style.Target != "" {
			str.WriteString(" target=")
			str.WriteString(strconv.Quote(style.Target))
		}
		str.WriteString("\n")
	}
	return str.String()
}

// Split a newline or semicolon delimited list, trimming each entry and
// dropping empty ones
func Split(value string) (entries []string) {
	fields := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	})
	for _, field := range fields {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		entries = append(entries, field)
	}
	return entries
}

func addUnique(list *[]string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	key := squash(value)
	for _, existing := range *list {
		if squash(existing) == key {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

// squash removes all whitespace so comparisons ignore it
func squash(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func NewTable() *Table {
	return &Table{byID: map[string]*Context{}}
}

// Table holds the registered contexts by local id in registration order
type Table struct {
	byID     map[string]*Context
	contexts []*Context
}

func (t *Table) Register(c *Context) error {
	if _, ok := t.byID[c.LocalID]; ok {
		return errors.Wrapf(ErrDuplicate, "%q", c.LocalID)
	}
	t.byID[c.LocalID] = c
	t.contexts = append(t.contexts, c)
	return nil
}

func (t *Table) Has(id string) bool {
	_, ok := t.byID[id]
	return ok
}

func (t *Table) Lookup(id string) (*Context, bool) {
	c, ok := t.byID[id]
	return c, ok
}

func (t *Table) Contexts() []*Context {
	return append([]*Context(nil), t.contexts...)
}
