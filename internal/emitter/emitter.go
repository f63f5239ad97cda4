// Package emitter writes the class scaffolding around generated statements
package emitter

import (
	"fmt"
	"strings"
	"time"

	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/scope"
)

// Body is the indentation depth of constructor statements
const Body = 2

// Writer accumulates tab-indented lines
type Writer struct {
	b strings.Builder
}

func (w *Writer) Line(depth int, line string) {
	w.b.WriteString(strings.Repeat("\t", depth))
	w.b.WriteString(line)
	w.b.WriteByte('\n')
}

func (w *Writer) Linef(depth int, format string, args ...interface{}) {
	w.Line(depth, fmt.Sprintf(format, args...))
}

func (w *Writer) Blank() {
	w.b.WriteByte('\n')
}

func (w *Writer) String() string {
	return w.b.String()
}

// Class describes a generated unit
type Class struct {
	Name     string
	Base     string
	Scope    string
	Target   string
	Imports  []string
	Aliases  []*scope.Alias
	Suppress []string
}

func New() *Emitter {
	return &Emitter{Now: time.Now}
}

type Emitter struct {
	Now func() time.Time // Used for testing
}

// Header writes the using directives, suppressions, markers and the opening
// of the class. Imports and aliases keep their insertion order.
func (e *Emitter) Header(w *Writer, class *Class) {
	for _, name := range class.Imports {
		w.Linef(0, "using %s;", name)
	}
	for _, alias := range class.Aliases {
		w.Linef(0, "using %s = %s;", alias.Name, alias.Target)
	}
	if len(class.Imports)+len(class.Aliases) > 0 {
		w.Blank()
	}
	if len(class.Suppress) > 0 {
		w.Linef(0, "#pragma warning disable %s", strings.Join(class.Suppress, ", "))
		w.Blank()
	}
	if class.Scope != "" {
		w.Linef(0, "[Scope(%s)]", coerce.Quote(class.Scope))
	}
	if class.Target != "" {
		w.Linef(0, "[Target(%s)]", coerce.Quote(class.Target))
	}
	if class.Base != "" {
		w.Linef(0, "public class %s : %s", class.Name, class.Base)
	} else {
		w.Linef(0, "public class %s", class.Name)
	}
	w.Line(0, "{")
}

// Preamble opens the constructor and binds the runtime registries
func (e *Emitter) Preamble(w *Writer, class *Class) {
	w.Linef(1, "public %s()", class.Name)
	w.Line(1, "{")
	w.Line(Body, "var runtime = Runtime.Instance;")
	w.Line(Body, "var styles = runtime.Styles;")
	w.Line(Body, "var resources = runtime.Resources;")
}

func (e *Emitter) Epilogue(w *Writer) {
	w.Line(1, "}")
}

func (e *Emitter) Footer(w *Writer) {
	w.Line(0, "}")
	w.Blank()
	w.Linef(0, "// Generated by layoutc at %s", e.Now().UTC().Format(time.RFC3339))
}
