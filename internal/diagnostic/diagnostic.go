// Package diagnostic collects the non-fatal problems found while compiling.
// Reporting a diagnostic never changes control flow; the element or value at
// fault is skipped or replaced and compilation continues.
package diagnostic

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

type Kind string

const (
	// Document level
	InvalidDocument Kind = "InvalidDocument"
	DuplicateScope  Kind = "DuplicateScope"

	// Element level
	MissingAttribute  Kind = "MissingAttribute"
	InvalidAttribute  Kind = "InvalidAttribute"
	UnknownScope      Kind = "UnknownScope"
	DuplicateUnit     Kind = "DuplicateUnit"
	UnexpectedElement Kind = "UnexpectedElement"

	// Value level
	ParseFailure     Kind = "ParseFailure"
	UnrecognizedType Kind = "UnrecognizedType"

	// Catalog construction
	UnsupportedProperty Kind = "UnsupportedProperty"
	InvalidPropertyType Kind = "InvalidPropertyType"
)

type Diagnostic struct {
	Kind      Kind
	Message   string
	Path      string // Source document, if known
	Unit      string // Layout or style being emitted, if any
	Element   string
	Attribute string
}

func (d Diagnostic) String() string {
	out := new(strings.Builder)
	if d.Path != "" {
		out.WriteString(d.Path)
		out.WriteString(": ")
	}
	out.WriteString(string(d.Kind))
	out.WriteString(": ")
	out.WriteString(d.Message)
	return out.String()
}

// Sink receives diagnostics
type Sink interface {
	Report(d Diagnostic)
}

// Func adapts a function to a Sink
type Func func(d Diagnostic)

func (fn Func) Report(d Diagnostic) { fn(d) }

// Discard drops every diagnostic
var Discard Sink = Func(func(Diagnostic) {})

// Reportf is a shorthand for reporting a formatted message of a kind
func Reportf(sink Sink, kind Kind, format string, args ...interface{}) {
	sink.Report(Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// Log writes diagnostics as warnings to a zap logger
func Log(log *zap.SugaredLogger) Sink {
	return Func(func(d Diagnostic) {
		fields := []interface{}{"kind", string(d.Kind)}
		if d.Path != "" {
			fields = append(fields, "path", d.Path)
		}
		if d.Unit != "" {
			fields = append(fields, "unit", d.Unit)
		}
		if d.Element != "" {
			fields = append(fields, "element", d.Element)
		}
		if d.Attribute != "" {
			fields = append(fields, "attribute", d.Attribute)
		}
		log.Warnw(d.Message, fields...)
	})
}

// Tee forwards to every sink in order
func Tee(sinks ...Sink) Sink {
	return Func(func(d Diagnostic) {
		for _, sink := range sinks {
			sink.Report(d)
		}
	})
}

// Recorder keeps diagnostics in memory
type Recorder struct {
	diagnostics []Diagnostic
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *Recorder) All() []Diagnostic {
	return append([]Diagnostic(nil), r.diagnostics...)
}

func (r *Recorder) Len() int {
	return len(r.diagnostics)
}

// Count the diagnostics of a kind
func (r *Recorder) Count(kind Kind) (n int) {
	for _, d := range r.diagnostics {
		if d.Kind == kind {
			n++
		}
	}
	return n
}

// Scoped fills in the location fields the reporter left empty
func Scoped(sink Sink, path, unit string) Sink {
	return Func(func(d Diagnostic) {
		if d.Path == "" {
			d.Path = path
		}
		if d.Unit == "" {
			d.Unit = unit
		}
		sink.Report(d)
	})
}
