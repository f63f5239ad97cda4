package parser_test

import (
	"strings"
	"testing"

	"github.com/livebud/layoutc/internal/parser"
	"github.com/matryer/is"
	"github.com/matthewmueller/diff"
)

func equal(t *testing.T, path, input, expected string) {
	t.Helper()
	if path == "" {
		path = input
	}
	t.Run(path, func(t *testing.T) {
		t.Helper()
		actual := parser.Print(path, input)
		actual = strings.ReplaceAll(actual, "\t", "")
		actual = strings.ReplaceAll(actual, "\n", "")
		diff.TestString(t, actual, expected)
	})
}

func TestElements(t *testing.T) {
	equal(t, "", `<Root/>`, `<Root />`)
	equal(t, "", `<Root><Layout Name="L1"/></Root>`, `<Root><Layout Name="L1" /></Root>`)
	equal(t, "", `<?xml version="1.0"?><Root/>`, `<Root />`)
	equal(t, "", `<Root><!-- hidden --><Include>System</Include></Root>`, `<Root><Include>System</Include></Root>`)
	equal(t, "", `<Root><Alias Name="A"><![CDATA[x < y]]></Alias></Root>`, `<Root><Alias Name="A">x < y</Alias></Root>`)
}

func TestErrors(t *testing.T) {
	equal(t, "mismatch", `<Root></Layout>`, `parser: mismatch: expected closing tag Root, got Layout`)
	equal(t, "two roots", `<Root/><Other/>`, `parser: two roots: document has more than one root element`)
	equal(t, "stray text", `hello`, `parser: stray text: unexpected text outside of the root element`)
	equal(t, "unclosed", `<Root><Layout>`, `parser: unclosed: unclosed element <Layout> (1)`)
	equal(t, "prefix", `<Root><Label c:Tip="x"/></Root>`, `parser: prefix: undeclared namespace prefix "c" on attribute c:Tip (1)`)
}

func TestNamespaces(t *testing.T) {
	is := is.New(t)
	doc, err := parser.Parse("ns.xml", `<Root xmlns="urn:ui" xmlns:c="urn:custom"><Label c:Tip="x" Text="y"/></Root>`)
	is.NoErr(err)
	root := doc.Root()
	is.True(root != nil)
	is.Equal(root.Space, "urn:ui")
	label := root.Elements()[0]
	is.Equal(label.Local, "Label")
	is.Equal(label.Space, "urn:ui")
	is.Equal(len(label.Attributes), 2)
	is.Equal(label.Attributes[0].Prefix, "c")
	is.Equal(label.Attributes[0].Local, "Tip")
	is.Equal(label.Attributes[0].Space, "urn:custom")
	is.Equal(label.Attributes[1].Space, "")
	text, ok := label.Attr("Text")
	is.True(ok)
	is.Equal(text, "y")
	_, ok = label.Attr("Tip")
	is.True(!ok)
}

func TestText(t *testing.T) {
	is := is.New(t)
	doc, err := parser.Parse("text.xml", "<Root><Include>\n  System;\n  System.IO\n</Include></Root>")
	is.NoErr(err)
	include := doc.Root().Elements()[0]
	is.Equal(include.Text(), "\n  System;\n  System.IO\n")
}
