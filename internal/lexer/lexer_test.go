package lexer_test

import (
	"testing"

	"github.com/livebud/layoutc/internal/lexer"
	"github.com/livebud/layoutc/internal/token"
	"github.com/matryer/is"
	"github.com/matthewmueller/diff"
)

func equal(t *testing.T, name, input, expected string) {
	t.Helper()
	if name == "" {
		name = input
	}
	t.Run(name, func(t *testing.T) {
		t.Helper()
		actual := lexer.Print(input)
		diff.TestString(t, actual, expected)
	})
}

func TestElements(t *testing.T) {
	equal(t, "simple", "<Layout></Layout>", `<:"Layout" > </:"Layout"`)
	equal(t, "selfclosing", "<Label/>", `<:"Label" />`)
	equal(t, "nested", "<Layout><Label/></Layout>", `<:"Layout" > <:"Label" /> </:"Layout"`)
	equal(t, "text", "<Include>System</Include>", `<:"Include" > text:"System" </:"Include"`)
	equal(t, "", `<Label Name="Lbl"/>`, `<:"Label" attribute:"Name"="Lbl" />`)
	equal(t, "", `<Label Name="Lbl" Text='Hi'/>`, `<:"Label" attribute:"Name"="Lbl" attribute:"Text"="Hi" />`)
	equal(t, "", `<Label c:Tooltip="Hi"/>`, `<:"Label" attribute:"c:Tooltip"="Hi" />`)
}

func TestEntities(t *testing.T) {
	equal(t, "", `<Label Text="a &amp; b"/>`, `<:"Label" attribute:"Text"="a & b" />`)
	equal(t, "", `<Alias Name="A">x &lt; y</Alias>`, `<:"Alias" attribute:"Name"="A" > text:"x < y" </:"Alias"`)
}

func TestComment(t *testing.T) {
	equal(t, "", "<!-- Comment -->", `comment:"<!-- Comment -->"`)
	equal(t, "", "<Layout><!-- Comment --></Layout>", `<:"Layout" > comment:"<!-- Comment -->" </:"Layout"`)
}

func TestLines(t *testing.T) {
	is := is.New(t)
	tokens := lexer.Lex("<Root>\n<Layout/>\n</Root>")
	var layout token.Token
	for _, tok := range tokens {
		if tok.Type == token.LessThan && tok.Text == "Layout" {
			layout = tok
		}
	}
	is.Equal(layout.Line, 2)
	is.Equal(layout.Start, 7)
}

func TestUnescape(t *testing.T) {
	is := is.New(t)
	is.Equal(lexer.Unescape("plain"), "plain")
	is.Equal(lexer.Unescape("&lt;&gt;&amp;&quot;&apos;"), `<>&"'`)
	is.Equal(lexer.Unescape("&#65;&#x42;"), "AB")
	is.Equal(lexer.Unescape("&unknown; &"), "&unknown; &")
}
