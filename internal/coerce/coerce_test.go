package coerce_test

import (
	"testing"

	"github.com/livebud/layoutc/internal/coerce"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/matryer/is"
)

type test struct {
	value    string
	override string
	family   string
	expect   string
	kind     diagnostic.Kind
}

func run(t *testing.T, tests []test) {
	t.Helper()
	for _, test := range tests {
		test := test
		t.Run(test.value+"|"+test.override, func(t *testing.T) {
			is := is.New(t)
			rec := new(diagnostic.Recorder)
			engine := coerce.New(rec)
			actual := engine.ParseHintedString(test.value, "root", test.override, test.family)
			is.Equal(actual, test.expect)
			if test.kind == "" {
				is.Equal(rec.Len(), 0)
				return
			}
			is.Equal(rec.Len(), 1)
			is.Equal(rec.All()[0].Kind, test.kind)
		})
	}
}

func TestHinted(t *testing.T) {
	run(t, []test{
		{value: "int: 42", expect: "42"},
		{value: "int:42", expect: "42"},
		{value: "INT: 42", expect: "42"},
		{value: "uint: 42", expect: "42u"},
		{value: "long: -7", expect: "-7L"},
		{value: "ulong: 7", expect: "7UL"},
		{value: "byte: 255", expect: "(byte)255"},
		{value: "byte: 256", expect: coerce.Null, kind: diagnostic.ParseFailure},
		{value: "short: -3", expect: "(short)-3"},
		{value: "ushort: 3", expect: "(ushort)3"},
		{value: "float: 1.5", expect: "1.5f"},
		{value: "double: 2.25", expect: "2.25d"},
		{value: "decimal: 9.99", expect: "9.99m"},
		{value: "bool: True", expect: "true"},
		{value: "bool: maybe", expect: coerce.Null, kind: diagnostic.ParseFailure},
		{value: "char: x", expect: "'x'"},
		{value: "char: xy", expect: coerce.Null, kind: diagnostic.ParseFailure},
		{value: "string: say \"hi\"", expect: `"say \"hi\""`},
		{value: `string: C:\tmp`, expect: `"C:\\tmp"`},
		{value: "literal: Math.PI * 2", expect: "Math.PI * 2"},
		{value: "color: #ff0000", expect: `new Color("#ff0000")`},
		{value: "size: 10, 20", expect: "new Size(10, 20)"},
		{value: "point: 1, 2", expect: "new Point(1, 2)"},
		{value: "vector: 0.5f, 1f", expect: "new Vector2(0.5f, 1f)"},
		{value: "rect: 0, 0, 4, 4", expect: "new Rectangle(0, 0, 4, 4)"},
		{value: "thickness: 2", expect: "new Thickness(2)"},
		{value: "component: Submit.Label", expect: `root.GetChild("Submit").GetChild("Label")`},
		{value: "component<Button>: Submit.Label", expect: `(Button)root.GetChild("Submit").GetChild("Label")`},
		{value: "enum<UI.Dock>: Fill", expect: "UI.Dock.Fill"},
		{value: "enum: Fill", family: "Dock", expect: "Dock.Fill"},
		{value: "enum: Fill", expect: coerce.Null, kind: diagnostic.ParseFailure},
		{value: "matrix: 1 0 0 1", expect: coerce.Null, kind: diagnostic.UnrecognizedType},
		{value: "plain text", expect: "plain text"},
	})
}

func TestOverride(t *testing.T) {
	run(t, []test{
		{value: "bad", override: "int", expect: coerce.Null, kind: diagnostic.ParseFailure},
		{value: "42", override: "int", expect: "42"},
		{value: "Hi", override: "string", expect: `"Hi"`},
		{value: "#000", override: "color", expect: `new Color("#000")`},
		{value: "Horizontal", override: "enum<UI.Orientation>", expect: "UI.Orientation.Horizontal"},
		{value: "Ok", override: "component<Button>", expect: `(Button)root.GetChild("Ok")`},
		// the override consumes the whole value, hint included
		{value: "int: 42", override: "string", expect: `"int: 42"`},
	})
}

func TestRecommendedType(t *testing.T) {
	is := is.New(t)
	table := map[string]string{
		"ForeColor":      "color",
		"BackColor":      "color",
		"BorderColor":    "color",
		"HighlightColor": "color",
		"ActivatedColor": "color",
		"FontName":       "string",
		"FontStyle":      "string",
		"Text":           "string",
		"FileName":       "string",
		"Source":         "string",
		"ImageSource":    "string",
		"FontSize":       "int",
		"X":              "int",
		"Y":              "int",
		"PictureMode":    "enum",
		"Orientation":    "enum",
	}
	for name, typ := range table {
		is.Equal(coerce.RecommendedType(name), typ)
	}
	is.Equal(coerce.RecommendedType("Width"), "")
	is.Equal(coerce.RecommendedType("text"), "")
}

func TestCoerce(t *testing.T) {
	is := is.New(t)
	rec := new(diagnostic.Recorder)
	engine := coerce.New(rec)
	// explicit hint wins over catalog and recommended types
	is.Equal(engine.Coerce("Text", "int: 5", "this", "double"), "5")
	// catalog type wins over the recommended type
	is.Equal(engine.Coerce("Text", "5", "this", "double"), "5d")
	// recommended type
	is.Equal(engine.Coerce("ForeColor", "#000", "this", ""), `new Color("#000")`)
	is.Equal(engine.Coerce("Text", "Hi", "this", ""), `"Hi"`)
	is.Equal(engine.Coerce("FontSize", "12", "this", ""), "12")
	is.Equal(engine.Coerce("Orientation", "Vertical", "this", ""), "Orientation.Vertical")
	// unknown hint prefixes are part of the value
	is.Equal(engine.Coerce("Source", "http://example.com/a.png", "this", ""), `"http://example.com/a.png"`)
	is.Equal(engine.Coerce("Text", "Note: read me", "this", ""), `"Note: read me"`)
	is.Equal(rec.Len(), 0)
}

// Without a hint, a catalog type or a recommended type the raw value is
// emitted unchanged, even when it isn't a valid expression.
func TestCoerceUntyped(t *testing.T) {
	is := is.New(t)
	rec := new(diagnostic.Recorder)
	engine := coerce.New(rec)
	is.Equal(engine.Coerce("Width", "120", "this", ""), "120")
	is.Equal(engine.Coerce("Caption", "Hello world", "this", ""), "Hello world")
	is.Equal(rec.Len(), 0)
}

func TestHasHint(t *testing.T) {
	is := is.New(t)
	is.True(coerce.HasHint("int: 1"))
	is.True(coerce.HasHint("Color: red"))
	is.True(coerce.HasHint("component<Button>: Ok"))
	is.True(coerce.HasHint("enum<UI.Dock>: Fill"))
	is.True(!coerce.HasHint("http://example.com"))
	is.True(!coerce.HasHint("plain"))
	is.True(!coerce.HasHint("int:"))
}

func TestChild(t *testing.T) {
	is := is.New(t)
	is.Equal(coerce.Child("this", "", "A"), `this.GetChild("A")`)
	is.Equal(coerce.Child("this", "Panel", "A. B"), `(Panel)this.GetChild("A").GetChild("B")`)
	is.Equal(coerce.Child("this", "", ""), "this")
}
