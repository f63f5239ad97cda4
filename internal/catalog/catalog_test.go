package catalog_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/lithammer/dedent"
	"github.com/livebud/layoutc/internal/catalog"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/matryer/is"
	"github.com/matthewmueller/diff"
	"github.com/matthewmueller/virt"
)

type Orientation int

func (Orientation) EnumName() string { return "UI.Orientation" }

type Control struct {
	Visible bool
}

type Label struct {
	Control
	Text        string
	FontSize    int
	Opacity     float32
	Scale       float64
	Alpha       uint8
	Tab         int16
	Port        uint16
	Ticks       int64
	Size        uint64
	Count       uint32
	Mnemonic    rune `layout:"char"`
	Price       float64 `layout:"decimal"`
	Orientation Orientation
	Target      struct{} `hint:"Button"`
	Owner       struct{} `hint:"Panel,early"`
	Items       []string
	private     string
}

type Dock int

func (*Dock) EnumName() string { return "UI.Dock" }

type Panel struct {
	Dock   Dock
	Mode   catalog.Enum
	Parent *Orientation
	Owner  *Dock
}

type Button struct {
	Text    string
	Pressed bool
}

func equalCatalog(t *testing.T, c *catalog.Catalog, expected string) {
	t.Helper()
	actual := strings.TrimSpace(c.String())
	expected = strings.TrimSpace(dedent.Dedent(expected))
	diff.TestString(t, actual, expected)
}

func TestReflect(t *testing.T) {
	is := is.New(t)
	rec := new(diagnostic.Recorder)
	c, err := catalog.Build([]catalog.Provider{
		catalog.Reflect("UI", Label{}, &Button{}, 42),
	}, "", rec)
	is.NoErr(err)
	equalCatalog(t, c, `
		UI.Label
			Text string
			FontSize int
			Opacity float
			Scale double
			Alpha byte
			Tab short
			Port ushort
			Ticks long
			Size ulong
			Count uint
			Mnemonic char
			Price decimal
			Orientation enum<UI.Orientation>
			Target component<Button>*
			Owner component<Panel>
		UI.Button
			Text string
			Pressed bool
	`)
	// Items is unsupported and 42 is not a struct
	is.Equal(rec.Count(diagnostic.UnsupportedProperty), 2)
}

func TestLookup(t *testing.T) {
	is := is.New(t)
	c, err := catalog.Build([]catalog.Provider{
		catalog.Static(
			&catalog.Component{Name: "Button", Namespace: "UI", Properties: []catalog.Property{
				{Name: "Text", Type: "string"},
				{Name: "Target", Type: "component<Label>*"},
				{Name: "Text", Type: "int"},
			}},
			&catalog.Component{Name: "Button", Namespace: "Fancy", Properties: []catalog.Property{
				{Name: "Text", Type: "double"},
			}},
		),
	}, "", diagnostic.Discard)
	is.NoErr(err)

	typ, late, ok := c.Lookup("Button", "Text")
	is.True(ok)
	is.Equal(typ, "string")
	is.True(!late)

	typ, late, ok = c.Lookup("Button", "Target")
	is.True(ok)
	is.Equal(typ, "component<Label>")
	is.True(late)

	typ, _, ok = c.Lookup("Fancy.Button", "Text")
	is.True(ok)
	is.Equal(typ, "double")

	_, _, ok = c.Lookup("Button", "Missing")
	is.True(!ok)
	_, _, ok = c.Lookup("Missing", "Text")
	is.True(!ok)

	var empty *catalog.Catalog
	_, _, ok = empty.Lookup("Button", "Text")
	is.True(!ok)
}

func TestFindNamespaceSegments(t *testing.T) {
	is := is.New(t)
	c, err := catalog.Build([]catalog.Provider{
		catalog.Static(&catalog.Component{Name: "Button", Namespace: "UI.MyControls"}),
	}, "", diagnostic.Discard)
	is.NoErr(err)
	_, ok := c.Find("Controls.Button")
	is.True(!ok)
	found, ok := c.Find("MyControls.Button")
	is.True(ok)
	is.Equal(found.FullName(), "UI.MyControls.Button")
	_, ok = c.Find("UI.MyControls.Button")
	is.True(ok)
}

func TestBuildKeepsProviders(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(virt.Sync(virt.Map{"extra.yaml": "components:\n  - name: Knob\n"}, dir))
	backing := make([]catalog.Provider, 1, 2)
	backing[0] = catalog.Static(&catalog.Component{Name: "Label"})
	_, err := catalog.Build(backing, dir, diagnostic.Discard)
	is.NoErr(err)
	is.Equal(backing[:2][1], nil)
}

func TestInvalidTypesDropped(t *testing.T) {
	is := is.New(t)
	rec := new(diagnostic.Recorder)
	c, err := catalog.Build([]catalog.Provider{
		catalog.Static(&catalog.Component{Name: "Panel", Properties: []catalog.Property{
			{Name: "Good", Type: "enum<UI.Dock>"},
			{Name: "Bad", Type: "component<>"},
			{Name: "Worse", Type: "list<int>"},
		}}),
	}, "", rec)
	is.NoErr(err)
	equalCatalog(t, c, `
		Panel
			Good enum<UI.Dock>
	`)
	is.Equal(rec.Count(diagnostic.InvalidPropertyType), 2)
}

func TestReflectEnums(t *testing.T) {
	is := is.New(t)
	rec := new(diagnostic.Recorder)
	c, err := catalog.Build([]catalog.Provider{catalog.Reflect("UI", Panel{})}, "", rec)
	is.NoErr(err)
	equalCatalog(t, c, `
		UI.Panel
			Dock enum<UI.Dock>
	`)
	is.Equal(rec.Count(diagnostic.UnsupportedProperty), 3)
}

func TestManifest(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	fsys := virt.Map{
		"controls.yaml": `
namespace: UI.Controls
components:
  - name: Slider
    properties:
      - name: Value
        type: double
      - name: Orientation
        type: enum<UI.Orientation>
  - name: Knob
    namespace: UI.Extra
    properties:
      - name: Bound
        type: component<Slider>*
`,
		"notes.txt": `ignored`,
	}
	is.NoErr(virt.Sync(fsys, dir))
	c, err := catalog.Build([]catalog.Provider{
		catalog.Static(&catalog.Component{Name: "Label", Properties: []catalog.Property{{Name: "Text", Type: "string"}}}),
	}, dir, diagnostic.Discard)
	is.NoErr(err)
	equalCatalog(t, c, `
		Label
			Text string
		UI.Controls.Slider
			Value double
			Orientation enum<UI.Orientation>
		UI.Extra.Knob
			Bound component<Slider>*
	`)
}

func TestManifestMissingDir(t *testing.T) {
	is := is.New(t)
	c, err := catalog.Build(nil, filepath.Join(t.TempDir(), "plugins"), diagnostic.Discard)
	is.NoErr(err)
	is.Equal(len(c.Components()), 0)
}

func TestManifestInvalid(t *testing.T) {
	is := is.New(t)
	dir := t.TempDir()
	is.NoErr(virt.Sync(virt.Map{"bad.yml": "components: [\n"}, dir))
	_, err := catalog.Build(nil, dir, diagnostic.Discard)
	is.True(err != nil)
	is.True(strings.Contains(err.Error(), `invalid manifest "bad.yml"`))
}

func TestParseType(t *testing.T) {
	is := is.New(t)
	typ, err := catalog.ParseType("component<Button>*")
	is.NoErr(err)
	is.Equal(typ.Kind, catalog.KindComponent)
	is.Equal(typ.Name, "Button")
	is.True(typ.LateBind)
	typ, err = catalog.ParseType("enum<UI.Dock>")
	is.NoErr(err)
	is.Equal(typ.Kind, catalog.KindEnum)
	is.Equal(typ.String(), "enum<UI.Dock>")
	for _, p := range catalog.Primitives {
		typ, err := catalog.ParseType(p)
		is.NoErr(err)
		is.Equal(typ.String(), p)
	}
	_, err = catalog.ParseType("Button")
	is.True(err != nil)
}
