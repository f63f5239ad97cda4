package resolver_test

import (
	"io/fs"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/livebud/layoutc/internal/resolver"
	"github.com/matryer/is"
	"github.com/matthewmueller/virt"
)

func project() virt.Map {
	return virt.Map{
		"views/home.xml":          `<Document/>`,
		"views/about.xml":         `<Document/>`,
		"views/notes.txt":         `ignored`,
		"views/.cache/old.xml":    `<Document/>`,
		"theme/colors.layout":     `<Sheet/>`,
		"generated/Home.xml":      `<Document/>`,
		"generated/deep/more.xml": `<Document/>`,
	}
}

func TestRead(t *testing.T) {
	is := is.New(t)
	res := resolver.New(project())
	file, err := res.Read("./views/home.xml")
	is.NoErr(err)
	is.Equal(file.Path, "views/home.xml")
	is.Equal(string(file.Code), `<Document/>`)
	file, err = res.Read("views/../theme/colors.layout")
	is.NoErr(err)
	is.Equal(file.Path, "theme/colors.layout")
	is.Equal(string(file.Code), `<Sheet/>`)
}

func TestReadMissing(t *testing.T) {
	is := is.New(t)
	res := resolver.New(project())
	_, err := res.Read("views/missing.xml")
	is.True(errors.Is(err, fs.ErrNotExist))
}

func TestDocuments(t *testing.T) {
	is := is.New(t)
	res := resolver.New(project())
	paths, err := res.Documents(".", []string{".xml", ".layout"}, "generated")
	is.NoErr(err)
	is.Equal(paths, []string{
		"theme/colors.layout",
		"views/about.xml",
		"views/home.xml",
	})
	paths, err = res.Documents("views", []string{".xml"})
	is.NoErr(err)
	is.Equal(paths, []string{"views/about.xml", "views/home.xml"})
}
