package catalog

import (
	"io/fs"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/livebud/layoutc/internal/diagnostic"
)

type Property struct {
	Name string
	Type string
}

type Component struct {
	Name       string
	Namespace  string
	Properties []Property
}

func (c *Component) FullName() string {
	if c.Namespace == "" {
		return c.Name
	}
	return c.Namespace + "." + c.Name
}

// Provider yields component records once, while the catalog is built
type Provider interface {
	Components(sink diagnostic.Sink) ([]*Component, error)
}

type ProviderFunc func(sink diagnostic.Sink) ([]*Component, error)

func (fn ProviderFunc) Components(sink diagnostic.Sink) ([]*Component, error) {
	return fn(sink)
}

// Static provides already described components
func Static(components ...*Component) Provider {
	return ProviderFunc(func(diagnostic.Sink) ([]*Component, error) {
		return components, nil
	})
}

// Build the catalog from the providers and then from the manifests in
// pluginDir. An empty or missing pluginDir is skipped.
func Build(providers []Provider, pluginDir string, sink diagnostic.Sink) (*Catalog, error) {
	providers = append([]Provider(nil), providers...)
	if pluginDir != "" {
		if _, err := os.Stat(pluginDir); err == nil {
			providers = append(providers, Manifest(os.DirFS(pluginDir)))
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(err, "catalog: unable to read plugin dir %q", pluginDir)
		}
	}
	catalog := New()
	for _, provider := range providers {
		components, err := provider.Components(sink)
		if err != nil {
			return nil, err
		}
		for _, component := range components {
			catalog.add(component, sink)
		}
	}
	return catalog, nil
}

func New() *Catalog {
	return &Catalog{}
}

type Catalog struct {
	components []*Component
}

// add validates property types, dropping the ones that don't parse
func (c *Catalog) add(component *Component, sink diagnostic.Sink) {
	valid := &Component{
		Name:      component.Name,
		Namespace: component.Namespace,
	}
	for _, prop := range component.Properties {
		if _, err := ParseType(prop.Type); err != nil {
			sink.Report(diagnostic.Diagnostic{
				Kind:      diagnostic.InvalidPropertyType,
				Message:   "dropping " + component.FullName() + "." + prop.Name + ": " + err.Error(),
				Element:   component.FullName(),
				Attribute: prop.Name,
			})
			continue
		}
		valid.Properties = append(valid.Properties, prop)
	}
	c.components = append(c.components, valid)
}

// Components in registration order
func (c *Catalog) Components() []*Component {
	return append([]*Component(nil), c.components...)
}

// Find a component by name or by Namespace.Name. Unqualified names match the
// first registered component with that name.
func (c *Catalog) Find(name string) (*Component, bool) {
	for _, component := range c.components {
		if component.Name == name || component.FullName() == name {
			return component, true
		}
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		namespace, local := name[:i], name[i+1:]
		for _, component := range c.components {
			if component.Name == local && inNamespace(component.Namespace, namespace) {
				return component, true
			}
		}
	}
	return nil, false
}

// inNamespace matches trailing namespace segments, so Controls matches
// UI.Controls but not UI.MyControls
func inNamespace(full, partial string) bool {
	return full == partial || strings.HasSuffix(full, "."+partial)
}

// Lookup the type of a component property. The late-bound suffix is stripped
// from the returned type and reported separately.
func (c *Catalog) Lookup(component, property string) (typ string, lateBind bool, ok bool) {
	if c == nil {
		return "", false, false
	}
	found, ok := c.Find(component)
	if !ok {
		return "", false, false
	}
	for _, prop := range found.Properties {
		if prop.Name != property {
			continue
		}
		if strings.HasSuffix(prop.Type, "*") {
			return strings.TrimSuffix(prop.Type, "*"), true, true
		}
		return prop.Type, false, true
	}
	return "", false, false
}

func (c *Catalog) String() string {
	out := new(strings.Builder)
	for _, component := range c.components {
		out.WriteString(component.FullName())
		out.WriteString("\n")
		for _, prop := range component.Properties {
			out.WriteString("\t")
			out.WriteString(prop.Name)
			out.WriteString(" ")
			out.WriteString(prop.Type)
			out.WriteString("\n")
		}
	}
	return out.String()
}
