package catalog

import (
	"io/fs"
	"path"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/livebud/layoutc/internal/diagnostic"
	"gopkg.in/yaml.v3"
)

// manifest is the plugin file format:
//
//	namespace: UI.Controls
//	components:
//	  - name: Button
//	    properties:
//	      - name: Text
//	        type: string
type manifest struct {
	Namespace  string `yaml:"namespace"`
	Components []struct {
		Name       string `yaml:"name"`
		Namespace  string `yaml:"namespace"`
		Properties []struct {
			Name string `yaml:"name"`
			Type string `yaml:"type"`
		} `yaml:"properties"`
	} `yaml:"components"`
}

// Manifest loads every .yaml or .yml file at the root of fsys in name order
func Manifest(fsys fs.FS) Provider {
	return ProviderFunc(func(sink diagnostic.Sink) (components []*Component, err error) {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return nil, errors.Wrap(err, "catalog: unable to list manifests")
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Name() < entries[j].Name()
		})
		for _, entry := range entries {
			ext := path.Ext(entry.Name())
			if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
				continue
			}
			data, err := fs.ReadFile(fsys, entry.Name())
			if err != nil {
				return nil, errors.Wrapf(err, "catalog: unable to read manifest %q", entry.Name())
			}
			var m manifest
			if err := yaml.Unmarshal(data, &m); err != nil {
				return nil, errors.WithHint(
					errors.Wrapf(err, "catalog: invalid manifest %q", entry.Name()),
					"manifests need a namespace and a list of components with name and properties",
				)
			}
			for _, c := range m.Components {
				component := &Component{
					Name:      c.Name,
					Namespace: m.Namespace,
				}
				if c.Namespace != "" {
					component.Namespace = c.Namespace
				}
				if component.Name == "" {
					diagnostic.Reportf(sink, diagnostic.InvalidDocument, "catalog: component without a name in %q", entry.Name())
					continue
				}
				for _, p := range c.Properties {
					component.Properties = append(component.Properties, Property{Name: p.Name, Type: p.Type})
				}
				components = append(components, component)
			}
		}
		return components, nil
	})
}
