// Package layoutc compiles a project of layout markup into source units.
package layoutc

import (
	"context"
	"io/fs"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/livebud/layoutc/internal/builder"
	"github.com/livebud/layoutc/internal/catalog"
	"github.com/livebud/layoutc/internal/config"
	"github.com/livebud/layoutc/internal/diagnostic"
	"github.com/livebud/layoutc/internal/emitter"
	"github.com/livebud/layoutc/internal/handler"
	"github.com/livebud/layoutc/internal/logger"
	"github.com/livebud/layoutc/internal/resolver"
	"github.com/livebud/layoutc/internal/scope"
	"github.com/matthewmueller/virt"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Project to compile
type Project struct {
	FS        fs.FS
	Config    *config.Config
	Providers []catalog.Provider
	Log       *zap.SugaredLogger
	Sink      diagnostic.Sink
	Emitter   *emitter.Emitter // Used for testing
}

// Catalog builds the component catalog from the providers and the manifests
// in the plugin directory of the project
func Catalog(p *Project) (*catalog.Catalog, error) {
	sink := p.sink()
	providers := append([]catalog.Provider(nil), p.Providers...)
	if p.Config.Catalog.PluginDir != "" {
		dir := path.Clean(p.Config.Catalog.PluginDir)
		if info, err := fs.Stat(p.FS, dir); err == nil && info.IsDir() {
			sub, err := fs.Sub(p.FS, dir)
			if err != nil {
				return nil, errors.Wrapf(err, "layoutc: unable to open plugin dir %q", dir)
			}
			providers = append(providers, catalog.Manifest(sub))
		}
	}
	return catalog.Build(providers, "", sink)
}

// Compile every document of the project, returning the generated units by
// name. Documents are read concurrently and lexed in path order.
func Compile(ctx context.Context, p *Project) (map[string]string, error) {
	log := p.log()
	cat, err := Catalog(p)
	if err != nil {
		return nil, err
	}
	res := resolver.New(p.FS)
	paths, err := res.Documents(p.Config.Source.Dir, p.Config.Source.Extensions, p.Config.Output.Dir, p.Config.Catalog.PluginDir)
	if err != nil {
		return nil, err
	}
	log.Debugw("found documents", "count", len(paths))

	files := make([]*resolver.File, len(paths))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for i, docPath := range paths {
		i, docPath := i, docPath
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			file, err := res.Read(docPath)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	options := []builder.Option{
		builder.WithLogger(log),
		builder.WithReservedNamespace(p.Config.Build.ReservedNamespace),
		builder.WithBase(p.Config.Build.LayoutBase, p.Config.Build.StyleBase),
		builder.WithSuppress(p.Config.Build.Suppress...),
	}
	if p.Sink != nil {
		options = append(options, builder.WithSink(p.Sink))
	}
	if p.Emitter != nil {
		options = append(options, builder.WithEmitter(p.Emitter))
	}
	b := builder.New(cat, handler.Default(), options...)
	var rejected int
	for _, file := range files {
		if !b.LexContentFromXml(scope.New(file.Path), string(file.Code)) {
			rejected++
		}
	}
	exports := b.Build()
	log.Infow("compiled", "documents", len(files), "rejected", rejected, "units", len(exports))
	return exports, nil
}

// Write the units to dir, one file per unit named after it. Other files in
// dir are left alone.
func Write(dir, extension string, units map[string]string) error {
	fsys := virt.OS(dir)
	if err := fsys.MkdirAll(".", 0755); err != nil {
		return errors.Wrapf(err, "layoutc: unable to create %q", dir)
	}
	for name, text := range units {
		if err := fsys.WriteFile(name+extension, []byte(text), 0644); err != nil {
			return errors.Wrapf(err, "layoutc: unable to write unit %q to %q", name, dir)
		}
	}
	return nil
}

func (p *Project) log() *zap.SugaredLogger {
	if p.Log == nil {
		return logger.Nop()
	}
	return p.Log
}

// sink for catalog diagnostics, which are logged like the builder's
func (p *Project) sink() diagnostic.Sink {
	sinks := []diagnostic.Sink{diagnostic.Log(p.log())}
	if p.Sink != nil {
		sinks = append(sinks, p.Sink)
	}
	return diagnostic.Tee(sinks...)
}
