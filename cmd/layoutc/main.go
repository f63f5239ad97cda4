package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/livebud/cli"
	"github.com/livebud/layoutc"
	"github.com/livebud/layoutc/internal/config"
	"github.com/livebud/layoutc/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

func run() error {
	cli := cli.New("layoutc", "compile layout markup into source")

	{ // build [flags] [dir]
		cmd := new(Build)
		cli := cli.Command("build", "compile the documents of a project")
		cli.Flag("config", "path to the configuration file").String(&cmd.Config).Default("")
		cli.Flag("json", "log as json").Bool(&cmd.JSON).Default(false)
		cli.Arg("dir").String(&cmd.Dir).Default(".")
		cli.Run(cmd.Run)
	}

	{ // init [dir]
		cmd := new(Init)
		cli := cli.Command("init", "write a default configuration")
		cli.Arg("dir").String(&cmd.Dir).Default(".")
		cli.Run(cmd.Run)
	}

	{ // catalog [flags] [dir]
		cmd := &Catalog{Stdout: os.Stdout}
		cli := cli.Command("catalog", "print the component catalog")
		cli.Flag("config", "path to the configuration file").String(&cmd.Config).Default("")
		cli.Arg("dir").String(&cmd.Dir).Default(".")
		cli.Run(cmd.Run)
	}

	return cli.Parse(context.Background(), os.Args[1:]...)
}

// load the configuration of the project in dir
func load(dir, path string) (*config.Config, error) {
	if path == "" {
		path = config.Find(dir)
	}
	return config.Load(path)
}

type Build struct {
	Config string
	JSON   bool
	Dir    string
}

func (b *Build) Run(ctx context.Context) error {
	cfg, err := load(b.Dir, b.Config)
	if err != nil {
		return err
	}
	log, err := logger.New(b.JSON || cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()
	units, err := layoutc.Compile(ctx, &layoutc.Project{
		FS:     os.DirFS(b.Dir),
		Config: cfg,
		Log:    log,
	})
	if err != nil {
		return err
	}
	outDir := filepath.Join(b.Dir, cfg.Output.Dir)
	if err := layoutc.Write(outDir, cfg.Output.Extension, units); err != nil {
		return err
	}
	log.Infow("wrote units", "dir", outDir, "count", len(units))
	return nil
}

type Init struct {
	Dir string
}

func (i *Init) Run(ctx context.Context) error {
	path := filepath.Join(i.Dir, config.FileName)
	if err := config.Write(path, config.Default()); err != nil {
		return err
	}
	fmt.Println("created", path)
	return nil
}

type Catalog struct {
	Config string
	Dir    string
	Stdout io.Writer
}

func (c *Catalog) Run(ctx context.Context) error {
	cfg, err := load(c.Dir, c.Config)
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer log.Sync()
	cat, err := layoutc.Catalog(&layoutc.Project{
		FS:     os.DirFS(c.Dir),
		Config: cfg,
		Log:    log,
	})
	if err != nil {
		return err
	}
	_, err = io.WriteString(c.Stdout, cat.String())
	return err
}
