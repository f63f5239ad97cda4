// Package config loads the project configuration from layoutc.toml with
// LAYOUTC_ environment overrides.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// FileName of the project configuration
const FileName = "layoutc.toml"

type Config struct {
	Source  Source  `mapstructure:"source" toml:"source"`
	Output  Output  `mapstructure:"output" toml:"output"`
	Build   Build   `mapstructure:"build" toml:"build"`
	Catalog Catalog `mapstructure:"catalog" toml:"catalog"`
	Log     Log     `mapstructure:"log" toml:"log"`
}

type Source struct {
	Dir        string   `mapstructure:"dir" toml:"dir"`
	Extensions []string `mapstructure:"extensions" toml:"extensions"`
}

type Output struct {
	Dir       string `mapstructure:"dir" toml:"dir"`
	Extension string `mapstructure:"extension" toml:"extension"`
}

type Build struct {
	ReservedNamespace string   `mapstructure:"reserved_namespace" toml:"reserved_namespace"`
	LayoutBase        string   `mapstructure:"layout_base" toml:"layout_base"`
	StyleBase         string   `mapstructure:"style_base" toml:"style_base"`
	Suppress          []string `mapstructure:"suppress" toml:"suppress"`
}

type Catalog struct {
	PluginDir string `mapstructure:"plugin_dir" toml:"plugin_dir"`
}

type Log struct {
	Level string `mapstructure:"level" toml:"level"`
	JSON  bool   `mapstructure:"json" toml:"json"`
}

// SetDefaults configures the default value of every option
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.dir", ".")
	v.SetDefault("source.extensions", []string{".xml"})

	v.SetDefault("output.dir", "generated")
	v.SetDefault("output.extension", ".g.cs")

	v.SetDefault("build.reserved_namespace", "urn:layoutc:attributes")
	v.SetDefault("build.layout_base", "Layout")
	v.SetDefault("build.style_base", "Style")
	v.SetDefault("build.suppress", []string{"CS0108", "CS0618"})

	v.SetDefault("catalog.plugin_dir", "plugins")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Default configuration
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	var config Config
	// Defaults always decode
	_ = v.Unmarshal(&config)
	return &config
}

// Find the configuration file in dir, returning an empty path when there's none
func Find(dir string) string {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// Load the configuration from path over the defaults. An empty path only
// applies the defaults and the environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LAYOUTC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, errors.WithHint(
					errors.Wrapf(err, "config: %s not found", path),
					"run `layoutc init` to create a default configuration",
				)
			}
			return nil, errors.Wrapf(err, "config: unable to read %s", path)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrapf(err, "config: unable to decode %s", path)
	}
	if len(config.Source.Extensions) == 0 {
		return nil, errors.WithHint(
			errors.Newf("config: source.extensions is empty"),
			`list the document extensions, for example extensions = [".xml"]`,
		)
	}
	if err := checkOutput(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// checkOutput refuses an output dir that holds the sources, since units are
// written into it
func checkOutput(config *Config) error {
	out := filepath.Clean(config.Output.Dir)
	src := filepath.Clean(config.Source.Dir)
	rel, err := filepath.Rel(out, src)
	if err != nil {
		return errors.Wrapf(err, "config: unable to compare output.dir %q with source.dir %q", out, src)
	}
	if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
		return errors.WithHint(
			errors.Newf("config: output.dir %q contains source.dir %q", config.Output.Dir, config.Source.Dir),
			`write the units to their own directory, for example dir = "generated"`,
		)
	}
	return nil
}

// Write the configuration to path. Existing files are never overwritten.
func Write(path string, config *Config) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return errors.WithHint(
				errors.Newf("config: %s already exists", path),
				"remove it first to start over from the defaults",
			)
		}
		return errors.Wrapf(err, "config: unable to create %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return errors.Wrapf(err, "config: unable to encode %s", path)
	}
	return nil
}
