// Package config loads libdep settings from defaults, an optional YAML
// file, LIBDEP_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jward/libdep"
)

// Extractor names.
const (
	ExtractorLexical    = "lexical"
	ExtractorTreeSitter = "tree-sitter"
)

// FileName is the config file looked up in the working directory when no
// explicit path is given.
const FileName = ".libdep"

// Config holds all libdep configuration.
type Config struct {
	Root         string       `mapstructure:"root"`
	TrackSources bool         `mapstructure:"track_sources"`
	TrackTests   bool         `mapstructure:"track_tests"`
	Extractor    string       `mapstructure:"extractor"`
	Cache        string       `mapstructure:"cache"`
	Jobs         int          `mapstructure:"jobs"`
	Log          LogConfig    `mapstructure:"log"`
	Layout       LayoutConfig `mapstructure:"layout"`
	HTML         HTMLConfig   `mapstructure:"html"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type LayoutConfig struct {
	LibsDir       string `mapstructure:"libs_dir"`
	SublibsMarker string `mapstructure:"sublibs_marker"`
	RootMarker    string `mapstructure:"root_marker"`
	Prefix        string `mapstructure:"prefix"`
	PackagePrefix string `mapstructure:"package_prefix"`
	DisplayName   string `mapstructure:"display_name"`
	HomeURL       string `mapstructure:"home_url"`
}

type HTMLConfig struct {
	Title      string `mapstructure:"title"`
	Footer     string `mapstructure:"footer"`
	Stylesheet string `mapstructure:"stylesheet"`
	Prefix     string `mapstructure:"prefix"`
}

// Layout converts the layout section into a libdep.Layout.
func (c LayoutConfig) Layout() libdep.Layout {
	return libdep.Layout{
		LibsDir:       c.LibsDir,
		SublibsMarker: c.SublibsMarker,
		RootMarker:    c.RootMarker,
		Prefix:        c.Prefix,
		PackagePrefix: c.PackagePrefix,
		DisplayName:   c.DisplayName,
		HomeURL:       c.HomeURL,
	}
}

// Policy returns the scan policy selected by the track settings.
func (c *Config) Policy() libdep.ScanPolicy {
	return libdep.ScanPolicy{Sources: c.TrackSources, Tests: c.TrackTests}
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	l := libdep.DefaultLayout()
	return &Config{
		Extractor: ExtractorLexical,
		Jobs:      1,
		Log:       LogConfig{Level: "warn"},
		Layout: LayoutConfig{
			LibsDir:       l.LibsDir,
			SublibsMarker: l.SublibsMarker,
			RootMarker:    l.RootMarker,
			Prefix:        l.Prefix,
			PackagePrefix: l.PackagePrefix,
			DisplayName:   l.DisplayName,
			HomeURL:       l.HomeURL,
		},
		HTML: HTMLConfig{Title: "Boost Dependency Report"},
	}
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"root":            "root",
	"track-sources":   "track_sources",
	"track-tests":     "track_tests",
	"extractor":       "extractor",
	"cache":           "cache",
	"jobs":            "jobs",
	"log-level":       "log.level",
	"html-title":      "html.title",
	"html-footer":     "html.footer",
	"html-stylesheet": "html.stylesheet",
	"html-prefix":     "html.prefix",
}

// Load merges, lowest precedence first, the defaults, the config file,
// the environment and the flags that were set. With an empty path, a
// .libdep.yaml in the working directory is used if present. flags may be
// nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault("root", d.Root)
	v.SetDefault("track_sources", d.TrackSources)
	v.SetDefault("track_tests", d.TrackTests)
	v.SetDefault("extractor", d.Extractor)
	v.SetDefault("cache", d.Cache)
	v.SetDefault("jobs", d.Jobs)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("layout.libs_dir", d.Layout.LibsDir)
	v.SetDefault("layout.sublibs_marker", d.Layout.SublibsMarker)
	v.SetDefault("layout.root_marker", d.Layout.RootMarker)
	v.SetDefault("layout.prefix", d.Layout.Prefix)
	v.SetDefault("layout.package_prefix", d.Layout.PackagePrefix)
	v.SetDefault("layout.display_name", d.Layout.DisplayName)
	v.SetDefault("layout.home_url", d.Layout.HomeURL)
	v.SetDefault("html.title", d.HTML.Title)
	v.SetDefault("html.footer", d.HTML.Footer)
	v.SetDefault("html.stylesheet", d.HTML.Stylesheet)
	v.SetDefault("html.prefix", d.HTML.Prefix)

	v.SetEnvPrefix("LIBDEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil || !f.Changed {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	return &cfg, nil
}

// Validate checks configuration for issues and returns warnings.
func (c *Config) Validate() []string {
	var warnings []string

	switch c.Extractor {
	case ExtractorLexical, ExtractorTreeSitter:
	default:
		warnings = append(warnings, fmt.Sprintf("unknown extractor %q, using %q", c.Extractor, ExtractorLexical))
	}

	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		warnings = append(warnings, fmt.Sprintf("unknown log level %q", c.Log.Level))
	}

	if c.Jobs < 0 {
		warnings = append(warnings, fmt.Sprintf("jobs %d is negative, using one per CPU", c.Jobs))
	}

	if p := c.Layout.Prefix; p != "" && !strings.HasSuffix(p, "/") {
		warnings = append(warnings, fmt.Sprintf("layout prefix %q does not end in '/'", p))
	}

	return warnings
}
