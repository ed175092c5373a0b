// Package config provides configuration types and defaults for ropedit.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// BuiltinTheme names the theme compiled into the editor. Any other theme
// name is looked up among the chroma styles.
const BuiltinTheme = "ayu"

// Config holds all configuration options for ropedit.
type Config struct {
	Language    string `mapstructure:"language" yaml:"language"`         // chroma lexer used when the file name does not match one
	Theme       string `mapstructure:"theme" yaml:"theme"`               // "ayu" or a chroma style name
	TabWidth    int    `mapstructure:"tab_width" yaml:"tab_width"`       // Tab pads to the next multiple of this
	LineNumbers bool   `mapstructure:"line_numbers" yaml:"line_numbers"` // show the line number gutter
	ScrollMouse bool   `mapstructure:"scroll_mouse" yaml:"scroll_mouse"` // mouse wheel scrolls the view
	ShowHelp    bool   `mapstructure:"show_help" yaml:"show_help"`       // show the key help line on start
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`         // written only with debug enabled
	Debug       bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Language:    "rust",
		Theme:       BuiltinTheme,
		TabWidth:    4,
		LineNumbers: true,
		ScrollMouse: true,
		LogFile:     "ropedit.log",
	}
}

// SetDefaults registers every default with v so that environment variables
// and flags can override keys absent from the config file.
func SetDefaults(v *viper.Viper) {
	defaults := Defaults()
	v.SetDefault("language", defaults.Language)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("tab_width", defaults.TabWidth)
	v.SetDefault("line_numbers", defaults.LineNumbers)
	v.SetDefault("scroll_mouse", defaults.ScrollMouse)
	v.SetDefault("show_help", defaults.ShowHelp)
	v.SetDefault("log_file", defaults.LogFile)
	v.SetDefault("debug", defaults.Debug)
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid option.
func (c Config) Validate() error {
	var errs []error

	if c.TabWidth < 1 || c.TabWidth > 16 {
		errs = append(errs, fmt.Errorf("tab_width must be between 1 and 16, got %d", c.TabWidth))
	}
	if c.Theme == "" {
		errs = append(errs, errors.New("theme is required"))
	} else if _, ok := styles.Registry[c.Theme]; !ok && c.Theme != BuiltinTheme {
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	if c.Language != "" && lexers.Get(c.Language) == nil {
		errs = append(errs, fmt.Errorf("unknown language %q", c.Language))
	}
	if c.Debug && c.LogFile == "" {
		errs = append(errs, errors.New("log_file is required when debug is enabled"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// DefaultPath returns ~/.config/ropedit/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "ropedit", "config.yaml")
	}
	return filepath.Join(home, ".config", "ropedit", "config.yaml")
}

const header = "# ropedit configuration\n# Theme is \"ayu\" or any chroma style name.\n\n"

// WriteDefault creates a config file at path with default settings.
// Creates the parent directory if it doesn't exist.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(header), data...), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
