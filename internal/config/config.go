// Package config loads sanaguide settings with Viper.
//
// Priority, highest first:
//  1. Command-line flags bound with [Loader.BindPFlag]
//  2. Environment variables (SANAGUIDE_ prefix, dots become underscores,
//     e.g. SANAGUIDE_LOG_LEVEL)
//  3. The file named by --config or SANAGUIDE_CONFIG_PATH
//  4. <user config dir>/sanaguide/config.yaml
//  5. [DefaultConfig]
//
// Configuration never holds credentials; those are typed into the guide and
// kept in memory only.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/felixgeelhaar/sanaguide/internal/adapters/clipboard"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

const (
	envPrefix      = "SANAGUIDE"
	configPathEnv  = "SANAGUIDE_CONFIG_PATH"
	appDirName     = "sanaguide"
	configFileName = "config.yaml"
)

// Config is the root configuration.
type Config struct {
	// DefaultOS is the OS commands render for. Empty means detect the host.
	DefaultOS string `mapstructure:"default_os"`
	// Clipboard selects the backend: system, osc52 or none.
	Clipboard string         `mapstructure:"clipboard"`
	Log       LogConfig      `mapstructure:"log"`
	Markdown  MarkdownConfig `mapstructure:"markdown"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives logs while the TUI owns the terminal. Empty discards them.
	File string `mapstructure:"file"`
}

// MarkdownConfig controls how step bodies are rendered.
type MarkdownConfig struct {
	// Style is a glamour theme name.
	Style    string `mapstructure:"style"`
	WordWrap int    `mapstructure:"word_wrap"`
}

// MarkdownStyles lists the accepted glamour themes.
var MarkdownStyles = []string{"auto", "dark", "light", "dracula", "tokyo-night", "pink", "ascii", "notty"}

// LogFormats lists the accepted log formats.
var LogFormats = []string{"text", "json"}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		DefaultOS: "",
		Clipboard: clipboard.KindSystem,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
		Markdown: MarkdownConfig{
			Style:    "dark",
			WordWrap: 80,
		},
	}
}

// OS resolves DefaultOS, detecting the host when unset.
func (c *Config) OS() platform.OS {
	if c.DefaultOS == "" {
		return platform.Detect().OS()
	}
	o, err := platform.ParseOS(c.DefaultOS)
	if err != nil {
		return platform.Detect().OS()
	}
	return o
}

// LogLevel resolves Log.Level.
func (c *Config) LogLevel() ports.Level {
	level, _ := ports.ParseLevel(c.Log.Level)
	return level
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	errs := guide.NewErrorList()

	if c.DefaultOS != "" {
		if _, err := platform.ParseOS(c.DefaultOS); err != nil {
			errs.Add(guide.NewConfigInvalidError("default_os", c.DefaultOS, []string{"mac", "windows", "linux"}).WithUnderlying(err))
		}
	}
	if !contains(clipboard.Kinds(), c.Clipboard) {
		errs.Add(guide.NewConfigInvalidError("clipboard", c.Clipboard, clipboard.Kinds()))
	}
	if _, ok := ports.ParseLevel(c.Log.Level); !ok {
		errs.Add(guide.NewConfigInvalidError("log.level", c.Log.Level, []string{"debug", "info", "warn", "error"}))
	}
	if !contains(LogFormats, c.Log.Format) {
		errs.Add(guide.NewConfigInvalidError("log.format", c.Log.Format, LogFormats))
	}
	if !contains(MarkdownStyles, c.Markdown.Style) {
		errs.Add(guide.NewConfigInvalidError("markdown.style", c.Markdown.Style, MarkdownStyles))
	}
	if c.Markdown.WordWrap < 0 {
		errs.Add(guide.NewConfigInvalidError("markdown.word_wrap", fmt.Sprint(c.Markdown.WordWrap), nil).
			WithSuggestion("Use 0 to disable wrapping or a positive column count."))
	}

	return errs.AsError()
}

// Loader reads configuration through a private Viper instance.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader with defaults and environment binding.
func NewLoader() *Loader {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("default_os", d.DefaultOS)
	v.SetDefault("clipboard", d.Clipboard)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("markdown.style", d.Markdown.Style)
	v.SetDefault("markdown.word_wrap", d.Markdown.WordWrap)

	return &Loader{v: v}
}

// BindPFlag lets a command-line flag override key when it is set.
func (l *Loader) BindPFlag(key string, flag *pflag.Flag) error {
	if flag == nil {
		return fmt.Errorf("no flag to bind for %s", key)
	}
	return l.v.BindPFlag(key, flag)
}

// Load resolves the config file path and loads it. A missing file at the
// default location is not an error; a missing explicit path is.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		return l.LoadFromFile(path)
	}

	def, err := DefaultConfigPath()
	if err == nil {
		if _, statErr := os.Stat(def); statErr == nil {
			return l.LoadFromFile(def)
		}
	}
	return l.decode()
}

// LoadFromFile loads the YAML file at path.
func (l *Loader) LoadFromFile(path string) (*Config, error) {
	l.v.SetConfigFile(path)
	if err := l.v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, guide.NewUserError(guide.ErrCodeConfigInvalid, "config file not found").
				WithContext(path).
				WithSuggestion("Check the --config path or unset SANAGUIDE_CONFIG_PATH.").
				WithUnderlying(err)
		}
		return nil, guide.NewUserError(guide.ErrCodeConfigInvalid, "failed to read config file").
			WithContext(path).
			WithUnderlying(err)
	}
	return l.decode()
}

func (l *Loader) decode() (*Config, error) {
	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, guide.NewUserError(guide.ErrCodeConfigInvalid, "failed to decode config").WithUnderlying(err)
	}
	cfg.Clipboard = strings.ToLower(cfg.Clipboard)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ConfigDir returns the platform config directory for sanaguide.
func ConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(base, appDirName), nil
}

// DefaultConfigPath returns <ConfigDir>/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

func contains(list []string, s string) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}
