package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mcncl/cstyper/internal/errors"
	"gopkg.in/yaml.v3"
)

// Default values used when neither a config file nor a flag sets an option.
const (
	DefaultClassName     = "MyClass"
	DefaultNamespaceName = "MyNamespace"
	DefaultMaxDepth      = 64
	DefaultIndentSize    = 4
	DefaultDebounce      = 500 * time.Millisecond
)

// Config represents the complete configuration for cstyper
type Config struct {
	Policy     EmitPolicy       `yaml:",inline"`
	Inference  InferenceConfig  `yaml:"inference"`
	Formatting FormattingConfig `yaml:"formatting"`
	Watch      WatchConfig      `yaml:"watch"`
	Dev        DevConfig        `yaml:"dev"`
}

// EmitPolicy controls how the inferred classes are rendered.
type EmitPolicy struct {
	ClassName                string         `yaml:"class_name"`
	NamespaceName            string         `yaml:"namespace"`
	AccessModifier           AccessModifier `yaml:"access_modifier"`
	IsStatic                 bool           `yaml:"static"`
	UseNullableAnnotations   bool           `yaml:"nullable"`
	UsePascalCaseNames       bool           `yaml:"pascal_case_names"`
	IncludePropertyAttribute bool           `yaml:"property_attribute"`
	AttributeStyle           AttributeStyle `yaml:"attribute_style"`
	FileScopedNamespace      bool           `yaml:"file_scoped_namespace"`
	FileHeader               string         `yaml:"file_header,omitempty"`
}

// NameCollisionPolicy decides what happens when two nested objects map to the same class name.
type NameCollisionPolicy string

const (
	CollisionSuffix NameCollisionPolicy = "suffix"
	CollisionError  NameCollisionPolicy = "error"
)

// InferenceConfig controls type inference
type InferenceConfig struct {
	MaxDepth              int                 `yaml:"max_depth"`
	NameCollisions        NameCollisionPolicy `yaml:"name_collisions"`
	ReuseIdenticalClasses bool                `yaml:"reuse_identical_classes"`
	SingularizeItemNames  bool                `yaml:"singularize_item_names"`
}

// FormattingConfig controls output normalisation
type FormattingConfig struct {
	Enabled    bool   `yaml:"enabled"`
	IndentSize int    `yaml:"indent_size"`
	UseTabs    bool   `yaml:"use_tabs"`
	LineEnding string `yaml:"line_ending"`
}

// WatchConfig controls watch mode
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// DefaultEmitPolicy returns the policy used when nothing else is configured.
func DefaultEmitPolicy() EmitPolicy {
	return EmitPolicy{
		ClassName:           DefaultClassName,
		NamespaceName:       DefaultNamespaceName,
		AccessModifier:      Public,
		UsePascalCaseNames:  true,
		AttributeStyle:      Newtonsoft,
		FileScopedNamespace: true,
	}
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Policy: DefaultEmitPolicy(),
		Inference: InferenceConfig{
			MaxDepth:       DefaultMaxDepth,
			NameCollisions: CollisionSuffix,
		},
		Formatting: FormattingConfig{
			Enabled:    true,
			IndentSize: DefaultIndentSize,
			LineEnding: "lf",
		},
		Watch: WatchConfig{
			Debounce: DefaultDebounce,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path as YAML.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFileFrom(currentDir)
}

func findConfigFileFrom(dir string) string {
	configNames := []string{".cstyper.yml", ".cstyper.yaml", "cstyper.yml", "cstyper.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}

	return ""
}

// Validate checks option values that YAML decoding cannot check on its own.
func (c *Config) Validate() error {
	switch c.Inference.NameCollisions {
	case CollisionSuffix, CollisionError:
	case "":
		c.Inference.NameCollisions = CollisionSuffix
	default:
		return errors.Wrapf(errors.ErrInvalidOption, "invalid name_collisions %q: want %q or %q", c.Inference.NameCollisions, CollisionSuffix, CollisionError)
	}

	if c.Inference.MaxDepth < 0 {
		return errors.Wrapf(errors.ErrInvalidOption, "invalid max_depth %d: must not be negative", c.Inference.MaxDepth)
	}
	if c.Formatting.IndentSize < 0 {
		return errors.Wrapf(errors.ErrInvalidOption, "invalid indent_size %d: must not be negative", c.Formatting.IndentSize)
	}

	switch strings.ToLower(c.Formatting.LineEnding) {
	case "", "lf", "crlf":
	default:
		return errors.Wrapf(errors.ErrInvalidOption, "invalid line_ending %q: want \"lf\" or \"crlf\"", c.Formatting.LineEnding)
	}

	if c.Watch.Debounce < 0 {
		return errors.Wrapf(errors.ErrInvalidOption, "invalid debounce %s: must not be negative", c.Watch.Debounce)
	}
	return nil
}

// CLIOverrides carries the values given on the command line. Empty strings
// and false booleans leave the configured value untouched; every boolean
// flag switches away from a default.
type CLIOverrides struct {
	ClassName      string
	Namespace      string
	AccessModifier string
	AttributeStyle string
	Static         bool
	Nullable       bool
	Attributes     bool
	KeepNames      bool
	BlockNamespace bool
	NoFormat       bool
	Debug          bool
}

// Apply merges the overrides into c.
func (o CLIOverrides) Apply(c *Config) error {
	if o.ClassName != "" {
		c.Policy.ClassName = o.ClassName
	}
	if o.Namespace != "" {
		c.Policy.NamespaceName = o.Namespace
	}
	if o.AccessModifier != "" {
		m, err := ParseAccessModifier(o.AccessModifier)
		if err != nil {
			return err
		}
		c.Policy.AccessModifier = m
	}
	if o.AttributeStyle != "" {
		s, err := ParseAttributeStyle(o.AttributeStyle)
		if err != nil {
			return err
		}
		c.Policy.AttributeStyle = s
	}
	if o.Static {
		c.Policy.IsStatic = true
	}
	if o.Nullable {
		c.Policy.UseNullableAnnotations = true
	}
	if o.Attributes {
		c.Policy.IncludePropertyAttribute = true
	}
	if o.KeepNames {
		c.Policy.UsePascalCaseNames = false
	}
	if o.BlockNamespace {
		c.Policy.FileScopedNamespace = false
	}
	if o.NoFormat {
		c.Formatting.Enabled = false
	}
	if o.Debug {
		c.Dev.Debug = true
	}
	return nil
}

// LoadConfigWithCLI loads the config file (if any) and applies CLI overrides on top.
func LoadConfigWithCLI(configPath string, overrides CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if err := overrides.Apply(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
