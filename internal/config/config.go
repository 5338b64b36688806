package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultRootName is the class name used when none is given.
const DefaultRootName = "Root"

// Serialization selects the style of serialization boilerplate.
type Serialization string

const (
	SerializationJSONSerializable Serialization = "json_serializable"
	SerializationManual           Serialization = "manual"
	SerializationCustom           Serialization = "custom"
)

// Nullability selects how field nullability is decided.
type Nullability string

const (
	NullabilityAuto        Nullability = "auto"
	NullabilityNullable    Nullability = "nullable"
	NullabilityNonNullable Nullability = "non-nullable"
)

// DefaultValue selects whether fallback literals are embedded for non-nullable fields.
type DefaultValue string

const (
	DefaultValueNone    DefaultValue = "none"
	DefaultValueNonNull DefaultValue = "non-null"
	DefaultValueNull    DefaultValue = "null"
)

// NamingConvention selects how JSON keys become field names.
type NamingConvention string

const (
	NamingCamelCase  NamingConvention = "camelCase"
	NamingSnakeCase  NamingConvention = "snake_case"
	NamingPascalCase NamingConvention = "PascalCase"
)

// Config represents the complete configuration for one generation call
type Config struct {
	RootName          string             `yaml:"root_name"`
	Serialization     Serialization      `yaml:"serialization"`
	Nullability       Nullability        `yaml:"nullability"`
	DefaultValue      DefaultValue       `yaml:"default_value"`
	Sort              bool               `yaml:"sort"`
	UseJSONAnnotation bool               `yaml:"use_json_annotation"`
	Custom            *CustomAnnotations `yaml:"custom,omitempty"`
	Naming            NamingConfig       `yaml:"naming"`
	Arrays            ArraysConfig       `yaml:"arrays"`
	Formatting        FormattingConfig   `yaml:"formatting"`
	Dev               DevConfig          `yaml:"dev"`
}

// CustomAnnotations holds the templates used by the custom serialization strategy.
// PropertyAnnotation may contain %s, which is replaced with the original JSON key.
type CustomAnnotations struct {
	Import             string `yaml:"import"`
	ClassAnnotation    string `yaml:"class_annotation"`
	PropertyAnnotation string `yaml:"property_annotation"`
}

// NamingConfig controls field naming
type NamingConfig struct {
	Convention    NamingConvention  `yaml:"convention"`
	FieldMappings map[string]string `yaml:"field_mappings"`
}

// ArraysConfig controls naming of classes inferred from list elements
type ArraysConfig struct {
	SingularizeNames bool `yaml:"singularize_names"`
}

// FormattingConfig controls output normalisation
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		RootName:      DefaultRootName,
		Serialization: SerializationJSONSerializable,
		Nullability:   NullabilityAuto,
		DefaultValue:  DefaultValueNone,
		Naming: NamingConfig{
			Convention:    NamingCamelCase,
			FieldMappings: make(map[string]string),
		},
		Formatting: FormattingConfig{
			Enabled: true,
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
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
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
	configNames := []string{".jsontodart.yml", ".jsontodart.yaml", "jsontodart.yml", "jsontodart.yaml"}

	currentDir := dir
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that every enumerated setting holds a known value.
// Empty values are filled with defaults.
func (c *Config) Validate() error {
	if c.RootName == "" {
		c.RootName = DefaultRootName
	}
	if c.Serialization == "" {
		c.Serialization = SerializationJSONSerializable
	}
	if c.Nullability == "" {
		c.Nullability = NullabilityAuto
	}
	if c.DefaultValue == "" {
		c.DefaultValue = DefaultValueNone
	}
	if c.Naming.Convention == "" {
		c.Naming.Convention = NamingCamelCase
	}

	switch c.Serialization {
	case SerializationJSONSerializable, SerializationManual, SerializationCustom:
	default:
		return fmt.Errorf("unknown serialization %q (want json_serializable, manual or custom)", c.Serialization)
	}
	switch c.Nullability {
	case NullabilityAuto, NullabilityNullable, NullabilityNonNullable:
	default:
		return fmt.Errorf("unknown nullability %q (want auto, nullable or non-nullable)", c.Nullability)
	}
	switch c.DefaultValue {
	case DefaultValueNone, DefaultValueNonNull, DefaultValueNull:
	default:
		return fmt.Errorf("unknown default value %q (want none, non-null or null)", c.DefaultValue)
	}
	switch c.Naming.Convention {
	case NamingCamelCase, NamingSnakeCase, NamingPascalCase:
	default:
		return fmt.Errorf("unknown naming convention %q (want camelCase, snake_case or PascalCase)", c.Naming.Convention)
	}
	return nil
}

// FieldMapping returns the configured field name override for a JSON key.
func (c *Config) FieldMapping(jsonKey string) (string, bool) {
	mapped, ok := c.Naming.FieldMappings[jsonKey]
	return mapped, ok && mapped != ""
}

// IsNullable applies the nullability policy to what the samples showed about a key.
func (c *Config) IsNullable(missingInSome, hasNull bool) bool {
	switch c.Nullability {
	case NullabilityNullable:
		return true
	case NullabilityNonNullable:
		return false
	default:
		return missingInSome || hasNull
	}
}

// CLIOverrides are values given on the command line. Empty strings and false
// booleans leave the underlying config untouched.
type CLIOverrides struct {
	RootName           string
	Serialization      string
	Nullability        string
	DefaultValue       string
	Naming             string
	Sort               bool
	UseJSONAnnotation  bool
	CustomImport       string
	ClassAnnotation    string
	PropertyAnnotation string
	NoFormat           bool
	Debug              bool
}

// Apply merges the overrides into the config.
func (o CLIOverrides) Apply(cfg *Config) {
	if o.RootName != "" {
		cfg.RootName = o.RootName
	}
	if o.Serialization != "" {
		cfg.Serialization = Serialization(o.Serialization)
	}
	if o.Nullability != "" {
		cfg.Nullability = Nullability(o.Nullability)
	}
	if o.DefaultValue != "" {
		cfg.DefaultValue = DefaultValue(o.DefaultValue)
	}
	if o.Naming != "" {
		cfg.Naming.Convention = NamingConvention(o.Naming)
	}
	if o.Sort {
		cfg.Sort = true
	}
	if o.UseJSONAnnotation {
		cfg.UseJSONAnnotation = true
	}
	if o.CustomImport != "" || o.ClassAnnotation != "" || o.PropertyAnnotation != "" {
		if cfg.Custom == nil {
			cfg.Custom = &CustomAnnotations{}
		}
		if o.CustomImport != "" {
			cfg.Custom.Import = o.CustomImport
		}
		if o.ClassAnnotation != "" {
			cfg.Custom.ClassAnnotation = o.ClassAnnotation
		}
		if o.PropertyAnnotation != "" {
			cfg.Custom.PropertyAnnotation = o.PropertyAnnotation
		}
	}
	if o.NoFormat {
		cfg.Formatting.Enabled = false
	}
	if o.Debug {
		cfg.Dev.Debug = true
	}
}

// LoadConfigWithCLI builds the effective config: defaults, then remembered
// settings, then the config file, then command line overrides.
func LoadConfigWithCLI(configPath string, remembered *Settings, overrides CLIOverrides) (*Config, error) {
	cfg := NewConfig()
	if remembered != nil {
		cfg.ApplySettings(*remembered)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	overrides.Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
