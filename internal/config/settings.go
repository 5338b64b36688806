package config

// Settings is the part of the configuration remembered between runs.
// The JSON text and the class name are never part of it.
type Settings struct {
	Serialization     Serialization      `yaml:"serialization"`
	Nullability       Nullability        `yaml:"nullability"`
	DefaultValue      DefaultValue       `yaml:"default_value"`
	Naming            NamingConvention   `yaml:"naming"`
	Sort              bool               `yaml:"sort"`
	UseJSONAnnotation bool               `yaml:"use_json_annotation"`
	Custom            *CustomAnnotations `yaml:"custom,omitempty"`
}

// Settings extracts the rememberable settings.
func (c *Config) Settings() Settings {
	s := Settings{
		Serialization:     c.Serialization,
		Nullability:       c.Nullability,
		DefaultValue:      c.DefaultValue,
		Naming:            c.Naming.Convention,
		Sort:              c.Sort,
		UseJSONAnnotation: c.UseJSONAnnotation,
	}
	if c.Custom != nil {
		custom := *c.Custom
		s.Custom = &custom
	}
	return s
}

// ApplySettings copies remembered settings onto the config. Empty enum values are skipped.
func (c *Config) ApplySettings(s Settings) {
	if s.Serialization != "" {
		c.Serialization = s.Serialization
	}
	if s.Nullability != "" {
		c.Nullability = s.Nullability
	}
	if s.DefaultValue != "" {
		c.DefaultValue = s.DefaultValue
	}
	if s.Naming != "" {
		c.Naming.Convention = s.Naming
	}
	c.Sort = s.Sort
	c.UseJSONAnnotation = s.UseJSONAnnotation
	if s.Custom != nil {
		custom := *s.Custom
		c.Custom = &custom
	}
}
