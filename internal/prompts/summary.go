package prompts

import (
	"strings"

	"github.com/mcncl/jsontodart/internal/config"
)

// Summary lists what a generation produced. An empty path means stdout.
func Summary(className, path string, cfg *config.Config) []ResultField {
	target := path
	if target == "" {
		target = "stdout"
	}

	fields := []ResultField{
		{Label: "Class", Value: className},
		{Label: "Serialization", Value: string(cfg.Serialization)},
		{Label: "Types", Value: string(cfg.Nullability)},
		{Label: "Default values", Value: string(cfg.DefaultValue)},
		{Label: "Field naming", Value: string(cfg.Naming.Convention)},
	}
	if cfg.Sort {
		fields = append(fields, ResultField{Label: "Fields", Value: "sorted"})
	}
	if cfg.Serialization == config.SerializationCustom && cfg.Custom != nil {
		var parts []string
		for _, s := range []string{cfg.Custom.ClassAnnotation, cfg.Custom.PropertyAnnotation} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) > 0 {
			fields = append(fields, ResultField{Label: "Annotations", Value: strings.Join(parts, " ")})
		}
	}
	return append(fields, ResultField{Label: "Output", Value: target})
}
