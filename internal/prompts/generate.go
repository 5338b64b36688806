package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mcncl/jsontodart/internal/config"
)

// GenerateInput is what the generate form collects. Fields hold the initial
// values on entry and the answers on return.
type GenerateInput struct {
	ClassName string
	JSON      string
	Settings  config.Settings
}

// RunGenerateForm runs the interactive form for a generation.
func RunGenerateForm(in *GenerateInput) error {
	custom := config.CustomAnnotations{}
	if in.Settings.Custom != nil {
		custom = *in.Settings.Custom
	}

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Class name").
				Placeholder(config.DefaultRootName).
				Value(&in.ClassName),
			huh.NewText().
				Title("JSON").
				Description("Paste a JSON object or an array of objects").
				CharLimit(0).
				Lines(12).
				Value(&in.JSON).
				Validate(jsonValidator),
		),
		huh.NewGroup(
			huh.NewSelect[config.Serialization]().
				Title("Serialization").
				Options(serializationOptions()...).
				Value(&in.Settings.Serialization),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Import").
				Placeholder("import 'package:my_models/annotations.dart';").
				Value(&custom.Import).
				Validate(importValidator),
			huh.NewInput().
				Title("Class annotation").
				Placeholder("@Model()").
				Value(&custom.ClassAnnotation).
				Validate(annotationValidator),
			huh.NewInput().
				Title("Property annotation").
				Description("%s is replaced with the JSON key").
				Placeholder("@Field('%s')").
				Value(&custom.PropertyAnnotation).
				Validate(annotationValidator),
			huh.NewConfirm().
				Title("Also import json_annotation?").
				Value(&in.Settings.UseJSONAnnotation),
		).WithHideFunc(func() bool { return in.Settings.Serialization != config.SerializationCustom }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Import json_annotation?").
				Value(&in.Settings.UseJSONAnnotation),
		).WithHideFunc(func() bool { return in.Settings.Serialization != config.SerializationManual }),
		huh.NewGroup(
			huh.NewSelect[config.Nullability]().
				Title("Types").
				Options(nullabilityOptions()...).
				Value(&in.Settings.Nullability),
			huh.NewSelect[config.DefaultValue]().
				Title("Default values").
				Options(defaultValueOptions()...).
				Value(&in.Settings.DefaultValue),
			huh.NewSelect[config.NamingConvention]().
				Title("Field naming").
				Options(namingOptions()...).
				Value(&in.Settings.Naming),
			huh.NewConfirm().
				Title("Sort fields alphabetically?").
				Value(&in.Settings.Sort),
		),
	).WithTheme(Theme()).Run()
	if err != nil {
		return err
	}

	finishGenerateInput(in, custom)
	return nil
}

// finishGenerateInput normalises the answers after the form completes.
func finishGenerateInput(in *GenerateInput, custom config.CustomAnnotations) {
	in.ClassName = strings.TrimSpace(in.ClassName)
	if in.ClassName == "" {
		in.ClassName = config.DefaultRootName
	}

	custom.Import = strings.TrimSpace(custom.Import)
	custom.ClassAnnotation = strings.TrimSpace(custom.ClassAnnotation)
	custom.PropertyAnnotation = strings.TrimSpace(custom.PropertyAnnotation)
	if custom != (config.CustomAnnotations{}) {
		in.Settings.Custom = &custom
	} else {
		in.Settings.Custom = nil
	}
}

func serializationOptions() []huh.Option[config.Serialization] {
	return []huh.Option[config.Serialization]{
		huh.NewOption("json_serializable (code generation)", config.SerializationJSONSerializable),
		huh.NewOption("Manual fromJson / toJson", config.SerializationManual),
		huh.NewOption("Custom annotations", config.SerializationCustom),
	}
}

func nullabilityOptions() []huh.Option[config.Nullability] {
	return []huh.Option[config.Nullability]{
		huh.NewOption("Auto detect nullable fields", config.NullabilityAuto),
		huh.NewOption("All nullable", config.NullabilityNullable),
		huh.NewOption("All non-nullable", config.NullabilityNonNullable),
	}
}

func defaultValueOptions() []huh.Option[config.DefaultValue] {
	return []huh.Option[config.DefaultValue]{
		huh.NewOption("None", config.DefaultValueNone),
		huh.NewOption("Non-null fallbacks", config.DefaultValueNonNull),
		huh.NewOption("Null", config.DefaultValueNull),
	}
}

func namingOptions() []huh.Option[config.NamingConvention] {
	return []huh.Option[config.NamingConvention]{
		huh.NewOption("camelCase", config.NamingCamelCase),
		huh.NewOption("snake_case", config.NamingSnakeCase),
		huh.NewOption("PascalCase", config.NamingPascalCase),
	}
}
