package generator

import (
	"fmt"
	"strings"

	"github.com/mcncl/jsontodart/internal/config"
	"github.com/mcncl/jsontodart/internal/models"
	"github.com/mcncl/jsontodart/internal/naming"
)

const jsonAnnotationImport = "import 'package:json_annotation/json_annotation.dart';"

// Names of the method templates a strategy renders after the constructor.
const (
	methodsNone     = ""
	methodsAccessor = "accessor"
	methodsManual   = "manual"
)

// strategy holds the rendering rules of one serialization style.
type strategy interface {
	imports() []string
	part(rootClassName string) string
	classAnnotation() string
	fieldAnnotation(f models.FieldDef) string
	// constructorDefault returns the default literal a constructor parameter carries, if any.
	constructorDefault(f models.FieldDef) (string, bool)
	methods() string
}

func newStrategy(cfg *config.Config) (strategy, error) {
	switch cfg.Serialization {
	case config.SerializationJSONSerializable, "":
		return accessorStrategy{cfg: cfg}, nil
	case config.SerializationManual:
		return manualStrategy{cfg: cfg}, nil
	case config.SerializationCustom:
		return customStrategy{cfg: cfg}, nil
	default:
		return nil, fmt.Errorf("unknown serialization %q", cfg.Serialization)
	}
}

// usesNonNullDefault reports whether the default-value policy puts a literal on f.
func usesNonNullDefault(cfg *config.Config, f models.FieldDef) (string, bool) {
	if cfg.DefaultValue != config.DefaultValueNonNull || f.Nullable {
		return "", false
	}
	return defaultLiteral(f.Type, false)
}

// accessorStrategy delegates fromJson/toJson to json_serializable's generated part file.
type accessorStrategy struct {
	cfg *config.Config
}

func (accessorStrategy) imports() []string {
	return []string{jsonAnnotationImport}
}

func (accessorStrategy) part(rootClassName string) string {
	return fmt.Sprintf("part '%s.g.dart';", naming.FileStem(rootClassName))
}

func (accessorStrategy) classAnnotation() string {
	return "@JsonSerializable()"
}

func (s accessorStrategy) fieldAnnotation(f models.FieldDef) string {
	lit, hasDefault := usesNonNullDefault(s.cfg, f)
	if f.Name == f.JSONKey && !hasDefault {
		return ""
	}
	annotation := "@JsonKey(name: " + naming.DartString(f.JSONKey)
	if hasDefault {
		annotation += ", defaultValue: " + lit
	}
	return annotation + ")"
}

func (accessorStrategy) constructorDefault(models.FieldDef) (string, bool) {
	return "", false
}

func (accessorStrategy) methods() string {
	return methodsAccessor
}

// manualStrategy writes fromJson/toJson bodies by hand.
type manualStrategy struct {
	cfg *config.Config
}

func (s manualStrategy) imports() []string {
	if s.cfg.UseJSONAnnotation {
		return []string{jsonAnnotationImport}
	}
	return nil
}

func (manualStrategy) part(string) string { return "" }

func (manualStrategy) classAnnotation() string { return "" }

func (manualStrategy) fieldAnnotation(models.FieldDef) string { return "" }

func (s manualStrategy) constructorDefault(f models.FieldDef) (string, bool) {
	if _, ok := usesNonNullDefault(s.cfg, f); !ok {
		return "", false
	}
	return defaultLiteral(f.Type, true)
}

func (manualStrategy) methods() string {
	return methodsManual
}

// customStrategy substitutes user supplied annotations and leaves serialization to
// whatever processes them.
type customStrategy struct {
	cfg *config.Config
}

func (s customStrategy) imports() []string {
	var imports []string
	if s.cfg.UseJSONAnnotation {
		imports = append(imports, jsonAnnotationImport)
	}
	if s.cfg.Custom != nil && s.cfg.Custom.Import != "" {
		imports = append(imports, s.cfg.Custom.Import)
	}
	return imports
}

func (customStrategy) part(string) string { return "" }

func (s customStrategy) classAnnotation() string {
	if s.cfg.Custom == nil {
		return ""
	}
	return s.cfg.Custom.ClassAnnotation
}

func (s customStrategy) fieldAnnotation(f models.FieldDef) string {
	if s.cfg.Custom == nil || s.cfg.Custom.PropertyAnnotation == "" {
		return ""
	}
	return strings.ReplaceAll(s.cfg.Custom.PropertyAnnotation, "%s", f.JSONKey)
}

func (customStrategy) constructorDefault(models.FieldDef) (string, bool) {
	return "", false
}

func (customStrategy) methods() string {
	return methodsNone
}
