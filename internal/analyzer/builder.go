package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mcncl/jsontodart/internal/models"
	"github.com/mcncl/jsontodart/internal/naming"
)

// buildClass unifies a set of object samples into one class definition.
// The returned slice holds every nested class discovered on the way, followed by
// the class itself as its last element.
func (a *Analyzer) buildClass(samples []models.JSONValue, className string) []models.ClassDef {
	var classes []models.ClassDef

	// Union of keys in first-seen order. Samples that are not objects add no keys.
	var keys []string
	seenKeys := make(map[string]struct{})
	for _, sample := range samples {
		obj, ok := sample.(*models.Object)
		if !ok {
			continue
		}
		for _, key := range obj.Keys {
			if _, dup := seenKeys[key]; dup {
				continue
			}
			seenKeys[key] = struct{}{}
			keys = append(keys, key)
		}
	}

	fields := make([]models.FieldDef, 0, len(keys))
	usedNames := make(map[string]int, len(keys))
	for _, key := range keys {
		var values []models.JSONValue
		missingInSome, hasNull := false, false

		for _, sample := range samples {
			obj, ok := sample.(*models.Object)
			if !ok {
				missingInSome = true
				continue
			}
			v, present := obj.Get(key)
			if !present {
				missingInSome = true
				continue
			}
			if _, isNull := v.(models.Null); isNull || v == nil {
				hasNull = true
				continue
			}
			values = append(values, v)
		}

		fieldType, nested := a.classify(values, key, 0)
		classes = append(classes, nested...)

		fields = append(fields, models.FieldDef{
			Name:     a.uniqueFieldName(usedNames, key, className),
			JSONKey:  key,
			Type:     fieldType,
			Nullable: a.config.IsNullable(missingInSome, hasNull),
		})
	}

	if a.config.Sort {
		sort.SliceStable(fields, func(i, j int) bool {
			li, lj := strings.ToLower(fields[i].Name), strings.ToLower(fields[j].Name)
			if li != lj {
				return li < lj
			}
			return fields[i].Name < fields[j].Name
		})
	}

	a.logger.Debug("built class", "class", className, "fields", len(fields), "samples", len(samples))

	return append(classes, models.ClassDef{
		Name:   className,
		Fields: fields,
	})
}

// uniqueFieldName names the field for key, suffixing it when an earlier key of the
// same class already formatted to that name.
func (a *Analyzer) uniqueFieldName(used map[string]int, key, className string) string {
	base := a.fieldName(key)
	name := base
	for n := 2; used[name] > 0; n++ {
		name = fmt.Sprintf("%s%d", base, n)
	}
	used[name]++
	if name != base {
		a.logger.Warn("field name collision, renamed", "class", className, "key", key, "field", name)
	}
	return name
}

// fieldName applies configured mappings first, then the naming convention.
func (a *Analyzer) fieldName(key string) string {
	if mapped, ok := a.config.FieldMapping(key); ok {
		return mapped
	}
	return naming.FormatField(key, a.config.Naming.Convention)
}
