package analyzer

import (
	"math"

	"github.com/mcncl/jsontodart/internal/models"
	"github.com/mcncl/jsontodart/internal/naming"
)

// category is the coarse JSON kind of a single non-null value.
type category int

const (
	categoryString category = iota
	categoryBool
	categoryNumber
	categoryList
	categoryObject
)

func categoryOf(v models.JSONValue) (category, bool) {
	switch v.(type) {
	case models.String:
		return categoryString, true
	case models.Bool:
		return categoryBool, true
	case models.Int, models.Float:
		return categoryNumber, true
	case models.Array:
		return categoryList, true
	case *models.Object:
		return categoryObject, true
	default: // models.Null and nil
		return 0, false
	}
}

// isIntegral reports whether a number has no fractional part, so 2.0 counts as an integer.
func isIntegral(v models.JSONValue) bool {
	switch n := v.(type) {
	case models.Int:
		return true
	case models.Float:
		f := float64(n)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	}
	return false
}

// classify resolves the type of every observed value of one key. The builder strips
// field-level nulls before calling it, so a null seen here is a list element and
// makes the element type dynamic: a typed element could not hold it.
// listDepth counts how many list levels enclose the values, which matters only for
// naming classes derived from list elements.
func (a *Analyzer) classify(values []models.JSONValue, key string, listDepth int) (models.TypeDescriptor, []models.ClassDef) {
	observed := make([]models.JSONValue, 0, len(values))
	seen := make(map[category]bool)
	hasNull := false
	for _, v := range values {
		c, ok := categoryOf(v)
		if !ok {
			hasNull = true
			continue
		}
		seen[c] = true
		observed = append(observed, v)
	}

	if len(observed) == 0 {
		return models.DynamicType(), nil
	}
	if hasNull {
		a.logger.Debug("null list element, falling back to dynamic", "key", key, "depth", listDepth)
		return models.DynamicType(), nil
	}
	if len(seen) > 1 {
		a.logger.Debug("mixed value kinds, falling back to dynamic", "key", key, "kinds", len(seen))
		return models.DynamicType(), nil
	}

	c, _ := categoryOf(observed[0])
	switch c {
	case categoryString:
		return models.TypeDescriptor{Kind: models.KindString}, nil
	case categoryBool:
		return models.TypeDescriptor{Kind: models.KindBool}, nil
	case categoryNumber:
		for _, v := range observed {
			if !isIntegral(v) {
				return models.TypeDescriptor{Kind: models.KindDouble}, nil
			}
		}
		return models.TypeDescriptor{Kind: models.KindInt}, nil
	case categoryList:
		var items []models.JSONValue
		for _, v := range observed {
			items = append(items, v.(models.Array)...)
		}
		elem, nested := a.classify(items, key, listDepth+1)
		return models.ListOf(elem), nested
	default:
		name := a.uniqueClassName(a.nestedClassName(key, listDepth))
		a.logger.Debug("promoting nested object", "key", key, "class", name, "samples", len(observed))
		return models.ClassType(name), a.buildClass(observed, name)
	}
}

// nestedClassName derives the class name for objects found under key.
func (a *Analyzer) nestedClassName(key string, listDepth int) string {
	name := naming.ClassName(key)
	if listDepth > 0 && a.config.Arrays.SingularizeNames {
		name = naming.Singularize(name)
	}
	return name
}
