package generator

import (
	"fmt"

	"github.com/mcncl/jsontodart/internal/models"
	"github.com/mcncl/jsontodart/internal/naming"
)

const jsonMap = "Map<String, dynamic>"

// dartType renders a type descriptor as Dart source.
func dartType(t models.TypeDescriptor) string {
	switch t.Kind {
	case models.KindString:
		return "String"
	case models.KindBool:
		return "bool"
	case models.KindInt:
		return "int"
	case models.KindDouble:
		return "double"
	case models.KindList:
		if t.Elem == nil {
			return "List<dynamic>"
		}
		return "List<" + dartType(*t.Elem) + ">"
	case models.KindClass:
		return t.ClassName
	default:
		return "dynamic"
	}
}

// fieldType renders a field's declared type. dynamic already admits null and never gets a '?'.
func fieldType(f models.FieldDef) string {
	typ := dartType(f.Type)
	if f.Nullable && f.Type.Kind != models.KindDynamic {
		return typ + "?"
	}
	return typ
}

// defaultLiteral returns the fallback literal for a type. Lists use the const form in
// constructor defaults only. Class and dynamic types have no default.
func defaultLiteral(t models.TypeDescriptor, constForm bool) (string, bool) {
	switch t.Kind {
	case models.KindString:
		return "''", true
	case models.KindInt:
		return "0", true
	case models.KindDouble:
		return "0.0", true
	case models.KindBool:
		return "false", true
	case models.KindList:
		if constForm {
			return "const []", true
		}
		return "[]", true
	}
	return "", false
}

// fromJSONExpr builds the expression reading one field out of the json map.
// Non-nullable fields always get a type-safe fallback so a missing key cannot
// produce null.
func fromJSONExpr(f models.FieldDef) string {
	access := fmt.Sprintf("json[%s]", naming.DartString(f.JSONKey))

	var expr string
	switch f.Type.Kind {
	case models.KindInt:
		expr = fmt.Sprintf("(%s as num?)?.toInt()", access)
	case models.KindDouble:
		expr = fmt.Sprintf("(%s as num?)?.toDouble()", access)
	case models.KindString, models.KindBool:
		expr = fmt.Sprintf("%s as %s?", access, dartType(f.Type))
	case models.KindClass:
		if f.Nullable {
			return fmt.Sprintf("%s == null ? null : %s.fromJson(%s as %s)", access, f.Type.ClassName, access, jsonMap)
		}
		return fmt.Sprintf("%s.fromJson(%s as %s)", f.Type.ClassName, access, jsonMap)
	case models.KindList:
		expr = fmt.Sprintf("(%s as List<dynamic>?)%s", access, listFromJSON(f.Type, "?.", 0))
	default:
		return access
	}

	if !f.Nullable {
		if lit, ok := defaultLiteral(f.Type, false); ok {
			expr += " ?? " + lit
		}
	}
	return expr
}

// listFromJSON renders the conversion applied to a List<dynamic>. access is the
// member access operator, "?." for the nullable outer list.
func listFromJSON(t models.TypeDescriptor, access string, depth int) string {
	if t.Elem == nil || t.Elem.Kind == models.KindDynamic {
		return access + "toList()"
	}
	param := lambdaParam(depth)
	return fmt.Sprintf("%smap((%s) => %s).toList()", access, param, elementFromJSON(param, *t.Elem, depth))
}

func elementFromJSON(v string, t models.TypeDescriptor, depth int) string {
	switch t.Kind {
	case models.KindInt:
		return fmt.Sprintf("(%s as num).toInt()", v)
	case models.KindDouble:
		return fmt.Sprintf("(%s as num).toDouble()", v)
	case models.KindString, models.KindBool:
		return fmt.Sprintf("%s as %s", v, dartType(t))
	case models.KindClass:
		return fmt.Sprintf("%s.fromJson(%s as %s)", t.ClassName, v, jsonMap)
	case models.KindList:
		return fmt.Sprintf("(%s as List<dynamic>)%s", v, listFromJSON(t, ".", depth+1))
	default:
		return v
	}
}

// toJSONExpr builds the map value written for one field. Primitives pass through as-is.
func toJSONExpr(f models.FieldDef) string {
	if !f.Type.ContainsClass() {
		return f.Name
	}
	access := "."
	if f.Nullable {
		access = "?."
	}
	return elementToJSON(f.Name, access, f.Type, 0)
}

func elementToJSON(v, access string, t models.TypeDescriptor, depth int) string {
	if t.Kind == models.KindClass {
		return v + access + "toJson()"
	}
	param := lambdaParam(depth)
	return fmt.Sprintf("%s%smap((%s) => %s).toList()", v, access, param, elementToJSON(param, ".", *t.Elem, depth+1))
}

func lambdaParam(depth int) string {
	if depth == 0 {
		return "e"
	}
	return fmt.Sprintf("e%d", depth)
}
