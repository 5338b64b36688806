package models

// Kind is the inferred category of a field or list element.
type Kind int

const (
	KindDynamic Kind = iota // untyped or ambiguous
	KindString
	KindBool
	KindInt
	KindDouble
	KindList
	KindClass
)

var kindNames = map[Kind]string{
	KindDynamic: "dynamic",
	KindString:  "string",
	KindBool:    "bool",
	KindInt:     "int",
	KindDouble:  "double",
	KindList:    "list",
	KindClass:   "class",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// TypeDescriptor describes the resolved type of a field.
// Elem is set for KindList; ClassName is set for KindClass.
type TypeDescriptor struct {
	Kind      Kind
	Elem      *TypeDescriptor
	ClassName string
}

// IsPrimitive reports whether values of this type need no conversion when
// moving between JSON maps and class instances.
func (t TypeDescriptor) IsPrimitive() bool {
	switch t.Kind {
	case KindString, KindBool, KindInt, KindDouble, KindDynamic:
		return true
	}
	return false
}

// ContainsClass reports whether the type is a class or a (possibly nested) list of classes.
func (t TypeDescriptor) ContainsClass() bool {
	switch t.Kind {
	case KindClass:
		return true
	case KindList:
		return t.Elem != nil && t.Elem.ContainsClass()
	}
	return false
}

// DynamicType returns the untyped descriptor.
func DynamicType() TypeDescriptor {
	return TypeDescriptor{Kind: KindDynamic}
}

// ListOf returns a list descriptor with the given element type.
func ListOf(elem TypeDescriptor) TypeDescriptor {
	return TypeDescriptor{Kind: KindList, Elem: &elem}
}

// ClassType returns a descriptor referencing a named class.
func ClassType(name string) TypeDescriptor {
	return TypeDescriptor{Kind: KindClass, ClassName: name}
}

// FieldDef is one field of a generated class.
type FieldDef struct {
	Name     string // formatted per naming convention
	JSONKey  string // literal key from the JSON samples
	Type     TypeDescriptor
	Nullable bool
}

// ClassDef is one generated class.
type ClassDef struct {
	Name   string
	Fields []FieldDef
	IsRoot bool
}

// AnalysisResult holds every class discovered for one generation call, nested
// classes ahead of the class that references them.
type AnalysisResult struct {
	Classes []ClassDef
}

// Root returns the root class, if present.
func (r AnalysisResult) Root() (ClassDef, bool) {
	for _, c := range r.Classes {
		if c.IsRoot {
			return c, true
		}
	}
	return ClassDef{}, false
}

// Reversed returns a copy of the result with the class order reversed.
func (r AnalysisResult) Reversed() AnalysisResult {
	out := make([]ClassDef, len(r.Classes))
	for i, c := range r.Classes {
		out[len(r.Classes)-1-i] = c
	}
	return AnalysisResult{Classes: out}
}
