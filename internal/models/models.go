package models

// JSONValue is a closed union of the values a JSON document can hold.
// The concrete types are Null, Bool, Int, Float, String, Array and *Object.
type JSONValue interface {
	jsonValue()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Int is a JSON number written without a fraction or exponent that fits in an int64.
type Int int64

// Float is any other JSON number.
type Float float64

// String is a JSON string.
type String string

// Array is a JSON array.
type Array []JSONValue

// Object is a JSON object that remembers the order its keys first appeared in.
type Object struct {
	Keys   []string
	Values map[string]JSONValue
}

func (Null) jsonValue()    {}
func (Bool) jsonValue()    {}
func (Int) jsonValue()     {}
func (Float) jsonValue()   {}
func (String) jsonValue()  {}
func (Array) jsonValue()   {}
func (*Object) jsonValue() {}

// NewObject creates an empty ordered object.
func NewObject() *Object {
	return &Object{Values: make(map[string]JSONValue)}
}

// Set stores a value. A repeated key keeps its original position and takes the new value.
func (o *Object) Set(key string, value JSONValue) {
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// Get returns the value stored under key and whether the key was present.
func (o *Object) Get(key string) (JSONValue, bool) {
	v, ok := o.Values[key]
	return v, ok
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	return len(o.Keys)
}

// IntermediateRepresentation holds the parsed JSON document handed to the analyzer.
type IntermediateRepresentation struct {
	Root        JSONValue
	RootIsArray bool // True if the root of the JSON is an array vs an object
}

// Samples returns the structural samples of the root class: every element of a root
// array, or the root value itself.
func (ir IntermediateRepresentation) Samples() []JSONValue {
	if arr, ok := ir.Root.(Array); ok {
		return arr
	}
	if ir.Root == nil {
		return []JSONValue{Null{}}
	}
	return []JSONValue{ir.Root}
}
