package models

import (
	"fmt"
	"strings"
)

// ValueKind identifies which variant of a JSON value is populated.
type ValueKind int

const (
	Null ValueKind = iota
	Bool
	Number
	String
	Array
	Object
)

var valueKindNames = map[ValueKind]string{
	Null:   "null",
	Bool:   "boolean",
	Number: "number",
	String: "string",
	Array:  "array",
	Object: "object",
}

func (k ValueKind) String() string {
	if name, ok := valueKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ValueKind(%d)", int(k))
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value JSONValue
}

// JSONValue is a parsed JSON value. Only the fields matching Kind are set.
// Objects keep their members in document order.
type JSONValue struct {
	Kind    ValueKind
	Bool    bool
	Number  string // raw number literal as it appeared in the document
	Str     string
	Items   []JSONValue
	Members []Member
}

// IsInteger reports whether a number literal has neither a fraction nor an exponent.
func (v JSONValue) IsInteger() bool {
	return v.Kind == Number && !strings.ContainsAny(v.Number, ".eE")
}

// Get returns the value stored under key in an object.
func (v JSONValue) Get(key string) (JSONValue, bool) {
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return JSONValue{}, false
}

// Keys returns the object's keys in document order.
func (v JSONValue) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// TypeKind identifies the variant of an InferredType.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeCollection
	TypeClassRef
)

// PrimitiveKind is the scalar type inferred for a JSON value.
type PrimitiveKind int

const (
	Integer PrimitiveKind = iota
	Decimal
	Boolean
	Text
	Guid
	DateTime
	DateOnly
	AnyObject
)

var primitiveNames = map[PrimitiveKind]string{
	Integer:   "Integer",
	Decimal:   "Decimal",
	Boolean:   "Boolean",
	Text:      "String",
	Guid:      "Guid",
	DateTime:  "DateTime",
	DateOnly:  "DateOnly",
	AnyObject: "AnyObject",
}

func (p PrimitiveKind) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PrimitiveKind(%d)", int(p))
}

// InferredType is the type inference assigns to a property: a primitive,
// a collection of some element type, or a reference to a synthesized class.
type InferredType struct {
	Kind      TypeKind
	Primitive PrimitiveKind
	Elem      *InferredType
	ClassName string
}

// PrimitiveType builds a primitive InferredType.
func PrimitiveType(kind PrimitiveKind) InferredType {
	return InferredType{Kind: TypePrimitive, Primitive: kind}
}

// CollectionOf builds a collection InferredType wrapping elem.
func CollectionOf(elem InferredType) InferredType {
	return InferredType{Kind: TypeCollection, Elem: &elem}
}

// ClassRef builds a reference to the synthesized class called name.
func ClassRef(name string) InferredType {
	return InferredType{Kind: TypeClassRef, ClassName: name}
}

// Equal compares two types structurally.
func (t InferredType) Equal(other InferredType) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case TypePrimitive:
		return t.Primitive == other.Primitive
	case TypeClassRef:
		return t.ClassName == other.ClassName
	case TypeCollection:
		if t.Elem == nil || other.Elem == nil {
			return t.Elem == other.Elem
		}
		return t.Elem.Equal(*other.Elem)
	}
	return false
}

// String renders the type for debugging and test output, e.g. Collection<ClassRef(Item)>.
func (t InferredType) String() string {
	switch t.Kind {
	case TypeCollection:
		if t.Elem == nil {
			return "Collection<AnyObject>"
		}
		return "Collection<" + t.Elem.String() + ">"
	case TypeClassRef:
		return "ClassRef(" + t.ClassName + ")"
	default:
		return t.Primitive.String()
	}
}

// Property is one member of a synthesized class. Key is the original JSON key.
type Property struct {
	Key  string
	Type InferredType
}

// ClassDefinition is a class synthesized from one JSON object shape.
type ClassDefinition struct {
	Name    string
	Members []Property
}

// Equivalent reports whether two definitions have the same members in the same order.
// Names are not compared.
func (c ClassDefinition) Equivalent(other ClassDefinition) bool {
	if len(c.Members) != len(other.Members) {
		return false
	}
	for i := range c.Members {
		if c.Members[i].Key != other.Members[i].Key || !c.Members[i].Type.Equal(other.Members[i].Type) {
			return false
		}
	}
	return true
}

// GeneratedModel is the result of inference: the root class plus every
// nested class in the order it was discovered.
type GeneratedModel struct {
	Root       ClassDefinition
	SubClasses []ClassDefinition
}

// Classes returns the root class followed by the sub-classes.
func (m GeneratedModel) Classes() []ClassDefinition {
	classes := make([]ClassDefinition, 0, len(m.SubClasses)+1)
	classes = append(classes, m.Root)
	return append(classes, m.SubClasses...)
}

// Lookup finds a class by name.
func (m GeneratedModel) Lookup(name string) (ClassDefinition, bool) {
	for _, c := range m.Classes() {
		if c.Name == name {
			return c, true
		}
	}
	return ClassDefinition{}, false
}
