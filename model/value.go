package model

import "reflect"

// Kind tags which payload a Value carries.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindObject
	KindBool
	KindInteger
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	default:
		return "invalid"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	switch s {
	case "object":
		return KindObject, true
	case "bool":
		return KindBool, true
	case "integer":
		return KindInteger, true
	default:
		return KindInvalid, false
	}
}

// Value is a stored preference. It holds exactly one of an opaque object,
// a boolean or an integer; reading it as another kind yields the zero
// payload of that kind.
type Value struct {
	kind    Kind
	object  interface{}
	boolean bool
	integer int
}

func ObjectValue(v interface{}) Value {
	return Value{kind: KindObject, object: v}
}

func BoolValue(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

func IntegerValue(i int) Value {
	return Value{kind: KindInteger, integer: i}
}

func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v was built by one of the constructors.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

func (v Value) Object() (interface{}, bool) {
	if v.kind != KindObject {
		return nil, false
	}

	return v.object, true
}

func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}

	return v.boolean, true
}

func (v Value) Integer() (int, bool) {
	if v.kind != KindInteger {
		return 0, false
	}

	return v.integer, true
}

// Payload returns whatever v carries, untyped.
func (v Value) Payload() interface{} {
	switch v.kind {
	case KindObject:
		return v.object
	case KindBool:
		return v.boolean
	case KindInteger:
		return v.integer
	default:
		return nil
	}
}

// Equal compares kind and payload. Object payloads are compared deeply.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case KindObject:
		return reflect.DeepEqual(v.object, o.object)
	case KindBool:
		return v.boolean == o.boolean
	case KindInteger:
		return v.integer == o.integer
	default:
		return true
	}
}
