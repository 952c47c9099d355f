package bridge

import (
	"github.com/bytedance/sonic"
)

// Kind discriminates the variants of a decoded JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindObject
	KindArray
)

// Value is a structural view of a decoded JSON tree. Payload inspection
// walks this tree instead of type-asserting raw interface values.
type Value struct {
	Kind Kind
	Bool bool
	Num  float64
	Str  string
	Obj  map[string]Value
	Arr  []Value
}

// Null is the zero Value.
var Null = Value{Kind: KindNull}

// FromJSON decodes a JSON document into a Value tree.
func FromJSON(data []byte) (Value, error) {
	var raw interface{}
	if err := sonic.Unmarshal(data, &raw); err != nil {
		return Null, err
	}
	return fromInterface(raw), nil
}

func fromInterface(raw interface{}) Value {
	switch v := raw.(type) {
	case nil:
		return Null
	case bool:
		return Value{Kind: KindBool, Bool: v}
	case float64:
		return Value{Kind: KindNumber, Num: v}
	case string:
		return Value{Kind: KindString, Str: v}
	case map[string]interface{}:
		obj := make(map[string]Value, len(v))
		for k, item := range v {
			obj[k] = fromInterface(item)
		}
		return Value{Kind: KindObject, Obj: obj}
	case []interface{}:
		arr := make([]Value, len(v))
		for i, item := range v {
			arr[i] = fromInterface(item)
		}
		return Value{Kind: KindArray, Arr: arr}
	default:
		return Null
	}
}

// Interface converts the value back to the generic form sonic produces,
// for re-encoding into outbound payloads.
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	case KindObject:
		obj := make(map[string]interface{}, len(v.Obj))
		for k, item := range v.Obj {
			obj[k] = item.Interface()
		}
		return obj
	case KindArray:
		arr := make([]interface{}, len(v.Arr))
		for i, item := range v.Arr {
			arr[i] = item.Interface()
		}
		return arr
	default:
		return nil
	}
}

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Field returns the named field of an object value, or Null.
func (v Value) Field(name string) Value {
	if v.Kind != KindObject {
		return Null
	}
	field, ok := v.Obj[name]
	if !ok {
		return Null
	}
	return field
}

// Path walks nested object fields and returns Null if any hop is missing.
func (v Value) Path(names ...string) Value {
	cur := v
	for _, name := range names {
		cur = cur.Field(name)
	}
	return cur
}

// String returns the string payload and whether the value is a string.
func (v Value) String() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Str, true
}

// Number returns the numeric payload and whether the value is a number.
func (v Value) Number() (float64, bool) {
	if v.Kind != KindNumber {
		return 0, false
	}
	return v.Num, true
}
