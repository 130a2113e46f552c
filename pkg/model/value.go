package model

import (
	"encoding/json"
	"fmt"
)

// ValueKind is the shape of a Value's payload. It is distinct from
// DataKind: a color socket and a rotation socket both carry tuple values,
// and an enum property is just a string.
type ValueKind string

const (
	ValueFloat  ValueKind = "float"
	ValueInt    ValueKind = "int"
	ValueBool   ValueKind = "bool"
	ValueString ValueKind = "string"
	ValueTuple  ValueKind = "tuple"
	ValueRef    ValueKind = "ref"
)

// Ref names a host datablock by collection and name, e.g. the object
// "Cube" in bpy.data.objects. Rendered as a lookup expression, never as
// an inline literal.
type Ref struct {
	Collection string `json:"collection" bson:"collection"`
	Name       string `json:"name" bson:"name"`
}

// Value is a tagged variant holding one property or socket-default value.
// Exactly the field matching Kind is meaningful; the zero Value is
// invalid. JSON uses the compact tagged form from MarshalJSON; BSON
// stores the struct as-is, with Kind discriminating.
type Value struct {
	Kind  ValueKind `bson:"kind"`
	Float float64   `bson:"float,omitempty"`
	Int   int64     `bson:"int,omitempty"`
	Bool  bool      `bson:"bool,omitempty"`
	Str   string    `bson:"str,omitempty"`
	Tuple []float64 `bson:"tuple,omitempty"`
	Ref   Ref       `bson:"ref,omitempty"`
}

// Constructors. Snapshot builders should use these rather than filling
// the struct directly so Kind and payload can't drift apart.

func FloatValue(f float64) Value    { return Value{Kind: ValueFloat, Float: f} }
func IntValue(i int64) Value        { return Value{Kind: ValueInt, Int: i} }
func BoolValue(b bool) Value        { return Value{Kind: ValueBool, Bool: b} }
func StringValue(s string) Value    { return Value{Kind: ValueString, Str: s} }
func TupleValue(v ...float64) Value { return Value{Kind: ValueTuple, Tuple: v} }
func RefValue(collection, name string) Value {
	return Value{Kind: ValueRef, Ref: Ref{Collection: collection, Name: name}}
}

// Matches reports whether the value's shape is acceptable for a socket of
// the given data kind. Vector and rotation sockets take 3-tuples, color
// sockets 3- or 4-tuples; reference kinds take refs; everything else maps
// one-to-one.
func (v Value) Matches(k DataKind) bool {
	switch k {
	case KindFloat:
		return v.Kind == ValueFloat || v.Kind == ValueInt
	case KindInt:
		return v.Kind == ValueInt
	case KindBool:
		return v.Kind == ValueBool
	case KindString, KindMenu:
		return v.Kind == ValueString
	case KindVector, KindRotation:
		return v.Kind == ValueTuple && len(v.Tuple) == 3
	case KindColor:
		return v.Kind == ValueTuple && (len(v.Tuple) == 3 || len(v.Tuple) == 4)
	case KindObject, KindImage, KindCollection, KindMaterial:
		return v.Kind == ValueRef
	case KindShader, KindGeometry:
		// Flow kinds carry no default value.
		return false
	}
	return false
}

// jsonValue is the wire form: {"kind": "...", "value": ...}.
type jsonValue struct {
	Kind  ValueKind       `json:"kind" bson:"kind"`
	Value json.RawMessage `json:"value" bson:"value"`
}

// MarshalJSON encodes the value as a kind-tagged object.
func (v Value) MarshalJSON() ([]byte, error) {
	var payload any
	switch v.Kind {
	case ValueFloat:
		payload = v.Float
	case ValueInt:
		payload = v.Int
	case ValueBool:
		payload = v.Bool
	case ValueString:
		payload = v.Str
	case ValueTuple:
		payload = v.Tuple
	case ValueRef:
		payload = v.Ref
	default:
		return nil, fmt.Errorf("marshal value: unknown kind %q", v.Kind)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(jsonValue{Kind: v.Kind, Value: raw})
}

// UnmarshalJSON decodes a kind-tagged object produced by MarshalJSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	var jv jsonValue
	if err := json.Unmarshal(data, &jv); err != nil {
		return err
	}
	out := Value{Kind: jv.Kind}
	var err error
	switch jv.Kind {
	case ValueFloat:
		err = json.Unmarshal(jv.Value, &out.Float)
	case ValueInt:
		err = json.Unmarshal(jv.Value, &out.Int)
	case ValueBool:
		err = json.Unmarshal(jv.Value, &out.Bool)
	case ValueString:
		err = json.Unmarshal(jv.Value, &out.Str)
	case ValueTuple:
		err = json.Unmarshal(jv.Value, &out.Tuple)
	case ValueRef:
		err = json.Unmarshal(jv.Value, &out.Ref)
	default:
		return fmt.Errorf("unmarshal value: unknown kind %q", jv.Kind)
	}
	if err != nil {
		return fmt.Errorf("unmarshal %s value: %w", jv.Kind, err)
	}
	*v = out
	return nil
}

// String renders a short debug form, not the emitted literal.
func (v Value) String() string {
	switch v.Kind {
	case ValueFloat:
		return fmt.Sprintf("float(%g)", v.Float)
	case ValueInt:
		return fmt.Sprintf("int(%d)", v.Int)
	case ValueBool:
		return fmt.Sprintf("bool(%t)", v.Bool)
	case ValueString:
		return fmt.Sprintf("string(%q)", v.Str)
	case ValueTuple:
		return fmt.Sprintf("tuple(%v)", v.Tuple)
	case ValueRef:
		return fmt.Sprintf("ref(%s/%s)", v.Ref.Collection, v.Ref.Name)
	}
	return "invalid"
}
