/*
File    : gomixvm/value/value.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

// Package value implements the tagged-union runtime value model shared by
// the compiler's constant pool and the VM's operand stack.
package value

import (
	"fmt"
	"strconv"
	"strings"
)

// Type tags the variant a Value currently holds.
type Type int

const (
	TypeNil Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
	TypeArray
	TypeMap
	TypeFunction
	TypeClass
	TypeInstance
	TypeNative
)

// NativeFn is the signature every registered native callable implements.
// It receives its already-evaluated argument slice and returns either a
// result Value or an error that the VM surfaces as a runtime error.
type NativeFn func(args []Value) (Value, error)

// Value is a small tagged union. Payloads are carried in concrete fields
// (a string, *Array, *Map, a NativeFn, and a display label for the
// reserved tags); the NativeFn field makes the struct not comparable with
// `==`, so Equal implements the structural-equality rule from the data
// model.
type Value struct {
	typ   Type
	b     bool
	i     int64
	f     float64
	str   string
	arr   *Array
	m     *Map
	nat   NativeFn
	label string // native/function/class/instance display tag
}

// Array is the owned, ordered backing store of an array Value.
type Array struct {
	Elements []Value
}

// Map is the reserved map-literal payload; built by Go-level callers (domain
// natives, tests) through MapOf, never produced at runtime by the in-scope
// compiler.
type Map struct {
	Keys   []Value
	Values []Value
}

func Nil() Value                  { return Value{typ: TypeNil} }
func Bool(b bool) Value           { return Value{typ: TypeBool, b: b} }
func Int(i int64) Value           { return Value{typ: TypeInt, i: i} }
func Float(f float64) Value       { return Value{typ: TypeFloat, f: f} }
func String(s string) Value       { return Value{typ: TypeString, str: s} }
func ArrayOf(elems []Value) Value { return Value{typ: TypeArray, arr: &Array{Elements: elems}} }
func MapOf(m *Map) Value          { return Value{typ: TypeMap, m: m} }

// Native wraps a Go function as a callable Value under the given name. The
// name takes part in Equal; String renders every native as "<native>".
func Native(name string, fn NativeFn) Value {
	return Value{typ: TypeNative, nat: fn, label: name}
}

// Function, Class, and Instance are reserved tags: their shapes are named
// in the data model but never constructed by the in-scope compiler (no
// closures, no classes with methods). FunctionStub/ClassStub/InstanceStub
// exist so the tag is inhabitable by native collaborators that want to hand
// back an opaque reserved value without the VM mistaking it for nil.
func FunctionStub(label string) Value  { return Value{typ: TypeFunction, label: label} }
func ClassStub(label string) Value     { return Value{typ: TypeClass, label: label} }
func InstanceStub(label string) Value  { return Value{typ: TypeInstance, label: label} }

func (v Value) Type() Type { return v.typ }
func (v Value) IsNil() bool { return v.typ == TypeNil }

func (v Value) AsBool() bool     { return v.b }
func (v Value) AsInt() int64     { return v.i }
func (v Value) AsFloat() float64 { return v.f }
func (v Value) AsString() string { return v.str }
func (v Value) AsArray() *Array  { return v.arr }
func (v Value) AsMap() *Map      { return v.m }
func (v Value) AsNative() NativeFn { return v.nat }

// Truthy implements the language's truthiness rule: everything except nil,
// boolean false, and integer zero is truthy.
func (v Value) Truthy() bool {
	switch v.typ {
	case TypeNil:
		return false
	case TypeBool:
		return v.b
	case TypeInt:
		return v.i != 0
	default:
		return true
	}
}

// Equal implements structural equality: distinct type tags are never equal
// (notably int and float never compare equal to each other), primitives
// compare by value, strings by content, arrays and maps by reference
// identity of their backing storage, natives by name and function pointer,
// and the reserved function/class/instance tags by label.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeNil:
		return true
	case TypeBool:
		return v.b == other.b
	case TypeInt:
		return v.i == other.i
	case TypeFloat:
		return v.f == other.f
	case TypeString:
		return v.str == other.str
	case TypeArray:
		return v.arr == other.arr
	case TypeMap:
		return v.m == other.m
	case TypeNative:
		return v.label == other.label && funcsEqual(v.nat, other.nat)
	default:
		return v.label == other.label
	}
}

func funcsEqual(a, b NativeFn) bool {
	return fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b)
}

// String renders v in the canonical form used by PRINT, the native print,
// and str(): nil/bool/int as their literal spelling, float in shortest
// lossless form, string unquoted, every composite/reserved tag as a
// bracketed marker.
func (v Value) String() string {
	switch v.typ {
	case TypeNil:
		return "nil"
	case TypeBool:
		if v.b {
			return "true"
		}
		return "false"
	case TypeInt:
		return strconv.FormatInt(v.i, 10)
	case TypeFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case TypeString:
		return v.str
	case TypeArray:
		return "[array]"
	case TypeMap:
		return "{map}"
	case TypeFunction:
		return "<fn>"
	case TypeNative:
		return "<native>"
	case TypeClass:
		return "<class>"
	case TypeInstance:
		return "<instance>"
	default:
		return "<unknown>"
	}
}

// JoinPrintArgs space-joins the canonical rendering of each argument, the
// shape the native `print(*args)` callable writes.
func JoinPrintArgs(args []Value) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return strings.Join(parts, " ")
}

// Len implements the native `len(v)`: string byte length, array length,
// zero for every other type.
func Len(v Value) int {
	switch v.typ {
	case TypeString:
		return len(v.str)
	case TypeArray:
		return len(v.arr.Elements)
	default:
		return 0
	}
}
