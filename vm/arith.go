/*
File    : gomixvm/vm/arith.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package vm

import (
	"fmt"

	"github.com/akashmaji946/gomixvm/chunk"
	"github.com/akashmaji946/gomixvm/value"
)

// binaryArith pops b then a and applies op, per spec §4.4: Int op Int stays
// Int, Float op Float stays Float, a mixed Int/Float pair promotes to
// Float, and ADD additionally allows String + String as concatenation.
// Every other operand combination is a runtime type error.
func (m *VM) binaryArith(op chunk.OpCode) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}

	if op == chunk.OpAdd && a.Type() == value.TypeString && b.Type() == value.TypeString {
		return m.push(value.String(a.AsString() + b.AsString()))
	}

	if op == chunk.OpMod {
		if a.Type() != value.TypeInt || b.Type() != value.TypeInt {
			return fmt.Errorf("'%%' requires two integers")
		}
		if b.AsInt() == 0 {
			return fmt.Errorf("modulo by zero")
		}
		return m.push(value.Int(a.AsInt() % b.AsInt()))
	}

	aIsNum := a.Type() == value.TypeInt || a.Type() == value.TypeFloat
	bIsNum := b.Type() == value.TypeInt || b.Type() == value.TypeFloat
	if !aIsNum || !bIsNum {
		return fmt.Errorf("arithmetic operand type mismatch")
	}

	if a.Type() == value.TypeInt && b.Type() == value.TypeInt {
		ai, bi := a.AsInt(), b.AsInt()
		switch op {
		case chunk.OpAdd:
			return m.push(value.Int(ai + bi))
		case chunk.OpSub:
			return m.push(value.Int(ai - bi))
		case chunk.OpMul:
			return m.push(value.Int(ai * bi))
		case chunk.OpDiv:
			if bi == 0 {
				return fmt.Errorf("division by zero")
			}
			return m.push(value.Int(ai / bi))
		}
	}

	af, bf := toFloat(a), toFloat(b)
	switch op {
	case chunk.OpAdd:
		return m.push(value.Float(af + bf))
	case chunk.OpSub:
		return m.push(value.Float(af - bf))
	case chunk.OpMul:
		return m.push(value.Float(af * bf))
	case chunk.OpDiv:
		if bf == 0 {
			return fmt.Errorf("division by zero")
		}
		return m.push(value.Float(af / bf))
	}
	return fmt.Errorf("unreachable arithmetic opcode")
}

// compare implements LESS/LESS_EQ/GREATER/GREATER_EQ: both operands must be
// numeric under the same Int/Float promotion rule as binaryArith.
func (m *VM) compare(op chunk.OpCode) error {
	b, err := m.pop()
	if err != nil {
		return err
	}
	a, err := m.pop()
	if err != nil {
		return err
	}
	aIsNum := a.Type() == value.TypeInt || a.Type() == value.TypeFloat
	bIsNum := b.Type() == value.TypeInt || b.Type() == value.TypeFloat
	if !aIsNum || !bIsNum {
		return fmt.Errorf("comparison requires numeric operands")
	}

	var less, equal bool
	if a.Type() == value.TypeInt && b.Type() == value.TypeInt {
		less = a.AsInt() < b.AsInt()
		equal = a.AsInt() == b.AsInt()
	} else {
		af, bf := toFloat(a), toFloat(b)
		less = af < bf
		equal = af == bf
	}

	switch op {
	case chunk.OpLess:
		return m.push(value.Bool(less))
	case chunk.OpLessEq:
		return m.push(value.Bool(less || equal))
	case chunk.OpGreater:
		return m.push(value.Bool(!less && !equal))
	case chunk.OpGreaterEq:
		return m.push(value.Bool(!less))
	}
	return fmt.Errorf("unreachable comparison opcode")
}

func toFloat(v value.Value) float64 {
	if v.Type() == value.TypeInt {
		return float64(v.AsInt())
	}
	return v.AsFloat()
}
