package circuit

import (
	"fmt"
	"strconv"
)

type OperandKind int

const (
	OperandAbsent OperandKind = iota
	OperandLiteral
	OperandReference
)

// Operand is one input of a wire: a literal, a reference to another wire, or
// nothing at all for the unused side of a unary op.
type Operand struct {
	Kind  OperandKind
	Value uint16
	Name  string
}

func Literal(v uint16) Operand { return Operand{Kind: OperandLiteral, Value: v} }

func Reference(name string) Operand { return Operand{Kind: OperandReference, Name: name} }

func Absent() Operand { return Operand{} }

func (o Operand) IsReference() bool { return o.Kind == OperandReference }

func (o Operand) String() string {
	switch o.Kind {
	case OperandLiteral:
		return strconv.FormatUint(uint64(o.Value), 10)
	case OperandReference:
		return o.Name
	default:
		return ""
	}
}

type Op int

const (
	OpPassthrough Op = iota
	OpNot
	OpAnd
	OpOr
	OpShiftLeft
	OpShiftRight
)

var opNames = map[Op]string{
	OpPassthrough: "PASS",
	OpNot:         "NOT",
	OpAnd:         "AND",
	OpOr:          "OR",
	OpShiftLeft:   "LSHIFT",
	OpShiftRight:  "RSHIFT",
}

func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Op(%d)", int(o))
}

// Unary reports whether the op reads only the left operand.
func (o Op) Unary() bool { return o == OpPassthrough || o == OpNot }

// NodeSpec is the parsed definition of a single wire.
type NodeSpec struct {
	Left  Operand
	Right Operand
	Op    Op
}

// Eval applies the op to already resolved operand values.
func (s NodeSpec) Eval(left, right uint16) uint16 {
	switch s.Op {
	case OpPassthrough:
		return left
	case OpNot:
		return ^left
	case OpAnd:
		return left & right
	case OpOr:
		return left | right
	case OpShiftLeft:
		if right >= 16 {
			return 0
		}
		return left << right
	case OpShiftRight:
		if right >= 16 {
			return 0
		}
		return left >> right
	}
	panic(fmt.Sprintf("circuit: unknown op %d", int(s.Op)))
}

// Operands returns the live operands in evaluation order.
func (s NodeSpec) Operands() []Operand {
	if s.Op.Unary() {
		return []Operand{s.Left}
	}
	return []Operand{s.Left, s.Right}
}

// Deps returns the names of the wires this spec reads.
func (s NodeSpec) Deps() []string {
	var out []string
	for _, o := range s.Operands() {
		if o.IsReference() {
			out = append(out, o.Name)
		}
	}
	return out
}

// String renders the spec back into rule text.
func (s NodeSpec) String() string {
	switch s.Op {
	case OpPassthrough:
		return s.Left.String()
	case OpNot:
		return "NOT " + s.Left.String()
	default:
		return s.Left.String() + " " + s.Op.String() + " " + s.Right.String()
	}
}
