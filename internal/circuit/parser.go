package circuit

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseOperand classifies a token. Anything that is not an unsigned 16-bit
// decimal is taken as a wire name.
func ParseOperand(tok string) Operand {
	v, err := strconv.ParseUint(tok, 10, 16)
	if err != nil {
		return Reference(tok)
	}
	return Literal(uint16(v))
}

// ParseOp maps a binary operator keyword to its Op.
func ParseOp(s string) (Op, error) {
	switch s {
	case "AND":
		return OpAnd, nil
	case "OR":
		return OpOr, nil
	case "LSHIFT":
		return OpShiftLeft, nil
	case "RSHIFT":
		return OpShiftRight, nil
	}
	return 0, fmt.Errorf("%w: unknown operator %q", ErrInvalidInput, s)
}

// ParseRule parses the left-hand side of a netlist line:
//
//	x            passthrough
//	NOT x        complement
//	x AND y      binary op (AND, OR, LSHIFT, RSHIFT)
func ParseRule(text string) (NodeSpec, error) {
	parts := strings.Fields(text)
	switch len(parts) {
	case 1:
		return NodeSpec{Left: ParseOperand(parts[0]), Right: Absent(), Op: OpPassthrough}, nil
	case 2:
		// parts[0] is the NOT keyword; it carries no information.
		return NodeSpec{Left: ParseOperand(parts[1]), Right: Absent(), Op: OpNot}, nil
	case 3:
		op, err := ParseOp(parts[1])
		if err != nil {
			return NodeSpec{}, err
		}
		return NodeSpec{Left: ParseOperand(parts[0]), Right: ParseOperand(parts[2]), Op: op}, nil
	}
	return NodeSpec{}, fmt.Errorf("%w: expected 1 to 3 tokens, got %d in %q", ErrInvalidInput, len(parts), text)
}
