package prim

// BinaryOperator enumerates the binary operators of the expression
// sub-language, ordered here from lowest to highest precedence. The Pratt
// parser in package parser climbs by each operator's Precedence.
type BinaryOperator uint8

const (
	OpLogicalOr BinaryOperator = iota
	OpLogicalAnd
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessThanOrEqual
	OpGreaterThan
	OpGreaterThanOrEqual
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// String returns the operator's HCL source spelling.
func (op BinaryOperator) String() string {
	switch op {
	case OpLogicalOr:
		return "||"
	case OpLogicalAnd:
		return "&&"
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpLessThan:
		return "<"
	case OpLessThanOrEqual:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterThanOrEqual:
		return ">="
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpMod:
		return "%"
	default:
		return "<invalid operator>"
	}
}

// precedence maps each operator to its binding strength: higher binds
// tighter. Ties are resolved left-associatively by the Pratt parser.
var precedence = map[BinaryOperator]int{
	OpLogicalOr:          1,
	OpLogicalAnd:         2,
	OpEqual:              3,
	OpNotEqual:           3,
	OpLessThan:           4,
	OpLessThanOrEqual:    4,
	OpGreaterThan:        4,
	OpGreaterThanOrEqual: 4,
	OpAdd:                5,
	OpSub:                5,
	OpMul:                6,
	OpDiv:                6,
	OpMod:                6,
}

// Precedence returns op's binding strength; higher binds tighter.
func (op BinaryOperator) Precedence() int {
	return precedence[op]
}

// UnaryOperator enumerates the unary prefix operators.
type UnaryOperator uint8

const (
	OpNot UnaryOperator = iota
	OpNegate
)

// String returns the operator's HCL source spelling.
func (op UnaryOperator) String() string {
	switch op {
	case OpNot:
		return "!"
	case OpNegate:
		return "-"
	default:
		return "<invalid operator>"
	}
}
