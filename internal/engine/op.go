package engine

import (
	"fmt"
	"strings"
)

// Op identifies an operation on big integers.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLsh
	OpRsh
	OpOr
	OpAnd
	OpCmp
	OpNeg
)

type opInfo struct {
	name   string
	symbol string
}

var opTable = [...]opInfo{
	OpAdd: {"add", "+"},
	OpSub: {"sub", "-"},
	OpMul: {"mul", "*"},
	OpDiv: {"div", "/"},
	OpMod: {"mod", "%"},
	OpLsh: {"lsh", "<<"},
	OpRsh: {"rsh", ">>"},
	OpOr:  {"or", "|"},
	OpAnd: {"and", "&"},
	OpCmp: {"cmp", "<=>"},
	OpNeg: {"neg", "neg"},
}

// Ops returns every supported operation in declaration order.
func Ops() []Op {
	ops := make([]Op, len(opTable))
	for i := range opTable {
		ops[i] = Op(i)
	}
	return ops
}

// ParseOp accepts either the name ("mul") or the symbol ("*") of an
// operation. Names are case-insensitive.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	for i, info := range opTable {
		if s == info.symbol || strings.EqualFold(s, info.name) {
			return Op(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// String returns the operation name.
func (o Op) String() string {
	if o < 0 || int(o) >= len(opTable) {
		return fmt.Sprintf("Op(%d)", int(o))
	}
	return opTable[o].name
}

// Symbol returns the infix symbol of the operation.
func (o Op) Symbol() string {
	if o < 0 || int(o) >= len(opTable) {
		return "?"
	}
	return opTable[o].symbol
}

// Unary reports whether the operation takes a single operand.
func (o Op) Unary() bool { return o == OpNeg }

// IsShift reports whether the second operand is a bit count.
func (o Op) IsShift() bool { return o == OpLsh || o == OpRsh }
