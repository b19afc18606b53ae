package engine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxShift bounds the bit count accepted by shift operations. A shift of
// 2^24 bits already produces a result of roughly five million digits.
const MaxShift = 1 << 24

// ErrInvalidExpression is wrapped by every expression validation error.
var ErrInvalidExpression = errors.New("invalid expression")

// Expression is a single operation on decimal operands. B is ignored for
// unary operations and holds a bit count for shifts.
type Expression struct {
	Op Op
	A  string
	B  string
}

// String renders the expression in the infix form accepted by
// ParseExpression.
func (e Expression) String() string {
	if e.Op.Unary() {
		return "neg " + e.A
	}
	return e.A + " " + e.Op.Symbol() + " " + e.B
}

// ParseExpression parses "a op b" or "neg a". Tokens are separated by
// whitespace; operands are not validated here beyond their presence.
func ParseExpression(s string) (Expression, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 2:
		op, err := ParseOp(fields[0])
		if err != nil || !op.Unary() {
			return Expression{}, fmt.Errorf("%w: expected \"neg <a>\", got %q", ErrInvalidExpression, s)
		}
		return Expression{Op: op, A: fields[1]}, nil
	case 3:
		op, err := ParseOp(fields[1])
		if err != nil {
			return Expression{}, fmt.Errorf("%w: %v", ErrInvalidExpression, err)
		}
		if op.Unary() {
			return Expression{}, fmt.Errorf("%w: %s takes one operand", ErrInvalidExpression, op)
		}
		return Expression{Op: op, A: fields[0], B: fields[2]}, nil
	default:
		return Expression{}, fmt.Errorf("%w: expected \"<a> <op> <b>\", got %q", ErrInvalidExpression, s)
	}
}

// ShiftCount parses the bit count of a shift expression.
func (e Expression) ShiftCount() (uint, error) {
	k, err := strconv.ParseUint(e.B, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: shift count %q is not a non-negative integer", ErrInvalidExpression, e.B)
	}
	if k > MaxShift {
		return 0, fmt.Errorf("%w: shift count %d exceeds %d", ErrInvalidExpression, k, MaxShift)
	}
	return uint(k), nil
}

// OperandDigits returns the digit count of the longest operand, not
// counting a leading '-'.
func (e Expression) OperandDigits() int {
	n := len(strings.TrimPrefix(e.A, "-"))
	if !e.Op.Unary() {
		n = max(n, len(strings.TrimPrefix(e.B, "-")))
	}
	return n
}

// Validate checks operand presence and, when maxDigits > 0, operand length.
func (e Expression) Validate(maxDigits int) error {
	if e.A == "" {
		return fmt.Errorf("%w: missing operand a", ErrInvalidExpression)
	}
	if !e.Op.Unary() && e.B == "" {
		return fmt.Errorf("%w: missing operand b", ErrInvalidExpression)
	}
	if maxDigits > 0 {
		if n := e.OperandDigits(); n > maxDigits {
			return fmt.Errorf("%w: operand has %d digits, limit is %d", ErrInvalidExpression, n, maxDigits)
		}
	}
	if e.Op.IsShift() {
		if _, err := e.ShiftCount(); err != nil {
			return err
		}
	}
	return nil
}
