package engine

import (
	"context"
	"fmt"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
)

// Result is the outcome of evaluating an expression.
type Result struct {
	// Value is the canonical decimal rendering of the result.
	Value string
	// Bits is the bit length of the absolute value of the result.
	Bits int
	// Words is the number of 64-bit words in the canonical two's-complement
	// form of the result.
	Words int
}

// Engine evaluates expressions with a particular integer implementation.
type Engine interface {
	// Name returns the registry key of the engine.
	Name() string
	// Evaluate computes e. Malformed operands are reported as
	// apperrors.OperandError; a zero divisor as bigint.ErrDivisionByZero.
	Evaluate(ctx context.Context, e Expression) (Result, error)
}

// wordsForBits returns the canonical two's-complement word count of a value
// whose magnitude needs bits bits. For negative values the magnitude is
// that of ^x (which is |x|-1).
func wordsForBits(bits int) int {
	return bits/64 + 1
}

// evaluateAsync runs fn on its own goroutine so that a deadline interrupts
// the wait. fn is expected to poll ctx in its long loops; a single
// arithmetic operation still runs to completion, which the operand digit
// limit keeps short.
func evaluateAsync(ctx context.Context, fn func() (Result, error)) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	type outcome struct {
		res Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := fn()
		done <- outcome{res, err}
	}()
	select {
	case o := <-done:
		return o.res, o.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// operandError wraps a parse failure with the name of the operand.
// Context errors pass through unchanged.
func operandError(name, value string, err error) error {
	if apperrors.IsContextError(err) {
		return err
	}
	return apperrors.OperandError{Operand: name, Value: value, Cause: err}
}

// parseOperands converts the operands of e with parse. b is left zero for
// unary operations; shifts yield a bit count instead.
func parseOperands[T any](e Expression, parse func(string) (T, error)) (a, b T, shift uint, err error) {
	if a, err = parse(e.A); err != nil {
		return a, b, 0, operandError("a", e.A, err)
	}
	switch {
	case e.Op.Unary():
	case e.Op.IsShift():
		if shift, err = e.ShiftCount(); err != nil {
			return a, b, 0, operandError("b", e.B, err)
		}
	default:
		if b, err = parse(e.B); err != nil {
			return a, b, 0, operandError("b", e.B, err)
		}
	}
	return a, b, shift, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Native Engine
// ─────────────────────────────────────────────────────────────────────────────

// NativeEngine evaluates expressions with the bigint package.
type NativeEngine struct {
	name     string
	strategy bigint.MulStrategy
}

// NewNativeEngine returns an engine that multiplies with the given strategy.
func NewNativeEngine(name string, strategy bigint.MulStrategy) *NativeEngine {
	return &NativeEngine{name: name, strategy: strategy}
}

// Name implements Engine.
func (n *NativeEngine) Name() string { return n.name }

// Strategy returns the multiplication strategy of the engine.
func (n *NativeEngine) Strategy() bigint.MulStrategy { return n.strategy }

// Evaluate implements Engine. Parsing and rendering run on the worker
// goroutine and stop early once ctx is done.
func (n *NativeEngine) Evaluate(ctx context.Context, e Expression) (Result, error) {
	return evaluateAsync(ctx, func() (Result, error) {
		parse := func(s string) (*bigint.Int, error) { return bigint.ParseContext(ctx, s) }
		a, b, shift, err := parseOperands(e, parse)
		if err != nil {
			return Result{}, err
		}
		z, err := n.apply(e.Op, a, b, shift)
		if err != nil {
			return Result{}, err
		}
		return nativeResult(ctx, z)
	})
}

func (n *NativeEngine) apply(op Op, a, b *bigint.Int, shift uint) (*bigint.Int, error) {
	switch op {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.MulUsing(b, n.strategy), nil
	case OpDiv:
		return a.Div(b)
	case OpMod:
		return a.Mod(b)
	case OpLsh:
		return a.Lsh(shift), nil
	case OpRsh:
		return a.Rsh(shift), nil
	case OpOr:
		return a.Or(b), nil
	case OpAnd:
		return a.And(b), nil
	case OpCmp:
		return bigint.FromInt64(int64(a.Cmp(b))), nil
	case OpNeg:
		return a.Neg(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported operation %s", ErrInvalidExpression, op)
	}
}

func nativeResult(ctx context.Context, z *bigint.Int) (Result, error) {
	value, err := z.StringContext(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Value: value, Bits: z.BitLen(), Words: z.Len()}, nil
}
