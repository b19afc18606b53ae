//go:build gmp

package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ncw/gmp"

	"github.com/agbru/bigcalc/internal/bigint"
)

// GMPEngine evaluates expressions with the GNU Multiple Precision library.
// It requires cgo and libgmp and is only built with the "gmp" tag.
type GMPEngine struct{}

func init() {
	optionalEngines = append(optionalEngines, GMPEngine{})
}

// Name implements Engine.
func (GMPEngine) Name() string { return "gmp" }

// Evaluate implements Engine.
func (GMPEngine) Evaluate(ctx context.Context, e Expression) (Result, error) {
	return evaluateAsync(ctx, func() (Result, error) {
		a, b, shift, err := parseOperands(e, parseGMP)
		if err != nil {
			return Result{}, err
		}
		z, err := applyGMP(e.Op, a, b, shift)
		if err != nil {
			return Result{}, err
		}
		r, ok := new(big.Int).SetString(z.String(), 10)
		if !ok {
			return Result{}, fmt.Errorf("gmp produced unparsable output %q", z.String())
		}
		return bigResult(r), nil
	})
}

func parseGMP(s string) (*gmp.Int, error) {
	if err := bigint.CheckSyntax(s); err != nil {
		return nil, err
	}
	z, ok := new(gmp.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", bigint.ErrMalformedInput, s)
	}
	return z, nil
}

func applyGMP(op Op, a, b *gmp.Int, shift uint) (*gmp.Int, error) {
	z := new(gmp.Int)
	switch op {
	case OpAdd:
		return z.Add(a, b), nil
	case OpSub:
		return z.Sub(a, b), nil
	case OpMul:
		return z.Mul(a, b), nil
	case OpDiv:
		if b.Sign() == 0 {
			return nil, bigint.ErrDivisionByZero
		}
		return z.Quo(a, b), nil
	case OpMod:
		if b.Sign() == 0 {
			return nil, bigint.ErrDivisionByZero
		}
		return z.Rem(a, b), nil
	case OpLsh:
		return z.Lsh(a, shift), nil
	case OpRsh:
		z.Rsh(a, shift)
		if shift > 0 && z.Cmp(gmp.NewInt(-1)) == 0 {
			z.SetInt64(0)
		}
		return z, nil
	case OpOr:
		return z.Or(a, b), nil
	case OpAnd:
		return z.And(a, b), nil
	case OpCmp:
		return z.SetInt64(int64(a.Cmp(b))), nil
	case OpNeg:
		return z.Neg(a), nil
	default:
		return nil, fmt.Errorf("%w: unsupported operation %s", ErrInvalidExpression, op)
	}
}
