package engine

import (
	"context"
	"fmt"
	"math/big"

	"github.com/agbru/bigcalc/internal/bigint"
)

// BigEngine evaluates expressions with math/big. It serves as the reference
// the native engines are compared against, and follows the same contracts:
// truncated division and the collapse of right shifts that would yield -1.
type BigEngine struct{}

// Name implements Engine.
func (BigEngine) Name() string { return "big" }

// Evaluate implements Engine.
func (BigEngine) Evaluate(ctx context.Context, e Expression) (Result, error) {
	return evaluateAsync(ctx, func() (Result, error) {
		a, b, shift, err := parseOperands(e, parseBig)
		if err != nil {
			return Result{}, err
		}
		z, err := applyBig(e.Op, a, b, shift)
		if err != nil {
			return Result{}, err
		}
		return bigResult(z), nil
	})
}

// parseBig accepts exactly the syntax of bigint.Parse. math/big alone would
// also take '+' and '_' separators.
func parseBig(s string) (*big.Int, error) {
	if err := bigint.CheckSyntax(s); err != nil {
		return nil, err
	}
	z, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", bigint.ErrMalformedInput, s)
	}
	return z, nil
}

var minusOne = big.NewInt(-1)

func applyBig(op Op, a, b *big.Int, shift uint) (*big.Int, error) {
	z := new(big.Int)
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
		if shift > 0 && z.Cmp(minusOne) == 0 {
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

func bigResult(z *big.Int) Result {
	// The two's-complement width of x < 0 is governed by ^x = |x| - 1.
	m := z
	if z.Sign() < 0 {
		m = new(big.Int).Not(z)
	}
	return Result{Value: z.String(), Bits: z.BitLen(), Words: wordsForBits(m.BitLen())}
}
