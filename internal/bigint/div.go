package bigint

import "errors"

// ErrDivisionByZero is returned by division and remainder operations with a
// zero divisor. The operands are left untouched.
var ErrDivisionByZero = errors.New("bigint: division by zero")

// Div returns the quotient x / y truncated toward zero.
func (x *Int) Div(y *Int) (*Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	neg := x.IsNegative() != y.IsNegative()
	n, d := x.Abs(), y.Abs()

	var q *Int
	switch {
	case d.isOne():
		q = n
	case d.Cmp(n) > 0:
		q = New()
	default:
		q = quoMagnitude(n, d)
	}

	if neg {
		q.NegAssign()
	}
	return q, nil
}

// Mod returns the remainder x - (x/y)*y. The remainder has the sign of x.
func (x *Int) Mod(y *Int) (*Int, error) {
	_, r, err := x.DivMod(y)
	return r, err
}

// DivMod returns the truncated quotient and the remainder of x / y.
func (x *Int) DivMod(y *Int) (q, r *Int, err error) {
	q, err = x.Div(y)
	if err != nil {
		return nil, nil, err
	}
	r = x.Sub(q.Mul(y))
	return q, r, nil
}

// DivAssign sets z to z / y. On error z is unchanged.
func (z *Int) DivAssign(y *Int) error {
	q, err := z.Div(y)
	if err != nil {
		return err
	}
	z.take(q)
	return nil
}

// ModAssign sets z to z % y. On error z is unchanged.
func (z *Int) ModAssign(y *Int) error {
	r, err := z.Mod(y)
	if err != nil {
		return err
	}
	z.take(r)
	return nil
}

// quoMagnitude divides n by d with shift-and-subtract long division over
// bit positions. Both must be non-negative with 1 < d <= n. n is consumed
// and holds the remainder on return.
//
// The divisor is shifted so that its lead bit lines up with the dividend's.
// Each round backs the shifted divisor off by one bit if it is too large,
// records the shift as a hit (a set quotient bit), subtracts, and re-aligns
// to the new lead bit of the remainder. The loop stops once the remainder's
// lead bit reaches the divisor's own lead bit; a final compare against the
// unshifted divisor settles bit 0.
func quoMagnitude(n, d *Int) *Int {
	base := d.leadBit()
	lead := n.leadBit()
	shift := lead - base

	sd := d.Lsh(uint(shift))
	lead2 := lead
	var hits []int

	for {
		if sd.Cmp(n) > 0 {
			shift--
			sd.RshAssign(1)
			lead2--
		}
		hits = append(hits, shift)
		n.SubAssign(sd)

		lead = n.leadBit()
		if lead <= base {
			break
		}
		gap := lead2 - lead
		sd.RshAssign(uint(gap))
		shift -= gap
		lead2 = lead
	}

	if d.Cmp(n) <= 0 {
		n.SubAssign(d)
		hits = append(hits, 0)
	}

	if len(hits) == 0 {
		return New()
	}
	q := zeroed(hits[0]/wordBits + 2)
	for _, h := range hits {
		q.words[h/wordBits] |= 1 << (h % wordBits)
	}
	return q.norm()
}
