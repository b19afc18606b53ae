package bigint

import "math/bits"

// one is a shared read-only operand for Inc and Dec.
var one = &Int{words: []uint64{1}}

// AddAssign sets z to z + y and returns z.
//
// Missing high words of the shorter operand act as its sign fill. When the
// operands have the same sign and the sum's sign flips, a sentinel word of
// the correct sign is appended. Mixed-sign sums cannot overflow and are only
// normalized.
func (z *Int) AddAssign(y *Int) *Int {
	z.ensure()
	if z == y {
		y = y.Clone()
	}

	zNeg, yNeg := z.IsNegative(), y.IsNegative()
	yw := y.w()
	yFill := fill(yNeg)
	z.words = extend(z.words, len(yw), fill(zNeg))

	var carry uint64
	for i := range z.words {
		if i >= len(yw) {
			// Past y the remaining words are unchanged once the carry and
			// the fill cancel out.
			if (yFill == 0 && carry == 0) || (yFill == allOnes && carry == 1) {
				break
			}
			z.words[i], carry = bits.Add64(z.words[i], yFill, carry)
			continue
		}
		z.words[i], carry = bits.Add64(z.words[i], yw[i], carry)
	}

	if zNeg == yNeg && z.IsNegative() != zNeg {
		z.words = append(z.words, fill(zNeg))
	}
	return z.norm()
}

// SubAssign sets z to z - y and returns z.
//
// It mirrors AddAssign with a borrow in place of the carry. Overflow is only
// possible when the operands have different signs, in which case the result
// keeps the sign of z.
func (z *Int) SubAssign(y *Int) *Int {
	z.ensure()
	if z == y {
		z.words = append(z.words[:0], 0)
		return z
	}

	zNeg, yNeg := z.IsNegative(), y.IsNegative()
	yw := y.w()
	yFill := fill(yNeg)
	z.words = extend(z.words, len(yw), fill(zNeg))

	var borrow uint64
	for i := range z.words {
		if i >= len(yw) {
			if (yFill == 0 && borrow == 0) || (yFill == allOnes && borrow == 1) {
				break
			}
			z.words[i], borrow = bits.Sub64(z.words[i], yFill, borrow)
			continue
		}
		z.words[i], borrow = bits.Sub64(z.words[i], yw[i], borrow)
	}

	if zNeg != yNeg && z.IsNegative() != zNeg {
		z.words = append(z.words, fill(zNeg))
	}
	return z.norm()
}

// NegAssign sets z to -z and returns z.
//
// Every word is complemented and 1 is added with carry propagation across
// the whole sequence. Negating the most negative value of a given width
// needs one more word.
func (z *Int) NegAssign() *Int {
	z.ensure()
	if z.IsZero() {
		return z
	}
	wasNeg := z.IsNegative()

	carry := uint64(1)
	for i, v := range z.words {
		z.words[i], carry = bits.Add64(^v, 0, carry)
	}

	if z.IsNegative() == wasNeg {
		z.words = append(z.words, fill(!wasNeg))
	}
	return z.norm()
}

// Inc sets z to z + 1 and returns z.
func (z *Int) Inc() *Int {
	return z.AddAssign(one)
}

// Dec sets z to z - 1 and returns z.
func (z *Int) Dec() *Int {
	return z.SubAssign(one)
}

// PostInc increments z and returns a copy of its value before the increment.
func (z *Int) PostInc() *Int {
	old := z.Clone()
	z.Inc()
	return old
}

// PostDec decrements z and returns a copy of its value before the decrement.
func (z *Int) PostDec() *Int {
	old := z.Clone()
	z.Dec()
	return old
}

// Add returns x + y.
func (x *Int) Add(y *Int) *Int {
	return x.Clone().AddAssign(y)
}

// Sub returns x - y.
func (x *Int) Sub(y *Int) *Int {
	return x.Clone().SubAssign(y)
}

// Neg returns -x.
func (x *Int) Neg() *Int {
	return x.Clone().NegAssign()
}
