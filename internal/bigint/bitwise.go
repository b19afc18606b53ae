package bigint

// OrAssign sets z to z | y and returns z.
//
// Words beyond the shorter operand act as its sign fill, so OR-ing with a
// shorter negative operand turns the excess high words of z into all ones.
func (z *Int) OrAssign(y *Int) *Int {
	z.ensure()
	if z == y {
		return z
	}

	yw := y.w()
	yNeg := y.IsNegative()
	z.words = extend(z.words, len(yw), fill(z.IsNegative()))

	for i := range z.words {
		switch {
		case i < len(yw):
			z.words[i] |= yw[i]
		case yNeg:
			z.words[i] = allOnes
		default:
			return z.norm()
		}
	}
	return z.norm()
}

// AndAssign sets z to z & y and returns z.
//
// AND-ing with a shorter non-negative operand truncates the excess high
// words of z; a shorter negative operand leaves them untouched.
func (z *Int) AndAssign(y *Int) *Int {
	z.ensure()
	if z.IsZero() || y.IsZero() {
		z.words = append(z.words[:0], 0)
		return z
	}
	if z == y {
		return z
	}

	yw := y.w()
	yNeg := y.IsNegative()
	z.words = extend(z.words, len(yw), fill(z.IsNegative()))

	for i := range z.words {
		if i >= len(yw) {
			if !yNeg {
				z.words = z.words[:i]
			}
			break
		}
		z.words[i] &= yw[i]
	}
	return z.norm()
}

// Or returns x | y.
func (x *Int) Or(y *Int) *Int {
	return x.Clone().OrAssign(y)
}

// And returns x & y.
func (x *Int) And(y *Int) *Int {
	return x.Clone().AndAssign(y)
}
