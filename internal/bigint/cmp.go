package bigint

// Cmp compares x and y and returns -1 if x < y, 0 if x == y and +1 if x > y.
//
// Signs decide first. For equal signs the canonical word count decides,
// since a shorter sequence is always closer to zero. For equal lengths the
// words are compared from the most significant one down as unsigned values,
// which orders two's-complement values of the same sign and width correctly.
func (x *Int) Cmp(y *Int) int {
	xNeg, yNeg := x.IsNegative(), y.IsNegative()
	if xNeg != yNeg {
		if xNeg {
			return -1
		}
		return 1
	}

	xw, yw := x.w(), y.w()
	if len(xw) != len(yw) {
		shorter := len(xw) < len(yw)
		// Shorter is smaller for positives and larger for negatives.
		if shorter != xNeg {
			return -1
		}
		return 1
	}

	for i := len(xw) - 1; i >= 0; i-- {
		if xw[i] != yw[i] {
			if xw[i] < yw[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Eq reports whether x == y.
func (x *Int) Eq(y *Int) bool { return x.Cmp(y) == 0 }

// Ne reports whether x != y.
func (x *Int) Ne(y *Int) bool { return x.Cmp(y) != 0 }

// Lt reports whether x < y.
func (x *Int) Lt(y *Int) bool { return x.Cmp(y) < 0 }

// Le reports whether x <= y.
func (x *Int) Le(y *Int) bool { return x.Cmp(y) <= 0 }

// Gt reports whether x > y.
func (x *Int) Gt(y *Int) bool { return x.Cmp(y) > 0 }

// Ge reports whether x >= y.
func (x *Int) Ge(y *Int) bool { return x.Cmp(y) >= 0 }
