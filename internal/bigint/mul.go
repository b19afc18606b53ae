package bigint

import "math/bits"

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication Tuning
// ─────────────────────────────────────────────────────────────────────────────

const (
	// SmallMulWords is the operand size, in words, up to which multiplication
	// runs entirely on fixed-capacity stack buffers. Both operands must be
	// at or below it.
	SmallMulWords = 50

	halfBits = wordBits / 2
	halfMask = uint64(1)<<halfBits - 1
)

// MulStrategy selects the buffer strategy of a multiplication. Every
// strategy produces the same product.
type MulStrategy int

const (
	// MulAuto uses stack buffers when both operands fit, heap otherwise.
	MulAuto MulStrategy = iota
	// MulSmall prefers stack buffers and falls back to the general path
	// for operands larger than SmallMulWords.
	MulSmall
	// MulGeneral always uses pooled heap buffers.
	MulGeneral
)

// String returns the strategy name.
func (s MulStrategy) String() string {
	switch s {
	case MulAuto:
		return "auto"
	case MulSmall:
		return "small"
	case MulGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Word-pair Product
// ─────────────────────────────────────────────────────────────────────────────

// mulWord returns the 128-bit product of x and y as (hi, lo) using three
// 32x32-bit multiplications.
//
// With x = a·2^32 + b and y = c·2^32 + d:
//
//	z2 = a·c
//	z0 = b·d
//	z1 = (b-a)·(c-d) + z2 + z0 = a·d + b·c
//	x·y = z2·2^64 + z1·2^32 + z0
//
// (b-a)·(c-d) may be negative and z1 needs 65 bits, so z1 is accumulated
// in two words from a sign and a magnitude.
func mulWord(x, y uint64) (hi, lo uint64) {
	a, b := x>>halfBits, x&halfMask
	c, d := y>>halfBits, y&halfMask

	z2 := a * c
	z0 := b * d

	u, uNeg := absDiff(b, a)
	v, vNeg := absDiff(c, d)
	p := u * v

	z1, z1hi := bits.Add64(z2, z0, 0)
	if uNeg != vNeg {
		var borrow uint64
		z1, borrow = bits.Sub64(z1, p, 0)
		z1hi -= borrow
	} else {
		var carry uint64
		z1, carry = bits.Add64(z1, p, 0)
		z1hi += carry
	}

	var carry uint64
	lo, carry = bits.Add64(z0, z1<<halfBits, 0)
	hi, _ = bits.Add64(z2, z1>>halfBits|z1hi<<halfBits, carry)
	return hi, lo
}

// absDiff returns |p-q| and whether p-q is negative.
func absDiff(p, q uint64) (uint64, bool) {
	if p >= q {
		return p - q, false
	}
	return q - p, true
}

// partialAdd adds the 128-bit value hi:lo into z at word offset at and
// propagates the carry upward. Words are treated as unsigned; polarity is
// only restored once every partial product has been summed.
func partialAdd(z []uint64, at int, hi, lo uint64) {
	var c uint64
	z[at], c = bits.Add64(z[at], lo, 0)
	z[at+1], c = bits.Add64(z[at+1], hi, c)
	for k := at + 2; c != 0; k++ {
		if k >= len(z) {
			panic("bigint: partial product carry ran past the end of the result")
		}
		z[k], c = bits.Add64(z[k], 0, c)
	}
}

// mulWords sets z to the unsigned product of x and y. z must be zeroed and
// hold len(x)+len(y) words.
func mulWords(z, x, y []uint64) {
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j, yj := range y {
			if yj == 0 {
				continue
			}
			hi, lo := mulWord(xi, yj)
			partialAdd(z, i+j, hi, lo)
		}
	}
}

// magnitudeInto writes |src| into dst as an unsigned word sequence without
// high zero words and returns the filled prefix of dst. dst must hold
// len(src) words; the magnitude of any n-word value fits in n unsigned words.
func magnitudeInto(dst, src []uint64) []uint64 {
	dst = dst[:len(src)]
	copy(dst, src)
	if src[len(src)-1]&signBit != 0 {
		carry := uint64(1)
		for i, v := range dst {
			dst[i], carry = bits.Add64(^v, 0, carry)
		}
	}
	for len(dst) > 1 && dst[len(dst)-1] == 0 {
		dst = dst[:len(dst)-1]
	}
	return dst
}

// fromMagnitude returns the Int for an unsigned product, negated if neg.
func fromMagnitude(mag []uint64, neg bool) *Int {
	words := make([]uint64, len(mag)+1)
	copy(words, mag)
	z := (&Int{words: words}).norm()
	if neg {
		z.NegAssign()
	}
	return z
}

// ─────────────────────────────────────────────────────────────────────────────
// Multiplication
// ─────────────────────────────────────────────────────────────────────────────

// MulUsing returns x * y computed with strategy s.
func (x *Int) MulUsing(y *Int, s MulStrategy) *Int {
	if x.IsZero() || y.IsZero() {
		return New()
	}
	neg := x.IsNegative() != y.IsNegative()
	xw, yw := x.w(), y.w()

	if s != MulGeneral && len(xw) <= SmallMulWords && len(yw) <= SmallMulWords {
		return mulSmall(xw, yw, neg)
	}
	return mulGeneral(xw, yw, neg)
}

// mulSmall multiplies operands of at most SmallMulWords words on stack
// buffers.
func mulSmall(xw, yw []uint64, neg bool) *Int {
	var xa, ya [SmallMulWords]uint64
	var za [2 * SmallMulWords]uint64

	xm := magnitudeInto(xa[:], xw)
	ym := magnitudeInto(ya[:], yw)
	zm := za[:len(xm)+len(ym)]
	mulWords(zm, xm, ym)
	return fromMagnitude(zm, neg)
}

// mulGeneral multiplies operands of any size on pooled scratch buffers.
func mulGeneral(xw, yw []uint64, neg bool) *Int {
	xs := acquireWords(len(xw))
	defer releaseWords(xs)
	ys := acquireWords(len(yw))
	defer releaseWords(ys)

	xm := magnitudeInto(xs, xw)
	ym := magnitudeInto(ys, yw)

	zs := acquireWords(len(xm) + len(ym))
	defer releaseWords(zs)
	mulWords(zs, xm, ym)
	return fromMagnitude(zs, neg)
}

// Mul returns x * y.
func (x *Int) Mul(y *Int) *Int {
	return x.MulUsing(y, MulAuto)
}

// MulAssign sets z to z * y and returns z.
func (z *Int) MulAssign(y *Int) *Int {
	return z.take(z.MulUsing(y, MulAuto))
}
