package bigint

import (
	"math/bits"
	"slices"
)

// ─────────────────────────────────────────────────────────────────────────────
// Representation
// ─────────────────────────────────────────────────────────────────────────────

const (
	// wordBits is the width of a storage word.
	wordBits = 64

	signBit = uint64(1) << (wordBits - 1)
	allOnes = ^uint64(0)
)

// Int is an arbitrary-precision signed integer.
//
// The zero value is 0 and ready to use. Copying an Int struct by value
// shares its storage; use Clone or Set to obtain an independent copy.
type Int struct {
	// words holds the two's-complement value, least-significant word first.
	// After every exported operation len(words) >= 1 and the sequence is
	// canonical.
	words []uint64
}

// zeroWord backs the read-only view of an uninitialized Int.
var zeroWord = [1]uint64{0}

// w returns a read-only view of the words of x.
func (x *Int) w() []uint64 {
	if len(x.words) == 0 {
		return zeroWord[:]
	}
	return x.words
}

// ensure materializes the zero value so that x.words can be written.
func (x *Int) ensure() {
	if len(x.words) == 0 {
		x.words = []uint64{0}
	}
}

// fill returns the sign-extension word for a value of the given sign.
func fill(negative bool) uint64 {
	if negative {
		return allOnes
	}
	return 0
}

// extend grows w to n words, filling new high words with f.
func extend(w []uint64, n int, f uint64) []uint64 {
	for len(w) < n {
		w = append(w, f)
	}
	return w
}

// norm restores canonical form by dropping redundant sign-extension words
// from the top. A word is dropped only while doing so keeps the sign.
func (z *Int) norm() *Int {
	n := len(z.words)
	if n == 0 {
		z.words = append(z.words, 0)
		return z
	}
	for n > 1 {
		top, next := z.words[n-1], z.words[n-2]
		if (top == 0 && next&signBit == 0) || (top == allOnes && next&signBit != 0) {
			n--
			continue
		}
		break
	}
	z.words = z.words[:n]
	return z
}

// isNormalized reports whether x is already in canonical form.
func (x *Int) isNormalized() bool {
	w := x.w()
	n := len(w)
	if n == 1 {
		return true
	}
	top, next := w[n-1], w[n-2]
	return !(top == 0 && next&signBit == 0) && !(top == allOnes && next&signBit != 0)
}

// log2 returns floor(log2(v)), and 0 for v == 0.
func log2(v uint64) int {
	if v == 0 {
		return 0
	}
	return bits.Len64(v) - 1
}

// leadBit returns the index of the highest bit that is not sign-extension
// fill: the highest 1 bit of a non-negative value, the highest 0 bit of a
// negative one. A most significant word that is exactly 0 or exactly all
// ones is a guard word, so the search moves one word down.
func (x *Int) leadBit() int {
	w := x.w()
	i := len(w) - 1
	if i > 0 && (w[i] == 0 || w[i] == allOnes) {
		i--
	}
	v := w[i]
	if x.IsNegative() {
		v = ^v
	}
	return wordBits*i + log2(v)
}

// zeroed returns an n-word zero value used as scratch space. It is not
// canonical for n > 1 until normalized.
func zeroed(n int) *Int {
	if n < 1 {
		n = 1
	}
	return &Int{words: make([]uint64, n)}
}

// ─────────────────────────────────────────────────────────────────────────────
// Construction
// ─────────────────────────────────────────────────────────────────────────────

// New returns a new Int set to 0.
func New() *Int {
	return &Int{words: []uint64{0}}
}

// FromInt64 returns a new Int set to v.
func FromInt64(v int64) *Int {
	return &Int{words: []uint64{uint64(v)}}
}

// FromInt32 returns a new Int set to v.
func FromInt32(v int32) *Int {
	return FromInt64(int64(v))
}

// FromUint32 returns a new Int set to v.
func FromUint32(v uint32) *Int {
	return &Int{words: []uint64{uint64(v)}}
}

// FromUint64 returns a new Int set to v. Values with the top bit set get a
// zero guard word so that they stay non-negative.
func FromUint64(v uint64) *Int {
	if v&signBit != 0 {
		return &Int{words: []uint64{v, 0}}
	}
	return &Int{words: []uint64{v}}
}

// FromUint64Shifted returns a new Int set to v << k.
func FromUint64Shifted(v uint64, k uint) *Int {
	return FromUint64(v).LshAssign(k)
}

// ─────────────────────────────────────────────────────────────────────────────
// Accessors
// ─────────────────────────────────────────────────────────────────────────────

// IsNegative reports whether x < 0.
func (x *Int) IsNegative() bool {
	w := x.w()
	return w[len(w)-1]&signBit != 0
}

// IsZero reports whether x == 0.
func (x *Int) IsZero() bool {
	w := x.w()
	return len(w) == 1 && w[0] == 0
}

// isOne reports whether x == 1.
func (x *Int) isOne() bool {
	w := x.w()
	return len(w) == 1 && w[0] == 1
}

// Sign returns -1, 0 or +1 depending on the sign of x.
func (x *Int) Sign() int {
	switch {
	case x.IsNegative():
		return -1
	case x.IsZero():
		return 0
	default:
		return 1
	}
}

// Len returns the number of words in the canonical representation of x.
func (x *Int) Len() int {
	return len(x.w())
}

// Words returns a copy of the two's-complement words of x, least-significant
// word first.
func (x *Int) Words() []uint64 {
	return slices.Clone(x.w())
}

// BitLen returns the length of the absolute value of x in bits. The bit
// length of 0 is 0.
func (x *Int) BitLen() int {
	m := x
	if x.IsNegative() {
		m = x.Neg()
	}
	if m.IsZero() {
		return 0
	}
	return m.leadBit() + 1
}

// Clone returns an independent copy of x.
func (x *Int) Clone() *Int {
	return &Int{words: slices.Clone(x.w())}
}

// Abs returns a new Int set to |x|.
func (x *Int) Abs() *Int {
	if x.IsNegative() {
		return x.Neg()
	}
	return x.Clone()
}

// Set sets z to the value of x and returns z. z keeps its own storage.
func (z *Int) Set(x *Int) *Int {
	if z == x {
		z.ensure()
		return z
	}
	z.words = append(z.words[:0], x.w()...)
	return z
}

// take moves the storage of x into z. x must not be used afterwards.
func (z *Int) take(x *Int) *Int {
	z.words = x.words
	x.words = nil
	return z
}
