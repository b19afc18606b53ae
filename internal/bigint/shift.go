package bigint

import "slices"

// LshAssign sets z to z << k and returns z. Left shifts never lose bits;
// the word sequence grows as needed.
func (z *Int) LshAssign(k uint) *Int {
	z.ensure()
	if k == 0 || z.IsZero() {
		return z
	}

	neg := z.IsNegative()
	wordShift := int(k / wordBits)
	bitShift := k % wordBits

	if bitShift == 0 {
		z.words = slices.Insert(z.words, 0, make([]uint64, wordShift)...)
		return z
	}

	n := len(z.words)
	z.words = extend(z.words, n+wordShift+1, 0)
	w := z.words
	for i := n - 1; i >= 0; i-- {
		v := w[i]
		w[i+wordShift+1] |= v >> (wordBits - bitShift)
		w[i+wordShift] = v << bitShift
	}
	clear(w[:wordShift])

	// The high bits of the new top word came from a plain right shift, so a
	// negative value lost its sign there.
	if neg && !z.IsNegative() {
		w[len(w)-1] |= allOnes << bitShift
	}
	return z.norm()
}

// RshAssign sets z to z >> k and returns z.
//
// The shift is arithmetic: surviving words are refilled with the sign bit.
// When k exceeds the lead bit location the result collapses to 0. For a
// negative value that is exactly the case where an arithmetic shift would
// give -1, so Rsh never produces -1 from a non-zero shift.
func (z *Int) RshAssign(k uint) *Int {
	z.ensure()
	if k == 0 {
		return z
	}
	if k > uint(z.leadBit()) {
		z.words = append(z.words[:0], 0)
		return z
	}

	neg := z.IsNegative()
	start := int(k / wordBits)
	bitShift := k % wordBits
	w := z.words
	n := len(w)

	for i := start; i < n; i++ {
		v := w[i] >> bitShift
		if bitShift != 0 && i+1 < n {
			v |= w[i+1] << (wordBits - bitShift)
		}
		w[i-start] = v
	}
	z.words = w[:n-start]

	if neg && bitShift != 0 {
		z.words[len(z.words)-1] |= allOnes << (wordBits - bitShift)
	}
	return z.norm()
}

// Lsh returns x << k.
func (x *Int) Lsh(k uint) *Int {
	return x.Clone().LshAssign(k)
}

// Rsh returns x >> k.
func (x *Int) Rsh(k uint) *Int {
	return x.Clone().RshAssign(k)
}
