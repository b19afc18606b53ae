package bigint

import (
	"slices"
	"testing"
)

// fromWords builds a canonical Int from raw two's-complement words.
func fromWords(ws ...uint64) *Int {
	if len(ws) == 0 {
		return New()
	}
	return (&Int{words: slices.Clone(ws)}).norm()
}

func TestConstructors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		got  *Int
		want []uint64
	}{
		{"New", New(), []uint64{0}},
		{"FromInt64 positive", FromInt64(42), []uint64{42}},
		{"FromInt64 negative", FromInt64(-1), []uint64{allOnes}},
		{"FromInt32 negative", FromInt32(-2), []uint64{allOnes - 1}},
		{"FromUint32 max", FromUint32(^uint32(0)), []uint64{0xFFFFFFFF}},
		{"FromUint64 below sign bit", FromUint64(signBit - 1), []uint64{signBit - 1}},
		{"FromUint64 sign bit gets guard", FromUint64(signBit), []uint64{signBit, 0}},
		{"FromUint64 max gets guard", FromUint64(allOnes), []uint64{allOnes, 0}},
		{"FromUint64Shifted", FromUint64Shifted(1, 64), []uint64{0, 1}},
		{"FromUint64Shifted top bit", FromUint64Shifted(1, 127), []uint64{0, signBit, 0}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !slices.Equal(tt.got.Words(), tt.want) {
				t.Errorf("words = %#x, want %#x", tt.got.Words(), tt.want)
			}
		})
	}
}

func TestNorm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		in   []uint64
		want []uint64
	}{
		{"empty becomes zero", nil, []uint64{0}},
		{"redundant zeros", []uint64{5, 0, 0}, []uint64{5}},
		{"zero guard kept", []uint64{signBit, 0}, []uint64{signBit, 0}},
		{"redundant ones", []uint64{allOnes, allOnes, allOnes}, []uint64{allOnes}},
		{"ones guard kept", []uint64{signBit - 1, allOnes}, []uint64{signBit - 1, allOnes}},
		{"ones dropped above negative word", []uint64{signBit, allOnes}, []uint64{signBit}},
		{"interior zeros kept", []uint64{0, 0, 1}, []uint64{0, 0, 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := (&Int{words: slices.Clone(tt.in)}).norm()
			if !slices.Equal(z.words, tt.want) {
				t.Errorf("norm(%#x) = %#x, want %#x", tt.in, z.words, tt.want)
			}
			if !z.isNormalized() {
				t.Errorf("norm(%#x) is not normalized", tt.in)
			}
			before := slices.Clone(z.words)
			if !slices.Equal(z.norm().words, before) {
				t.Errorf("norm is not idempotent for %#x", tt.in)
			}
		})
	}
}

func TestLeadBit(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		x    *Int
		want int
	}{
		{"zero", New(), 0},
		{"one", FromInt64(1), 0},
		{"two", FromInt64(2), 1},
		{"256", FromInt64(256), 8},
		{"zero guard skipped", FromUint64(signBit), 63},
		{"second word", fromWords(0, 1), 64},
		{"2^130", FromUint64Shifted(1, 130), 130},
		{"minus one", FromInt64(-1), 0},
		{"minus five", FromInt64(-5), 2},
		{"min int64", FromInt64(-1 << 63), 62},
		{"ones guard skipped", fromWords(0, allOnes), 63},
		{"ones guard over small word", fromWords(5, allOnes), 63},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.x.leadBit(); got != tt.want {
				t.Errorf("leadBit(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestZeroValue(t *testing.T) {
	t.Parallel()
	var z Int
	if !z.IsZero() || z.Sign() != 0 || z.Len() != 1 {
		t.Fatalf("zero value: IsZero=%v Sign=%d Len=%d", z.IsZero(), z.Sign(), z.Len())
	}
	if z.String() != "0" {
		t.Errorf("zero value String() = %q, want \"0\"", z.String())
	}
	z.AddAssign(FromInt64(7))
	if z.String() != "7" {
		t.Errorf("zero value after AddAssign(7) = %s, want 7", &z)
	}
}

func TestOwnership(t *testing.T) {
	t.Parallel()

	x := FromInt64(10)
	c := x.Clone()
	c.AddAssign(FromInt64(1))
	if x.String() != "10" {
		t.Errorf("Clone shares storage: original became %s", x)
	}

	ws := x.Words()
	ws[0] = 99
	if x.String() != "10" {
		t.Errorf("Words shares storage: original became %s", x)
	}

	var z Int
	z.Set(x)
	z.Inc()
	if x.String() != "10" || z.String() != "11" {
		t.Errorf("Set shares storage: x=%s z=%s", x, &z)
	}

	y := FromInt64(3)
	_ = x.Add(y)
	_ = x.Mul(y)
	_, _ = x.Div(y)
	_ = x.Lsh(70)
	_ = x.Rsh(1)
	if x.String() != "10" || y.String() != "3" {
		t.Errorf("pure operations mutated operands: x=%s y=%s", x, y)
	}
}

func TestSignAndBitLen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x      *Int
		sign   int
		bitLen int
	}{
		{New(), 0, 0},
		{FromInt64(1), 1, 1},
		{FromInt64(-1), -1, 1},
		{FromInt64(255), 1, 8},
		{FromInt64(-256), -1, 9},
		{FromUint64(allOnes), 1, 64},
		{FromInt64(-1 << 63), -1, 64},
		{FromUint64Shifted(1, 200), 1, 201},
	}

	for _, tt := range tests {
		if got := tt.x.Sign(); got != tt.sign {
			t.Errorf("Sign(%v) = %d, want %d", tt.x, got, tt.sign)
		}
		if got := tt.x.BitLen(); got != tt.bitLen {
			t.Errorf("BitLen(%v) = %d, want %d", tt.x, got, tt.bitLen)
		}
	}
}
