package bigint

import (
	"math/bits"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestMulWord(t *testing.T) {
	t.Parallel()
	tests := []struct {
		x, y uint64
	}{
		{0, 0},
		{1, allOnes},
		{allOnes, allOnes},
		{signBit, 2},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{0xFFFFFFFF00000000, 0x00000000FFFFFFFF},
		{0x00000001FFFFFFFF, 0xFFFFFFFF00000001},
		{0x123456789ABCDEF0, 0x0FEDCBA987654321},
	}

	for _, tt := range tests {
		hi, lo := mulWord(tt.x, tt.y)
		wantHi, wantLo := bits.Mul64(tt.x, tt.y)
		if hi != wantHi || lo != wantLo {
			t.Errorf("mulWord(%#x, %#x) = (%#x, %#x), want (%#x, %#x)", tt.x, tt.y, hi, lo, wantHi, wantLo)
		}
	}
}

// TestMulWord_PropertyBased checks the three-multiplication identity
// against the hardware 128-bit product.
func TestMulWord_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	properties.Property("mulWord matches bits.Mul64", prop.ForAll(
		func(x, y uint64) bool {
			hi, lo := mulWord(x, y)
			wantHi, wantLo := bits.Mul64(x, y)
			return hi == wantHi && lo == wantLo
		},
		gen.UInt64(),
		gen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestMulScenarios(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b *Int
		want string
	}{
		{"grows to two words", FromUint64(allOnes), FromInt64(2), "36893488147419103230"},
		{"by zero", MustParse("-123456789012345678901234567890"), New(), "0"},
		{"signs", FromInt64(-3), FromInt64(7), "-21"},
		{"both negative", FromInt64(-1 << 63), FromInt64(-1 << 63), "85070591730234615865843651857942052864"},
		{"word powers", FromUint64Shifted(1, 64), FromUint64Shifted(1, 64), "340282366920938463463374607431768211456"},
		{"min int64 by minus one", FromInt64(-1 << 63), FromInt64(-1), "9223372036854775808"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.a.Mul(tt.b)
			if got.String() != tt.want {
				t.Errorf("%v * %v = %v, want %s", tt.a, tt.b, got, tt.want)
			}
			if !got.isNormalized() {
				t.Errorf("%v * %v is not canonical: %#x", tt.a, tt.b, got.words)
			}
		})
	}

	// 0xFFFFFFFFFFFFFFFF * 2 against an independently computed 128-bit
	// product.
	got := FromUint64(allOnes).Mul(FromInt64(2))
	hi, lo := bits.Mul64(allOnes, 2)
	if got.Len() != 2 || got.words[0] != lo || got.words[1] != hi {
		t.Errorf("0xFFFFFFFFFFFFFFFF * 2 words = %#x, want [%#x %#x]", got.words, lo, hi)
	}
}

func TestMulStrategies(t *testing.T) {
	t.Parallel()
	// 1999 nines has 104 words, past the small-operand threshold.
	sizes := []int{1, 19, 20, 300, 950, 1999}
	pos := make([]*Int, len(sizes))
	neg := make([]*Int, len(sizes))
	for i, d := range sizes {
		pos[i] = MustParse(strings.Repeat("9", d))
		neg[i] = MustParse("-" + strings.Repeat("7", d))
	}

	for i, a := range pos {
		for j, b := range neg {
			auto := a.MulUsing(b, MulAuto)
			small := a.MulUsing(b, MulSmall)
			general := a.MulUsing(b, MulGeneral)
			if !auto.Eq(general) || !small.Eq(general) {
				t.Fatalf("strategies disagree for %d x %d digits", sizes[i], sizes[j])
			}
			want := a.Big()
			want.Mul(want, b.Big())
			if !FromBig(want).Eq(general) {
				t.Fatalf("product of %d x %d digits disagrees with math/big", sizes[i], sizes[j])
			}
		}
	}
}

func TestMulStrategyString(t *testing.T) {
	t.Parallel()
	for s, want := range map[MulStrategy]string{MulAuto: "auto", MulSmall: "small", MulGeneral: "general", MulStrategy(9): "unknown"} {
		if got := s.String(); got != want {
			t.Errorf("MulStrategy(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}

func TestPoolIndex(t *testing.T) {
	t.Parallel()
	tests := []struct {
		size int
		want int
	}{
		{0, 0},
		{1, 0},
		{64, 0},
		{65, 1},
		{256, 1},
		{257, 2},
		{1048576, 7},
		{1048577, -1},
	}
	for _, tt := range tests {
		if got := poolIndex(tt.size); got != tt.want {
			t.Errorf("poolIndex(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}

	s := acquireWords(100)
	if len(s) != 100 {
		t.Fatalf("acquireWords(100) len = %d", len(s))
	}
	for i := range s {
		s[i] = allOnes
	}
	releaseWords(s)
	releaseWords(nil)
	for i, v := range acquireWords(100) {
		if v != 0 {
			t.Fatalf("acquireWords returned dirty word at %d", i)
		}
	}
}
