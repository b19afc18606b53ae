package bigint

import (
	"slices"
	"testing"
)

func TestAddSub(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		a, b      string
		sum, diff string
	}{
		{"small mixed sign", "5", "-3", "2", "8"},
		{"zero", "0", "0", "0", "0"},
		{"positive overflow grows", "9223372036854775807", "1", "9223372036854775808", "9223372036854775806"},
		{"negative overflow grows", "-9223372036854775808", "-1", "-9223372036854775809", "-9223372036854775807"},
		{"carry across words", "18446744073709551615", "1", "18446744073709551616", "18446744073709551614"},
		{"borrow across words", "18446744073709551616", "-1", "18446744073709551615", "18446744073709551617"},
		{"cancel to zero", "123456789012345678901234567890", "-123456789012345678901234567890", "0", "246913578024691357802469135780"},
		{"shorter negative operand", "340282366920938463463374607431768211456", "-5", "340282366920938463463374607431768211451", "340282366920938463463374607431768211461"},
		{"longer negative operand", "7", "-340282366920938463463374607431768211456", "-340282366920938463463374607431768211449", "340282366920938463463374607431768211463"},
		{"both negative long", "-340282366920938463463374607431768211456", "-18446744073709551616", "-340282366920938463481821351505477763072", "-340282366920938463444927863358058659840"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)

			sum := a.Add(b)
			if sum.String() != tt.sum {
				t.Errorf("%s + %s = %s, want %s", tt.a, tt.b, sum, tt.sum)
			}
			if !sum.isNormalized() {
				t.Errorf("%s + %s is not canonical: %#x", tt.a, tt.b, sum.words)
			}

			diff := a.Sub(b)
			if diff.String() != tt.diff {
				t.Errorf("%s - %s = %s, want %s", tt.a, tt.b, diff, tt.diff)
			}
			if !diff.isNormalized() {
				t.Errorf("%s - %s is not canonical: %#x", tt.a, tt.b, diff.words)
			}

			if a.String() != MustParse(tt.a).String() || b.String() != MustParse(tt.b).String() {
				t.Errorf("operands were mutated: a=%s b=%s", a, b)
			}
		})
	}
}

func TestAddScenario(t *testing.T) {
	t.Parallel()
	if got := FromInt64(5).Add(FromInt64(-3)); !got.Eq(FromInt64(2)) {
		t.Errorf("5 + -3 = %s, want 2", got)
	}
}

func TestNeg(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   *Int
		want []uint64
	}{
		{New(), []uint64{0}},
		{FromInt64(1), []uint64{allOnes}},
		{FromInt64(-1), []uint64{1}},
		{FromInt64(-1 << 63), []uint64{signBit, 0}},
		{FromUint64(signBit), []uint64{signBit}},
		{fromWords(0, 1), []uint64{0, allOnes}},
	}

	for _, tt := range tests {
		got := tt.in.Neg()
		if !slices.Equal(got.words, tt.want) {
			t.Errorf("Neg(%v) words = %#x, want %#x", tt.in, got.words, tt.want)
		}
		if back := got.Neg(); !back.Eq(tt.in) {
			t.Errorf("Neg(Neg(%v)) = %v", tt.in, back)
		}
	}
}

func TestIncDec(t *testing.T) {
	t.Parallel()

	z := FromInt64(-1)
	if got := z.Inc(); got != z || !z.IsZero() {
		t.Errorf("Inc(-1) = %v, want 0 returned as receiver", got)
	}

	z = FromUint64(allOnes)
	old := z.PostInc()
	if old.String() != "18446744073709551615" || z.String() != "18446744073709551616" {
		t.Errorf("PostInc: old=%s new=%s", old, z)
	}

	z = New()
	old = z.PostDec()
	if !old.IsZero() || z.String() != "-1" {
		t.Errorf("PostDec: old=%s new=%s", old, z)
	}

	z = FromInt64(-1 << 63)
	z.Dec()
	if z.String() != "-9223372036854775809" || z.Len() != 2 {
		t.Errorf("Dec(min int64) = %s (%d words)", z, z.Len())
	}
}

func TestSelfAssignment(t *testing.T) {
	t.Parallel()
	big := MustParse("-123456789012345678901234567890")

	tests := []struct {
		name string
		op   func(z *Int)
		want string
	}{
		{"AddAssign", func(z *Int) { z.AddAssign(z) }, "-246913578024691357802469135780"},
		{"SubAssign", func(z *Int) { z.SubAssign(z) }, "0"},
		{"MulAssign", func(z *Int) { z.MulAssign(z) }, "15241578753238836750495351562536198787501905199875019052100"},
		{"DivAssign", func(z *Int) { _ = z.DivAssign(z) }, "1"},
		{"ModAssign", func(z *Int) { _ = z.ModAssign(z) }, "0"},
		{"OrAssign", func(z *Int) { z.OrAssign(z) }, "-123456789012345678901234567890"},
		{"AndAssign", func(z *Int) { z.AndAssign(z) }, "-123456789012345678901234567890"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			z := big.Clone()
			tt.op(z)
			if z.String() != tt.want {
				t.Errorf("%s(z, z) = %s, want %s", tt.name, z, tt.want)
			}
		})
	}
}

func TestCmp(t *testing.T) {
	t.Parallel()
	ordered := []*Int{
		MustParse("-340282366920938463463374607431768211456"),
		MustParse("-18446744073709551616"),
		FromInt64(-1 << 63),
		FromInt64(-2),
		FromInt64(-1),
		New(),
		FromInt64(1),
		FromUint64(signBit - 1),
		FromUint64(signBit),
		FromUint64(allOnes),
		MustParse("340282366920938463463374607431768211456"),
	}

	for i, a := range ordered {
		for j, b := range ordered {
			want := 0
			switch {
			case i < j:
				want = -1
			case i > j:
				want = 1
			}
			if got := a.Cmp(b); got != want {
				t.Errorf("Cmp(%v, %v) = %d, want %d", a, b, got, want)
			}
		}
	}

	a, b := FromInt64(3), FromInt64(4)
	if !a.Lt(b) || !a.Le(b) || a.Gt(b) || a.Ge(b) || a.Eq(b) || !a.Ne(b) {
		t.Error("derived comparisons disagree with Cmp for 3 vs 4")
	}
	if !a.Eq(FromInt64(3)) || !a.Le(a) || !a.Ge(a) {
		t.Error("derived comparisons disagree with Cmp for 3 vs 3")
	}
}
