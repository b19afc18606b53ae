package bigint

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrMalformedInput is wrapped by every *SyntaxError.
var ErrMalformedInput = errors.New("bigint: malformed decimal input")

// SyntaxError describes why a decimal string was rejected.
type SyntaxError struct {
	Input  string // the rejected input
	Offset int    // byte offset of the offending character, -1 if the input is incomplete
	Char   byte   // the offending character, 0 if the input is incomplete
}

func (e *SyntaxError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("bigint: malformed decimal input %q: no digits", e.Input)
	}
	return fmt.Sprintf("bigint: malformed decimal input %q: unexpected %q at offset %d", e.Input, e.Char, e.Offset)
}

func (e *SyntaxError) Unwrap() error { return ErrMalformedInput }

// ─────────────────────────────────────────────────────────────────────────────
// Decimal Digit Arithmetic
// ─────────────────────────────────────────────────────────────────────────────

// digits is a non-negative decimal number, least-significant digit first,
// without high zero digits except for the single digit of zero.
type digits []uint8

// trimDigits drops high zero digits.
func trimDigits(d digits) digits {
	for len(d) > 1 && d[len(d)-1] == 0 {
		d = d[:len(d)-1]
	}
	return d
}

// cmpDigits compares two trimmed digit sequences.
func cmpDigits(a, b digits) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// doubleDigits returns 2*d, reusing the storage of d.
func doubleDigits(d digits) digits {
	var carry uint8
	for i, v := range d {
		v = 2*v + carry
		d[i], carry = v%10, v/10
	}
	if carry != 0 {
		d = append(d, carry)
	}
	return d
}

// halveDigits returns floor(d/2), reusing the storage of d.
func halveDigits(d digits) digits {
	var rem uint8
	for i := len(d) - 1; i >= 0; i-- {
		v := d[i] + 10*rem
		d[i], rem = v/2, v%2
	}
	return trimDigits(d)
}

// addDigits returns a+b, reusing the storage of a.
func addDigits(a, b digits) digits {
	var carry uint8
	for i := 0; i < len(b) || carry != 0; i++ {
		if i == len(a) {
			a = append(a, 0)
		}
		v := a[i] + carry
		if i < len(b) {
			v += b[i]
		}
		a[i], carry = v%10, v/10
	}
	return a
}

// subDigits returns a-b for a >= b, reusing the storage of a.
func subDigits(a, b digits) digits {
	var borrow uint8
	for i := 0; i < len(a) && (i < len(b) || borrow != 0); i++ {
		sub := borrow
		if i < len(b) {
			sub += b[i]
		}
		if a[i] < sub {
			a[i], borrow = a[i]+10-sub, 1
		} else {
			a[i], borrow = a[i]-sub, 0
		}
	}
	return trimDigits(a)
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsing
// ─────────────────────────────────────────────────────────────────────────────

// CheckSyntax reports whether s is a well-formed decimal integer: an
// optional leading '-' followed by one or more decimal digits. It returns
// a *SyntaxError for any other input and does no conversion.
func CheckSyntax(s string) error {
	body, off := s, 0
	if strings.HasPrefix(s, "-") {
		body, off = s[1:], 1
	}
	if body == "" {
		return &SyntaxError{Input: s, Offset: -1}
	}
	for i := 0; i < len(body); i++ {
		if c := body[i]; c < '0' || c > '9' {
			return &SyntaxError{Input: s, Offset: i + off, Char: c}
		}
	}
	return nil
}

// Parse returns the Int represented by s. Input that CheckSyntax rejects is
// rejected as a whole with a *SyntaxError. Leading zeros are accepted.
func Parse(s string) (*Int, error) {
	return ParseContext(context.Background(), s)
}

// ParseContext is like Parse but gives up with ctx.Err() once ctx is done.
// Conversion time grows quadratically with the length of s.
func ParseContext(ctx context.Context, s string) (*Int, error) {
	if err := CheckSyntax(s); err != nil {
		return nil, err
	}
	body := s
	neg := strings.HasPrefix(s, "-")
	if neg {
		body = s[1:]
	}

	target := make(digits, len(body))
	for i := 0; i < len(body); i++ {
		target[len(body)-1-i] = body[i] - '0'
	}
	target = trimDigits(target)

	z, err := digitsToInt(ctx, target)
	if err != nil {
		return nil, err
	}
	if neg {
		z.NegAssign()
	}
	return z, nil
}

// MustParse is like Parse but panics if s is malformed.
func MustParse(s string) *Int {
	z, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return z
}

// digitsToInt converts a non-negative decimal number to binary.
//
// A power of two is doubled until it exceeds the target and halved back
// once. Walking bit positions downward, each power that still fits into
// the remaining target is subtracted and its bit set. ctx is polled once
// per word of output.
func digitsToInt(ctx context.Context, target digits) (*Int, error) {
	if len(target) == 1 && target[0] == 0 {
		return New(), nil
	}

	pow := digits{1}
	bit := 0
	for cmpDigits(pow, target) <= 0 {
		if bit%wordBits == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		pow = doubleDigits(pow)
		bit++
	}
	pow = halveDigits(pow)
	bit--

	z := zeroed(bit/wordBits + 2)
	for ; bit >= 0; bit-- {
		if bit%wordBits == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if cmpDigits(pow, target) <= 0 {
			target = subDigits(target, pow)
			z.words[bit/wordBits] |= 1 << (bit % wordBits)
		}
		pow = halveDigits(pow)
	}
	return z.norm(), nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Rendering
// ─────────────────────────────────────────────────────────────────────────────

// String returns the canonical decimal representation of x: no leading
// zeros except for "0" itself and a leading '-' for negative values.
func (x *Int) String() string {
	str, _ := x.StringContext(context.Background())
	return str
}

// StringContext is like String but gives up with ctx.Err() once ctx is
// done. Rendering time grows quadratically with the bit length of x.
func (x *Int) StringContext(ctx context.Context) (string, error) {
	m, neg := x, x.IsNegative()
	if neg {
		m = x.Neg()
	}

	acc := digits{0}
	pow := digits{1}
	w := m.w()
	top := m.leadBit()
	for bit := 0; bit <= top; bit++ {
		if bit%wordBits == 0 {
			if err := ctx.Err(); err != nil {
				return "", err
			}
		}
		if w[bit/wordBits]>>(bit%wordBits)&1 == 1 {
			acc = addDigits(acc, pow)
		}
		pow = doubleDigits(pow)
	}
	acc = trimDigits(acc)

	var sb strings.Builder
	sb.Grow(len(acc) + 1)
	if neg {
		sb.WriteByte('-')
	}
	for i := len(acc) - 1; i >= 0; i-- {
		sb.WriteByte('0' + acc[i])
	}
	return sb.String(), nil
}

// Dump renders every word of x as a 64-character binary string, most
// significant word first, one line per word.
func (x *Int) Dump() string {
	w := x.w()
	var sb strings.Builder
	sb.Grow(len(w) * (wordBits + 1))
	for i := len(w) - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%064b\n", w[i])
	}
	return sb.String()
}

// Format implements fmt.Formatter for the verbs 'd', 's' and 'v'. Width and
// the '-' flag are honoured.
func (x *Int) Format(s fmt.State, verb rune) {
	switch verb {
	case 'd', 's', 'v':
		str := x.String()
		if w, ok := s.Width(); ok && len(str) < w {
			pad := strings.Repeat(" ", w-len(str))
			if s.Flag('-') {
				str += pad
			} else {
				str = pad + str
			}
		}
		fmt.Fprint(s, str)
	default:
		fmt.Fprintf(s, "%%!%c(bigint.Int=%s)", verb, x.String())
	}
}

// MarshalText implements encoding.TextMarshaler.
func (x *Int) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Int) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	z.take(v)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// math/big Bridge
// ─────────────────────────────────────────────────────────────────────────────

// FromBig returns a new Int with the value of b.
func FromBig(b *big.Int) *Int {
	buf := b.Bytes()
	words := make([]uint64, len(buf)/8+2)
	for i, c := range buf {
		pos := len(buf) - 1 - i
		words[pos/8] |= uint64(c) << (8 * (pos % 8))
	}
	z := (&Int{words: words}).norm()
	if b.Sign() < 0 {
		z.NegAssign()
	}
	return z
}

// Big returns x as a *big.Int.
func (x *Int) Big() *big.Int {
	m := x.Abs().w()
	buf := make([]byte, 8*len(m))
	for i, v := range m {
		for j := 0; j < 8; j++ {
			buf[len(buf)-1-(8*i+j)] = byte(v >> (8 * j))
		}
	}
	b := new(big.Int).SetBytes(buf)
	if x.IsNegative() {
		b.Neg(b)
	}
	return b
}
