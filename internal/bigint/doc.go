// Package bigint implements an arbitrary-precision signed integer stored as a
// contiguous sequence of 64-bit words in two's complement, least-significant
// word first.
//
// Every exported operation leaves its result in canonical form: the word
// sequence is the shortest one that represents the value, zero is a single
// zero word, and the sign is the top bit of the most significant word.
//
// The API is two-tiered. Value-returning methods (Add, Sub, Mul, Div, ...)
// never touch their operands and return a freshly allocated Int. Mutating
// methods (AddAssign, SubAssign, MulAssign, DivAssign, ...) rewrite the
// receiver in place and tolerate the argument being the receiver itself.
//
// An Int is not safe for concurrent mutation. Distinct Int values never share
// storage, so different goroutines may work on different values freely.
package bigint
