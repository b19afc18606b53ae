// Package engine evaluates single big-integer expressions through
// interchangeable implementations: the native bigint package with each of
// its multiplication strategies, math/big as a reference, and optionally
// GMP. Engines are looked up by name through a Factory so that the CLI,
// the TUI and the HTTP server can run one or all of them.
package engine
