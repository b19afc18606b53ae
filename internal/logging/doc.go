// Package logging provides the logging interface shared by the calculator's
// components. It abstracts the underlying implementation so that engines,
// the HTTP server and the memory controller log consistently, backed by
// zerolog in production and by the standard library logger in tests.
package logging
