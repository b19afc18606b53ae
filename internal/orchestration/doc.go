// Package orchestration runs an expression on one or more engines
// concurrently and compares their results. Presentation is reached only
// through the ProgressReporter and ResultPresenter interfaces.
package orchestration
