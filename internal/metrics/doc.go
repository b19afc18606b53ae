// Package metrics collects runtime memory snapshots and exports evaluation
// metrics in the Prometheus format.
package metrics
