package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot is a reading of the runtime statistics that matter for
// large integer workloads.
type MemorySnapshot struct {
	HeapAlloc    uint64
	HeapSys      uint64
	HeapObjects  uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// MemoryCollector exports heap statistics under the bigcalc namespace. A
// scrape reads runtime.MemStats once for all of its gauges.
type MemoryCollector struct {
	heapAlloc   *prometheus.Desc
	heapSys     *prometheus.Desc
	heapObjects *prometheus.Desc
	gcPause     *prometheus.Desc
}

var _ prometheus.Collector = (*MemoryCollector)(nil)

// NewMemoryCollector creates the collector.
func NewMemoryCollector() *MemoryCollector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, "", name), help, nil, nil)
	}
	return &MemoryCollector{
		heapAlloc:   desc("heap_alloc_bytes", "Bytes of allocated heap objects."),
		heapSys:     desc("heap_sys_bytes", "Bytes of heap memory obtained from the OS."),
		heapObjects: desc("heap_objects", "Number of allocated heap objects."),
		gcPause:     desc("gc_pause_seconds_total", "Cumulative stop-the-world GC pause time."),
	}
}

// Snapshot reads the current statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Describe implements prometheus.Collector.
func (mc *MemoryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- mc.heapAlloc
	ch <- mc.heapSys
	ch <- mc.heapObjects
	ch <- mc.gcPause
}

// Collect implements prometheus.Collector.
func (mc *MemoryCollector) Collect(ch chan<- prometheus.Metric) {
	s := mc.Snapshot()
	ch <- prometheus.MustNewConstMetric(mc.heapAlloc, prometheus.GaugeValue, float64(s.HeapAlloc))
	ch <- prometheus.MustNewConstMetric(mc.heapSys, prometheus.GaugeValue, float64(s.HeapSys))
	ch <- prometheus.MustNewConstMetric(mc.heapObjects, prometheus.GaugeValue, float64(s.HeapObjects))
	ch <- prometheus.MustNewConstMetric(mc.gcPause, prometheus.CounterValue, float64(s.PauseTotalNs)/1e9)
}
