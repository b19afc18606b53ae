// Package memory controls the garbage collector around evaluations whose
// operands are large enough for collection pauses to dominate.
package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector behavior during an evaluation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoDigits is the combined operand length, in decimal digits, from
// which the auto mode suspends collection.
const GCAutoDigits = 200_000

// memoryLimitFactor caps the heap at this multiple of the memory obtained
// from the OS when collection is suspended.
const memoryLimitFactor = 3

// GCController suspends the garbage collector for the duration of an
// evaluation and restores it afterwards.
type GCController struct {
	mode          GCMode
	active        bool
	savedPercent  int
	logger        zerolog.Logger
	before, after runtime.MemStats
}

// GCStats summarizes the allocation activity between Begin and End.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController returns a controller for the given mode. operandDigits
// is the combined length of the operands and only matters in auto mode.
func NewGCController(mode string, operandDigits int) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = operandDigits >= GCAutoDigits
	}
	return gc
}

// SetLogger sets the logger receiving debug events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will suspend collection.
func (gc *GCController) Active() bool { return gc.active }

// Begin suspends collection and installs a soft memory limit as a safety
// net against runaway growth.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.before)
	gc.savedPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.before.Sys) * memoryLimitFactor; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.before.HeapAlloc).
		Msg("gc suspended")
}

// End restores the collector settings and runs a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	runtime.ReadMemStats(&gc.after)
	debug.SetGCPercent(gc.savedPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	s := gc.Stats()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", s.HeapAlloc).
		Uint64("total_alloc_bytes", s.TotalAlloc).
		Uint32("gc_cycles", s.NumGC).
		Msg("gc restored")
}

// Stats returns the difference between the Begin and End snapshots.
func (gc *GCController) Stats() GCStats {
	return GCStats{
		HeapAlloc:    gc.after.HeapAlloc,
		TotalAlloc:   gc.after.TotalAlloc - gc.before.TotalAlloc,
		NumGC:        gc.after.NumGC - gc.before.NumGC,
		PauseTotalNs: gc.after.PauseTotalNs - gc.before.PauseTotalNs,
	}
}
