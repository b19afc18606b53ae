// Package sysmon samples host-wide CPU and memory load. The calculator
// shows it next to evaluation timings so that a slow result can be told
// apart from a busy machine.
package sysmon

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/agbru/bigcalc/internal/format"
)

// Stats is one snapshot of host load. Percentages lie in [0, 100].
type Stats struct {
	CPUPercent float64
	MemPercent float64
	MemUsed    uint64
	MemTotal   uint64
}

// Sample reads the current host load. CPU usage is measured since the
// previous call, so the first sample of a process may read 0. Fields that
// cannot be read are left at zero.
func Sample(ctx context.Context) Stats {
	var s Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		s.CPUPercent = clampPercent(pcts[0])
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil && vm != nil {
		s.MemPercent = clampPercent(vm.UsedPercent)
		s.MemUsed, s.MemTotal = vm.Used, vm.Total
	}
	return s
}

// String renders the snapshot for a status line.
func (s Stats) String() string {
	out := fmt.Sprintf("cpu %.0f%% mem %.0f%%", s.CPUPercent, s.MemPercent)
	if s.MemTotal > 0 {
		out += fmt.Sprintf(" (%s / %s)", format.FormatBytes(s.MemUsed), format.FormatBytes(s.MemTotal))
	}
	return out
}

func clampPercent(p float64) float64 {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}
