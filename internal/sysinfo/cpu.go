// Package sysinfo reports the host capabilities shown alongside detailed
// results: processor count and the CPU features relevant to multi-word
// arithmetic.
package sysinfo

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sys/cpu"
)

// Info describes the host.
type Info struct {
	GOOS     string
	GOARCH   string
	NumCPU   int
	Features []string
}

var (
	once   sync.Once
	cached Info
)

// Host returns the host description, detected once.
func Host() Info {
	once.Do(func() {
		cached = Info{
			GOOS:     runtime.GOOS,
			GOARCH:   runtime.GOARCH,
			NumCPU:   runtime.NumCPU(),
			Features: CPUFeatures(),
		}
	})
	return cached
}

// CPUFeatures lists the carry-chain and wide-multiply extensions available
// on the current processor. The list is empty on architectures without
// any of them.
func CPUFeatures() []string {
	var features []string
	add := func(ok bool, name string) {
		if ok {
			features = append(features, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasBMI2, "BMI2")
		add(cpu.X86.HasADX, "ADX")
		add(cpu.X86.HasAVX2, "AVX2")
		add(cpu.X86.HasAVX512F && cpu.X86.HasAVX512DQ, "AVX-512")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "ASIMD")
		add(cpu.ARM64.HasSVE, "SVE")
	}
	return features
}

// String renders the description on one line.
func (i Info) String() string {
	s := fmt.Sprintf("%s/%s, %d CPUs", i.GOOS, i.GOARCH, i.NumCPU)
	if len(i.Features) > 0 {
		s += ", " + strings.Join(i.Features, " ")
	}
	return s
}
