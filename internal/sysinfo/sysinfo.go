// Package sysinfo collects host hardware and platform metadata.
package sysinfo

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Info describes the machine a benchmark ran on. Hardware fields are
// best effort and may be zero on platforms gopsutil cannot read.
type Info struct {
	Hostname string
	OS       string
	Arch     string
	CPUModel string
	CPUCount int
	MemTotal uint64 // bytes
}

// Collect gathers host metadata. It never fails: fields that cannot be
// read stay zero and render as unknown in reports.
func Collect() Info {
	info := Info{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUCount: runtime.NumCPU(),
	}

	if host, err := os.Hostname(); err == nil {
		info.Hostname = host
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemTotal = vm.Total
	}

	return info
}

// MemGiB renders total memory as "8.0 GiB", or "unknown" when it could
// not be read.
func (i Info) MemGiB() string {
	if i.MemTotal == 0 {
		return "unknown"
	}
	return fmt.Sprintf("%.1f GiB", float64(i.MemTotal)/(1<<30))
}
