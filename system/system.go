package system

import (
	"errors"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is the host usage reported on /status.
type Snapshot struct {
	CPUPercent    float64   `json:"cpu_percent"`
	MemoryPercent float64   `json:"memory_percent"`
	Load1         float64   `json:"load_1,omitempty"`
	GPUs          []GPUInfo `json:"gpus,omitempty"`
	Errors        []string  `json:"errors,omitempty"`
}

var errNoCPUSample = errors.New("no cpu sample")

// CPUPercent is the host-wide CPU usage since the previous call.
func CPUPercent() (float64, error) {
	samples, err := cpu.Percent(0, false)
	switch {
	case err != nil:
		return 0, err
	case len(samples) == 0:
		return 0, errNoCPUSample
	}
	return samples[0], nil
}

// MemoryPercent is the share of physical memory in use.
func MemoryPercent() (float64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return vm.UsedPercent, nil
}

// TakeSnapshot collects what it can. Failed probes are listed in Errors
// instead of failing the whole snapshot.
func TakeSnapshot() Snapshot {
	var s Snapshot
	var err error
	if s.CPUPercent, err = CPUPercent(); err != nil {
		s.Errors = append(s.Errors, "cpu: "+err.Error())
	}
	if s.MemoryPercent, err = MemoryPercent(); err != nil {
		s.Errors = append(s.Errors, "memory: "+err.Error())
	}
	if avg, err := load.Avg(); err == nil {
		s.Load1 = avg.Load1
	}
	if IsNvidiaGPUInstalled() {
		gpus, err := GetGPUInfo()
		if err != nil {
			s.Errors = append(s.Errors, "gpu: "+err.Error())
		}
		s.GPUs = gpus
	}
	return s
}
