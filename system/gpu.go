package system

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// GPUInfo is one nvidia-smi row. Memory is in MiB.
type GPUInfo struct {
	Utilization float64 `json:"utilization"`
	MemoryUsed  float64 `json:"memory_used_mib"`
	MemoryTotal float64 `json:"memory_total_mib"`
}

// GetGPUInfo queries every NVIDIA GPU on the host. The vision model used
// for OCR is usually the largest tenant.
func GetGPUInfo() ([]GPUInfo, error) {
	cmd := exec.Command("nvidia-smi", "--query-gpu=utilization.gpu,memory.used,memory.total", "--format=csv,noheader,nounits")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("nvidia-smi command failed: %w", err)
	}
	return parseNvidiaSMI(string(output))
}

func parseNvidiaSMI(output string) ([]GPUInfo, error) {
	var gpus []GPUInfo
	for _, row := range strings.Split(strings.TrimSpace(output), "\n") {
		row = strings.TrimSpace(row)
		if row == "" {
			continue
		}
		fields := strings.Split(row, ",")
		if len(fields) != 3 {
			return nil, fmt.Errorf("unexpected output format from nvidia-smi: got %d fields, expected 3", len(fields))
		}
		var values [3]float64
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, fmt.Errorf("failed to parse nvidia-smi field %q: %w", f, err)
			}
			values[i] = v
		}
		gpus = append(gpus, GPUInfo{Utilization: values[0], MemoryUsed: values[1], MemoryTotal: values[2]})
	}
	return gpus, nil
}

func IsNvidiaGPUInstalled() bool {
	_, err := exec.LookPath("nvidia-smi")
	return err == nil
}
