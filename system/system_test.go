package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNvidiaSMI(t *testing.T) {
	gpus, err := parseNvidiaSMI("35, 4096, 8192\n 0, 10, 24576 \n")
	require.NoError(t, err)
	assert.Equal(t, []GPUInfo{
		{Utilization: 35, MemoryUsed: 4096, MemoryTotal: 8192},
		{Utilization: 0, MemoryUsed: 10, MemoryTotal: 24576},
	}, gpus)

	gpus, err = parseNvidiaSMI("")
	require.NoError(t, err)
	assert.Empty(t, gpus)

	_, err = parseNvidiaSMI("35, 4096")
	assert.Error(t, err)

	_, err = parseNvidiaSMI("N/A, 1, 2")
	assert.Error(t, err)
}

func TestTakeSnapshot(t *testing.T) {
	s := TakeSnapshot()
	assert.GreaterOrEqual(t, s.MemoryPercent, 0.0)
	assert.LessOrEqual(t, s.MemoryPercent, 100.0)
}
