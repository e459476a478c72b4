package main

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/EasterCompany/dex-lipi-service/cache"
	"github.com/EasterCompany/dex-lipi-service/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntry(t *testing.T) {
	assert.Equal(t, "raw", formatEntry(cache.LogsKey, "raw"))
	assert.Equal(t, "not json", formatEntry(cache.HistoryKey, "not json"))

	data, err := json.Marshal(utils.RequestEvent{
		Type:      utils.EventTypeOCRCompleted,
		Source:    "vlm",
		Target:    "Latin",
		Lines:     2,
		Duration:  120,
		Output:    "hello\nnamaste",
		Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02 03:04:05 [lipi.ocr.completed] vlm -> Latin (2 lines, 120ms): hello | namaste",
		formatEntry(cache.HistoryKey, string(data)))
}
