package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateModelfile(t *testing.T) {
	got := generateModelfile("qwen2.5vl:3b", "Read the text.", ocrParameters(1024))
	assert.Equal(t, "FROM qwen2.5vl:3b\n"+
		"PARAMETER num_predict 1024\n"+
		"PARAMETER temperature 0\n"+
		"PARAMETER top_k 1\n"+
		"SYSTEM \"\"\"Read the text.\"\"\"\n", got)
}

func TestOCRParameters(t *testing.T) {
	assert.NotContains(t, ocrParameters(0), "num_predict")
	assert.Equal(t, "0", ocrParameters(0)["temperature"])
}
