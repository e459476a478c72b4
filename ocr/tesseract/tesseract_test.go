//go:build tesseract

package tesseract

import (
	"testing"

	"github.com/EasterCompany/dex-lipi-service/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistered(t *testing.T) {
	assert.Contains(t, ocr.Engines(), "tesseract")

	engine, err := ocr.New("tesseract", ocr.Config{Languages: []string{"eng", "hin"}})
	require.NoError(t, err)
	assert.Equal(t, "tesseract", engine.Name())
}
