package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContentType(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	assert.Equal(t, "image/png", DetectContentType(png))

	jpeg := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0, 0, 0}
	assert.Equal(t, "image/jpeg", DetectContentType(jpeg))

	pdf := []byte("%PDF-1.7 study notes")
	assert.Equal(t, "application/pdf", DetectContentType(pdf))
}
