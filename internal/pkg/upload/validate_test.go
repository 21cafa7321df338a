package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimal valid headers per format
var (
	jpegHead = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}
	pngHead  = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}
	gifHead  = []byte("GIF89a")
)

func TestValidateImageBySniff(t *testing.T) {
	mime, err := ValidateImageBySniff("foto.jpg", jpegHead)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", mime)

	mime, err = ValidateImageBySniff("captura.PNG", pngHead)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)

	_, err = ValidateImageBySniff("anim.gif", gifHead)
	assert.NoError(t, err)
}

func TestValidateImageBySniffRejections(t *testing.T) {
	// disallowed extension
	_, err := ValidateImageBySniff("nota.pdf", jpegHead)
	assert.Error(t, err)

	// html masquerading as an image
	_, err = ValidateImageBySniff("foto.jpg", []byte("<html><body>x</body></html>"))
	assert.Error(t, err)

	// svg blocked even with allowed extension
	_, err = ValidateImageBySniff("icono.png", []byte(`<?xml version="1.0"?><svg></svg>`))
	assert.Error(t, err)
}
