package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))
	return buf.Bytes()
}

func TestGenerateThumbnail(t *testing.T) {
	original := testJPEG(t, 1280, 960)

	thumbytes, err := GenerateThumbnail(original)
	require.NoError(t, err)
	require.NotEmpty(t, thumbytes)

	thumb, err := imaging.Decode(bytes.NewReader(thumbytes))
	require.NoError(t, err)
	assert.Equal(t, thumbnailWidth, thumb.Bounds().Dx())
	assert.Equal(t, 240, thumb.Bounds().Dy())
}

func TestGenerateThumbnailRejectsGarbage(t *testing.T) {
	_, err := GenerateThumbnail([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestExtractGPSWithoutExif(t *testing.T) {
	lat, lng := ExtractGPS(testJPEG(t, 10, 10))
	assert.Nil(t, lat)
	assert.Nil(t, lng)
}
