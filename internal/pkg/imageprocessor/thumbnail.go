package imageprocessor

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"
)

// Thumbnail width in pixels; height follows the aspect ratio.
const thumbnailWidth = 320

// GenerateThumbnail decodes an uploaded image and returns a JPEG thumbnail.
// Animated formats lose animation, which is acceptable for gallery previews.
func GenerateThumbnail(original []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(original), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("error decoding image: %w", err)
	}

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, fmt.Errorf("error encoding thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
