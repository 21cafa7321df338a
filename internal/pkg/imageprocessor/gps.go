package imageprocessor

import (
	"bytes"

	"github.com/gofiber/fiber/v2/log"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
)

func init() {
	// Register Nikon and Canon maker notes
	exif.RegisterParsers(mknote.All...)
}

// ExtractGPS reads EXIF GPS coordinates from an uploaded image. Reports
// submitted without explicit coordinates are backfilled from the first
// attachment that carries them. Missing EXIF data is not an error.
func ExtractGPS(original []byte) (lat, lng *float64) {
	x, err := exif.Decode(bytes.NewReader(original))
	if err != nil {
		// Many field photos carry no EXIF block at all
		return nil, nil
	}

	la, lo, err := x.LatLong()
	if err != nil {
		log.Debugf("image has EXIF but no GPS coordinates: %v", err)
		return nil, nil
	}
	return &la, &lo
}
