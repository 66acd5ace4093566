// Package imaging converts downloaded image bytes to the JPEG files that get
// persisted on disk.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif" // decoder registration
	_ "image/png" // decoder registration

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder registration
)

const jpegQuality = 90

// Ext is the file extension of every persisted image.
const Ext = "jpg"

// ToJPEG decodes image bytes in any registered format, flattens them to an
// opaque RGB representation, and re-encodes them as JPEG.
func ToJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	// JPEG has no alpha channel, so anything that isn't already a plain RGB
	// image is redrawn onto an opaque RGBA canvas first.
	if _, ok := img.(*image.YCbCr); !ok {
		bounds := img.Bounds()
		dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Copy(dst, image.Point{}, img, bounds, draw.Src, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}

	return buf.Bytes(), nil
}
