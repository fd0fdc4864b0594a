package images

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"

	// Raster codecs for the formats pdfcpu emits.
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// normalizeToPNG decodes raster data in any registered format, converts
// non-RGB color spaces (grayscale, YCbCr, CMYK) to RGB, and re-encodes
// the result as PNG.
func normalizeToPNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rgb, ok := src.(*image.NRGBA)
	if !ok {
		bounds := src.Bounds()
		rgb = image.NewNRGBA(bounds)
		draw.Draw(rgb, bounds, src, bounds.Min, draw.Src)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgb); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
