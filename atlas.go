package glterm

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // atlas formats registered with image.Decode

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// atlasImage is a decoded glyph atlas as tightly packed RGBA8 rows.
type atlasImage struct {
	width  int
	height int
	pixels []byte
}

// decodeAtlas decodes a PNG, BMP, TIFF or WebP atlas. The image must decode
// to 8-bit non-premultiplied RGBA; other layouts are rejected, never
// converted.
func decodeAtlas(source string, data []byte) (*atlasImage, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &FormatError{Source: source, Reason: "cannot decode atlas image", Err: err}
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		return nil, fmt.Errorf("%w: %s atlas %s decodes to %T", ErrUnsupportedColorFormat, format, source, img)
	}

	return nrgbaPixels(source, nrgba)
}

// nrgbaPixels copies img into tightly packed rows, dropping stride padding.
func nrgbaPixels(source string, img *image.NRGBA) (*atlasImage, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rowLen := w * 4
	if h > 0 && (img.Stride < rowLen || len(img.Pix) < (h-1)*img.Stride+rowLen) {
		return nil, fmt.Errorf("%w: %s has %d bytes at stride %d for %dx%d", ErrCorruptAsset, source, len(img.Pix), img.Stride, w, h)
	}

	pixels := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		off := y * img.Stride
		pixels = append(pixels, img.Pix[off:off+rowLen]...)
	}
	return &atlasImage{width: w, height: h, pixels: pixels}, nil
}
