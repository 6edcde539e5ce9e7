package opengl

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Capture reads the bottom-left width x height region of the back buffer.
// Call it after drawing and before the next Refresh swaps buffers.
func (r *Renderer) Capture(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	flipRows(img.Pix, width*4)
	return img
}

// flipRows mirrors pixel rows vertically in place (OpenGL origin is
// bottom-left).
func flipRows(pix []byte, rowLen int) {
	if rowLen <= 0 {
		return
	}
	rows := len(pix) / rowLen
	tmp := make([]byte, rowLen)
	for y := 0; y < rows/2; y++ {
		top := y * rowLen
		bot := (rows - 1 - y) * rowLen
		copy(tmp, pix[top:top+rowLen])
		copy(pix[top:top+rowLen], pix[bot:bot+rowLen])
		copy(pix[bot:bot+rowLen], tmp)
	}
}
