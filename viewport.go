package glterm

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewport tracks the window size and the aspect ratio content should keep,
// and derives the letterboxing projection from them.
//
// Content is laid out in the unit square, x to the right and y down. The
// projection widens the ortho bounds along the axis with spare room so the
// content keeps the target ratio with equal padding on both sides.
type Viewport struct {
	mu         sync.RWMutex
	width      int
	height     int
	ratio      float32
	projection mgl32.Mat4

	onResize func(width, height int)
}

// NewViewport creates a viewport for a window of the given size. onResize,
// if non-nil, is called with the new size on every SetWindowSize; graphics
// backends pass their SetViewport here.
func NewViewport(width, height int, ratio float32, onResize func(width, height int)) *Viewport {
	v := &Viewport{
		width:    width,
		height:   height,
		ratio:    ratio,
		onResize: onResize,
	}
	v.projection = letterbox(width, height, ratio)
	return v
}

// SetWindowSize records a new window size, recomputes the projection and
// notifies the graphics backend.
func (v *Viewport) SetWindowSize(width, height int) {
	v.mu.Lock()
	v.width, v.height = width, height
	v.projection = letterbox(width, height, v.ratio)
	v.mu.Unlock()

	if v.onResize != nil {
		v.onResize(width, height)
	}
}

// SetTargetAspectRatio changes the ratio content keeps and recomputes the
// projection. The backend viewport is left alone.
func (v *Viewport) SetTargetAspectRatio(ratio float32) {
	v.mu.Lock()
	v.ratio = ratio
	v.projection = letterbox(v.width, v.height, ratio)
	v.mu.Unlock()
}

// TargetAspectRatio returns the width/height ratio content keeps.
func (v *Viewport) TargetAspectRatio() float32 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.ratio
}

// WindowSize returns the last recorded window size in pixels.
func (v *Viewport) WindowSize() (width, height int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width, v.height
}

// Projection returns the projection for the current size and ratio.
func (v *Viewport) Projection() mgl32.Mat4 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.projection
}

// letterbox builds the projection mapping the unit square into the window
// with ratio preserved. Degenerate sizes or ratios map the square onto the
// whole window.
func letterbox(width, height int, ratio float32) mgl32.Mat4 {
	left, right := float32(0), float32(1)
	top, bottom := float32(0), float32(1)

	if width > 0 && height > 0 && ratio > 0 {
		window := float32(width) / float32(height)
		if window > ratio {
			pad := (window/ratio - 1) / 2
			left, right = -pad, 1+pad
		} else if window < ratio {
			pad := (ratio/window - 1) / 2
			top, bottom = -pad, 1+pad
		}
	}

	// bottom and top are swapped relative to GL so y grows downwards.
	return mgl32.Ortho(left, right, bottom, top, -1, 1)
}
